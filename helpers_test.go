package widgetstore

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow    = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testCoords = Coordinates{X: 1, Y: 2}
	testDims   = Dimensions{Height: 10, Width: 10}
)

func staticClock() time.Time { return testNow }

// steppingClock advances one millisecond per call.
func steppingClock() Clock {
	var n atomic.Int64
	return func() time.Time {
		return testNow.Add(time.Duration(n.Add(1)) * time.Millisecond)
	}
}

func staticID(id WidgetID) IDGenerator {
	return func() WidgetID { return id }
}

func newTestRepo(t *testing.T, opts ...Option) *RepoImpl {
	t.Helper()
	repo, err := NewRepo(opts...)
	require.NoError(t, err)
	return repo
}

func mustCreate(t *testing.T, repo Repo, z ZIndex) Widget {
	t.Helper()
	w, err := repo.Create(context.Background(), testCoords, testDims, AtZIndex(z))
	require.NoError(t, err)
	return w
}

func withZ(w Widget, z ZIndex) Widget {
	w.ZIndex = z
	return w
}

func zIndexes(ws []Widget) []ZIndex {
	zs := make([]ZIndex, 0, len(ws))
	for _, w := range ws {
		zs = append(zs, w.ZIndex)
	}
	return zs
}

func widgetIDs(ws []Widget) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}

// assertConsistent checks that both indexes agree and that z-indexes are unique.
func assertConsistent(t *testing.T, repo *RepoImpl) {
	t.Helper()
	ctx := context.Background()

	sorted := repo.GetAllSorted(ctx)
	assert.Equal(t, repo.Count(ctx, nil), len(sorted), "identity and ordered index sizes differ")

	seenZ := make(map[ZIndex]bool, len(sorted))
	seenID := make(map[WidgetID]bool, len(sorted))
	for i, w := range sorted {
		if i > 0 {
			assert.Less(t, sorted[i-1].ZIndex, w.ZIndex, "listing not strictly ascending")
		}
		assert.False(t, seenZ[w.ZIndex], "duplicate z-index %d", w.ZIndex)
		assert.False(t, seenID[w.ID], "widget %s listed twice", w.ID)
		seenZ[w.ZIndex] = true
		seenID[w.ID] = true

		got, err := repo.Get(ctx, w.ID)
		if assert.NoError(t, err) {
			assert.Equal(t, w, got, "identity index diverges for %s", w.ID)
		}
	}
}
