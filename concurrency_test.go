package widgetstore

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentCreatesLoseNothing(t *testing.T) {
	const (
		workers   = 16
		perWorker = 200
	)
	ctx := context.Background()
	repo := newTestRepo(t, WithDegree(4))

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for i := 0; i < perWorker; i++ {
				// a narrow range keeps the cascades overlapping
				_, err := repo.Create(ctx, testCoords, testDims, AtZIndex(rnd.Intn(20)))
				assert.NoError(t, err)
			}
		}(int64(g))
	}
	wg.Wait()

	assert.Len(t, repo.GetAllSorted(ctx), workers*perWorker)
	assertConsistent(t, repo)
}

func TestConcurrentUpdatesStayConsistent(t *testing.T) {
	const (
		widgets   = 100
		workers   = 8
		perWorker = 300
	)
	ctx := context.Background()
	repo := newTestRepo(t, WithClock(steppingClock()))

	var created []Widget
	for i := 0; i < widgets; i++ {
		created = append(created, mustCreate(t, repo, i*2))
	}

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for i := 0; i < perWorker; i++ {
				w := created[rnd.Intn(widgets)]
				k := rnd.Intn(1000)
				upd := WidgetUpdate{Coordinates: &Coordinates{X: k, Y: k}}
				if rnd.Intn(2) == 0 {
					upd.ZIndex = Ptr(rnd.Intn(widgets * 2))
				}
				_, err := repo.Update(ctx, w.ID, upd)
				assert.NoError(t, err)
			}
		}(int64(g))
	}
	// a concurrent creator keeps cascading through the same range
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < perWorker; i++ {
			_, err := repo.Create(ctx, Coordinates{X: -1, Y: -1}, testDims, AtZIndex(i%widgets))
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	assert.Len(t, repo.GetAllSorted(ctx), widgets+perWorker)
	assertConsistent(t, repo)
}

func TestConcurrentReadsNeverTorn(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	w := mustCreate(t, repo, 0)

	var (
		wg   sync.WaitGroup
		done atomic.Bool
		torn atomic.Int64
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for !done.Load() {
			got, err := repo.Get(ctx, w.ID)
			if err != nil || got.Coordinates.X != got.Coordinates.Y || got.Dimensions.Height != got.Dimensions.Width {
				torn.Add(1)
			}
		}
	}()

	for i := 1; i <= 1000; i++ {
		d := MustDimensions(i, i)
		_, err := repo.Update(ctx, w.ID, WidgetUpdate{Coordinates: &Coordinates{X: i, Y: i}, Dimensions: &d})
		require.NoError(t, err)
	}
	done.Store(true)
	wg.Wait()

	assert.Zero(t, torn.Load())
}

func TestConcurrentUpdatesSameWidgetSerialize(t *testing.T) {
	const workers = 8
	ctx := context.Background()
	repo := newTestRepo(t, WithClock(steppingClock()))
	w := mustCreate(t, repo, 0)

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, err := repo.Update(ctx, w.ID, WidgetUpdate{ZIndex: Ptr(g*10 + i%10)})
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	assert.Len(t, repo.GetAllSorted(ctx), 1)
	assertConsistent(t, repo)
}
