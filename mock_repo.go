package widgetstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// MockRepo is a plain map implementation of the widget store for tests. It
// is not safe for concurrent use and performs the cascade recursively, the
// straightforward way, so it can serve as a reference for RepoImpl.
type MockRepo struct {
	Store map[WidgetID]Widget
	byZ   map[ZIndex]WidgetID
	now   Clock
}

var _ Repo = (*MockRepo)(nil)

func NewMockRepo(now Clock) *MockRepo {
	if now == nil {
		now = time.Now
	}
	return &MockRepo{
		Store: make(map[WidgetID]Widget),
		byZ:   make(map[ZIndex]WidgetID),
		now:   now,
	}
}

func (m *MockRepo) shiftIn(w Widget) {
	if occupant, ok := m.byZ[w.ZIndex]; ok && occupant != w.ID {
		moved := m.Store[occupant]
		moved.ZIndex++
		moved.LastModified = m.now()
		m.shiftIn(moved)
	}
	m.byZ[w.ZIndex] = w.ID
	m.Store[w.ID] = w
}

func (m *MockRepo) Create(ctx context.Context, coords Coordinates, dims Dimensions, opts ...CreateOption) (Widget, error) {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	z := cfg.zIndex
	if cfg.onTop {
		z = 0
		for k := range m.byZ {
			if k+1 > z {
				z = k + 1
			}
		}
	}
	w := Widget{ID: uuid.New(), Coordinates: coords, Dimensions: dims, ZIndex: z, LastModified: m.now()}
	m.shiftIn(w)
	return w, nil
}

func (m *MockRepo) Update(ctx context.Context, id WidgetID, upd WidgetUpdate) (Widget, error) {
	old, ok := m.Store[id]
	if !ok {
		return Widget{}, fmt.Errorf("update widget: %w: %s", ErrUnknownIdentifier, id)
	}
	next := *upd.apply(&old, m.now())
	if next.ZIndex != old.ZIndex {
		delete(m.byZ, old.ZIndex)
	}
	m.shiftIn(next)
	return next, nil
}

func (m *MockRepo) GetAllSorted(ctx context.Context) []Widget {
	result := make([]Widget, 0, len(m.Store))
	for _, w := range m.Store {
		result = append(result, w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ZIndex < result[j].ZIndex })
	return result
}

func (m *MockRepo) GetRange(ctx context.Context, lower, upper ZIndex) []Widget {
	var result []Widget
	for _, w := range m.GetAllSorted(ctx) {
		if w.ZIndex >= lower && w.ZIndex < upper {
			result = append(result, w)
		}
	}
	return result
}

func (m *MockRepo) Get(ctx context.Context, id WidgetID) (Widget, error) {
	if w, ok := m.Store[id]; ok {
		return w, nil
	}
	return Widget{}, fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
}

func (m *MockRepo) Exists(ctx context.Context, id WidgetID) bool { _, ok := m.Store[id]; return ok }

func (m *MockRepo) Count(ctx context.Context, predicate func(Widget) bool) int {
	c := 0
	for _, w := range m.Store {
		if predicate == nil || predicate(w) {
			c++
		}
	}
	return c
}

func (m *MockRepo) Find(ctx context.Context, predicate func(Widget) bool) []Widget {
	var r []Widget
	for _, w := range m.Store {
		if predicate(w) {
			r = append(r, w)
		}
	}
	return r
}

func (m *MockRepo) FindFirst(ctx context.Context, predicate func(Widget) bool) (Widget, bool) {
	for _, w := range m.Store {
		if predicate(w) {
			return w, true
		}
	}
	return Widget{}, false
}

// Subscribers are not supported by the mock.
func (m *MockRepo) AddSubscriber(Subscriber) {}
