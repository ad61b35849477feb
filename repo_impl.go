// Package widgetstore file: repo_impl.go

package widgetstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// RepoImpl is a thread-safe, in-memory widget store. It keeps two indexes:
// an identity index for point lookups and atomic per-widget updates, and an
// ordered index keyed by z-index for sorted listing. No global lock is held
// across them; concurrent writers touching overlapping z-index ranges end up
// in an undefined order, but no widget is ever lost.
type RepoImpl struct {
	opts    Options
	byID    *IdentityIndex
	ordered OrderedIndex

	subscribers   []Subscriber
	subscribersMu sync.RWMutex // Protects the subscribers slice
}

var _ Repo = (*RepoImpl)(nil)

func NewRepo(opts ...Option) (*RepoImpl, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &RepoImpl{
		opts:    o,
		byID:    NewIdentityIndex(),
		ordered: NewBTreeIndex(o.Degree),
	}, nil
}

func (r *RepoImpl) logger(ctx context.Context) *log.Logger {
	return LoggerFromContext(ctx, r.opts.Logger)
}

// notify handles fan-out to subscribers.
func (r *RepoImpl) notify(eventType string, w Widget) {
	r.subscribersMu.RLock()
	defer r.subscribersMu.RUnlock()

	for _, sub := range r.subscribers {
		sub(Event{Type: eventType, Widget: w})
	}
}

// cascade publishes displaced widgets back into the identity index.
type cascade struct {
	r      *RepoImpl
	logger *log.Logger
}

func (c cascade) Shift(ctx context.Context, displaced *Widget) *Widget {
	next := shiftUp(displaced, c.r.opts.Clock())
	if !c.r.byID.CompareAndSwap(displaced, next) {
		c.logger.Debug("dropping stale snapshot from cascade", "id", displaced.ID, "z", displaced.ZIndex)
		return nil
	}
	c.logger.Debug("shifted widget", "id", next.ID, "from", displaced.ZIndex, "to", next.ZIndex)
	c.r.notify(EventShift, *next)
	return next
}

func (c cascade) Current(w *Widget) bool {
	return c.r.byID.Current(w)
}

func (r *RepoImpl) shifter(ctx context.Context) Shifter {
	return cascade{r: r, logger: r.logger(ctx)}
}

// current returns what the identity index holds for id right now, falling
// back to w.
func (r *RepoImpl) current(w *Widget) Widget {
	if cur, ok := r.byID.Load(w.ID); ok {
		return *cur
	}
	return *w
}

// topZIndex is one above the current maximum, but never below zero.
func (r *RepoImpl) topZIndex(ctx context.Context) ZIndex {
	top, ok := r.ordered.Max(ctx)
	if !ok || top.ZIndex < 0 {
		return 0
	}
	return top.ZIndex + 1
}

// Create stores a new widget at z-index 0 unless AtZIndex or OnTop say
// otherwise. Widgets already at that z-index and the ones directly above
// it are shifted up by one until the first gap.
func (r *RepoImpl) Create(ctx context.Context, coords Coordinates, dims Dimensions, opts ...CreateOption) (Widget, error) {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	z := cfg.zIndex
	if cfg.onTop {
		z = r.topZIndex(ctx)
	}

	w := &Widget{
		ID:           r.opts.IDGenerator(),
		Coordinates:  coords,
		Dimensions:   dims,
		ZIndex:       z,
		LastModified: r.opts.Clock(),
	}
	logger := r.logger(ctx)
	if !r.byID.Claim(w) {
		logger.Warn("identifier collision", "id", w.ID)
		return Widget{}, fmt.Errorf("create widget %s: %w", w.ID, ErrIdentifierCollision)
	}

	r.ordered.ShiftInsert(ctx, w, r.shifter(ctx))
	logger.Debug("created widget", "id", w.ID, "z", w.ZIndex)

	r.notify(EventCreate, *w)
	return r.current(w), nil
}

// Update replaces the widget's snapshot with one carrying the given fields.
// The timestamp is refreshed even when nothing else changes. A new z-index
// shift-inserts the widget there, the same way Create does.
func (r *RepoImpl) Update(ctx context.Context, id WidgetID, upd WidgetUpdate) (Widget, error) {
	shifter := r.shifter(ctx)
	next, err := r.byID.Compute(id,
		func(cur *Widget) *Widget {
			return upd.apply(cur, r.opts.Clock())
		},
		func(prev, next *Widget) {
			if next.ZIndex != prev.ZIndex {
				r.ordered.Remove(ctx, prev)
			}
			// Same z-index: the swap replaces prev in place.
			r.ordered.ShiftInsert(ctx, next, shifter)
		},
	)
	if err != nil {
		return Widget{}, fmt.Errorf("update widget: %w", err)
	}
	r.logger(ctx).Debug("updated widget", "id", next.ID, "z", next.ZIndex)

	r.notify(EventUpdate, *next)
	return r.current(next), nil
}

// GetAllSorted returns a point-in-time copy of all widgets, lowest z-index first.
func (r *RepoImpl) GetAllSorted(ctx context.Context) []Widget {
	result := make([]Widget, 0, r.ordered.Len())
	r.ordered.Ascend(ctx, func(w Widget) bool {
		result = append(result, w)
		return true
	})
	return result
}

// GetRange returns the widgets with lower <= z-index < upper, sorted.
func (r *RepoImpl) GetRange(ctx context.Context, lower, upper ZIndex) []Widget {
	var result []Widget
	r.ordered.AscendRange(ctx, lower, upper, func(w Widget) bool {
		result = append(result, w)
		return true
	})
	return result
}

func (r *RepoImpl) Get(ctx context.Context, id WidgetID) (Widget, error) {
	w, ok := r.byID.Load(id)
	if !ok {
		return Widget{}, fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
	}
	return *w, nil
}

func (r *RepoImpl) Exists(ctx context.Context, id WidgetID) bool {
	_, ok := r.byID.Load(id)
	return ok
}

// Count returns the number of widgets optionally matching a predicate.
func (r *RepoImpl) Count(ctx context.Context, predicate func(Widget) bool) int {
	if predicate == nil {
		return r.byID.Len()
	}
	count := 0
	r.byID.Range(func(w *Widget) bool {
		if predicate(*w) {
			count++
		}
		return true
	})
	return count
}

// Find returns all widgets matching the predicate, in no particular order.
func (r *RepoImpl) Find(ctx context.Context, predicate func(Widget) bool) []Widget {
	var result []Widget
	r.byID.Range(func(w *Widget) bool {
		if predicate(*w) {
			result = append(result, *w)
		}
		return true
	})
	return result
}

// FindFirst returns the first widget matching the predicate.
func (r *RepoImpl) FindFirst(ctx context.Context, predicate func(Widget) bool) (Widget, bool) {
	var found Widget
	ok := false
	r.byID.Range(func(w *Widget) bool {
		if predicate(*w) {
			found = *w
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// AddSubscriber registers a callback to receive events.
func (r *RepoImpl) AddSubscriber(sub Subscriber) {
	r.subscribersMu.Lock()
	defer r.subscribersMu.Unlock()
	r.subscribers = append(r.subscribers, sub)
}

// String implements fmt.Stringer
func (r *RepoImpl) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, w := range r.GetAllSorted(context.TODO()) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(w.String())
	}
	sb.WriteString("]")
	return sb.String()
}
