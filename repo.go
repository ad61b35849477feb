// Package widgetstore file: repo.go

package widgetstore

import "context"

// Event types delivered to subscribers.
const (
	EventCreate = "create"
	EventUpdate = "update"
	EventShift  = "shift" // a widget was pushed up by a cascade
)

type Event struct {
	Type   string
	Widget Widget
}

// Subscriber receives events synchronously on the mutating goroutine and
// must not block or call back into the store's write operations.
type Subscriber func(Event)

// Repo interface (public contract).
type Repo interface {
	Create(ctx context.Context, coords Coordinates, dims Dimensions, opts ...CreateOption) (Widget, error)
	Update(ctx context.Context, id WidgetID, upd WidgetUpdate) (Widget, error)
	GetAllSorted(ctx context.Context) []Widget

	Get(ctx context.Context, id WidgetID) (Widget, error)
	GetRange(ctx context.Context, lower, upper ZIndex) []Widget
	Exists(ctx context.Context, id WidgetID) bool
	Count(ctx context.Context, predicate func(Widget) bool) int
	Find(ctx context.Context, predicate func(Widget) bool) []Widget
	FindFirst(ctx context.Context, predicate func(Widget) bool) (Widget, bool)

	// Subscribers
	AddSubscriber(Subscriber)
}
