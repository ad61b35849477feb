// Package widgetstore file: index.go
package widgetstore

import "context"

// Shifter connects a shift-insert cascade to whatever else tracks a
// widget's current snapshot.
type Shifter interface {
	// Shift derives and publishes the snapshot that replaces displaced one
	// slot higher. It returns nil if displaced is no longer current, in which
	// case the cascade drops it.
	Shift(ctx context.Context, displaced *Widget) *Widget
	// Current reports whether w is still the widget's current snapshot.
	Current(w *Widget) bool
}

// OrderedIndex contract for the z-index ordered view of the widgets.
// Every z-index holds at most one widget.
type OrderedIndex interface {
	ShiftInsert(ctx context.Context, w *Widget, shifter Shifter)
	Remove(ctx context.Context, w *Widget) bool
	Get(ctx context.Context, z ZIndex) (Widget, bool)
	Ascend(ctx context.Context, fn func(Widget) bool)
	AscendRange(ctx context.Context, lower, upper ZIndex, fn func(Widget) bool)
	Min(ctx context.Context) (Widget, bool)
	Max(ctx context.Context) (Widget, bool)
	Len() int
}
