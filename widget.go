// Package widgetstore file: widget.go
package widgetstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WidgetID identifies a widget for its whole lifetime.
type WidgetID = uuid.UUID

// ZIndex orders widgets on the plane. Higher values lie on top, gaps are allowed.
type ZIndex = int

// Coordinates of the widget's anchor on the plane. Both axes may be negative.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Dimensions of a widget. Use NewDimensions to get a validated value.
type Dimensions struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// NewDimensions validates that both extents are strictly positive.
func NewDimensions(height, width int) (Dimensions, error) {
	d := Dimensions{Height: height, Width: width}
	if height <= 0 || width <= 0 {
		return Dimensions{}, fmt.Errorf("dimensions should be larger than zero: %v: %w", d, ErrInvalidDimensions)
	}
	return d, nil
}

// MustDimensions is like NewDimensions but panics on invalid input.
func MustDimensions(height, width int) Dimensions {
	d, err := NewDimensions(height, width)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Dimensions) String() string {
	return fmt.Sprintf("Dimensions(height=%d, width=%d)", d.Height, d.Width)
}

// Widget is an immutable snapshot of a widget. Stored snapshots are never
// modified; every mutation derives a new one.
type Widget struct {
	ID           WidgetID    `json:"id"`
	Coordinates  Coordinates `json:"coordinates"`
	Dimensions   Dimensions  `json:"dimensions"`
	ZIndex       ZIndex      `json:"z_index"`
	LastModified time.Time   `json:"last_modified"`
}

// WidgetUpdate carries the optional fields of an update. Nil fields keep
// their previous value.
type WidgetUpdate struct {
	Coordinates *Coordinates
	Dimensions  *Dimensions
	ZIndex      *ZIndex
}

// apply derives a new snapshot from w with the update's fields overridden.
func (u WidgetUpdate) apply(w *Widget, now time.Time) *Widget {
	next := *w
	if u.Coordinates != nil {
		next.Coordinates = *u.Coordinates
	}
	if u.Dimensions != nil {
		next.Dimensions = *u.Dimensions
	}
	if u.ZIndex != nil {
		next.ZIndex = *u.ZIndex
	}
	next.LastModified = now
	return &next
}

// shiftUp derives the snapshot a cascade writes for a displaced widget.
func shiftUp(w *Widget, now time.Time) *Widget {
	next := *w
	next.ZIndex++
	next.LastModified = now
	return &next
}

func (w Widget) String() string {
	return fmt.Sprintf("Widget(id=%s, z=%d, x=%d, y=%d, h=%d, w=%d)",
		w.ID, w.ZIndex, w.Coordinates.X, w.Coordinates.Y, w.Dimensions.Height, w.Dimensions.Width)
}

// Ptr is a small helper for building WidgetUpdate values.
func Ptr[T any](v T) *T {
	return &v
}
