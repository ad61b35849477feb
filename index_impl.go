// Package widgetstore file: index_impl.go

package widgetstore

import (
	"context"
	"fmt"
	"strings"
)

// slot is a single z-index position in the tree.
type slot struct {
	z ZIndex
	w *Widget
}

func slotLess(a, b slot) bool {
	return a.z < b.z
}

// sameSnapshot compares by identity: snapshots are never copied once stored.
func sameSnapshot(a, b slot) bool {
	return a.w == b.w
}

// BTreeIndex keys widget snapshots by z-index.
type BTreeIndex struct {
	tree BTreeG[slot]
}

var _ OrderedIndex = (*BTreeIndex)(nil)

// NewBTreeIndex creates an empty ordered index with the given btree degree.
func NewBTreeIndex(degree int) *BTreeIndex {
	return &BTreeIndex{tree: NewSafeBTreeG(degree, slotLess)}
}

// ShiftInsert places w at its z-index. A widget already occupying that slot
// is handed to shifter and re-inserted one higher, and so on until a free
// slot is hit. Each swap is atomic on its own; the cascade as a whole is not.
func (idx *BTreeIndex) ShiftInsert(ctx context.Context, w *Widget, shifter Shifter) {
	for w != nil {
		old, found := idx.tree.ReplaceOrInsert(slot{z: w.ZIndex, w: w})

		// A concurrent writer replaced w while it was in flight. Put back
		// what it displaced if that is still live, otherwise just withdraw w.
		if !shifter.Current(w) {
			if found && shifter.Current(old.w) {
				w = old.w
				continue
			}
			idx.Remove(ctx, w)
			return
		}
		// Replacing an older snapshot of the same widget displaces nobody.
		if !found || old.w.ID == w.ID {
			return
		}
		w = shifter.Shift(ctx, old.w)
	}
}

// Remove deletes w from its slot if the slot still holds exactly w.
func (idx *BTreeIndex) Remove(ctx context.Context, w *Widget) bool {
	return idx.tree.CompareAndDelete(slot{z: w.ZIndex, w: w}, sameSnapshot)
}

// Get returns the widget at z.
func (idx *BTreeIndex) Get(ctx context.Context, z ZIndex) (Widget, bool) {
	s, found := idx.tree.Get(slot{z: z})
	if !found {
		return Widget{}, false
	}
	return *s.w, true
}

// forRange is a generic iterator helper to avoid code duplication.
func (idx *BTreeIndex) forRange(
	ctx context.Context,
	btreeIterFn func(fn func(s slot) bool),
	userFn func(Widget) bool,
) {
	btreeIterFn(func(s slot) bool {
		return userFn(*s.w)
	})
}

// Ascend iterates in ascending z-index order.
func (idx *BTreeIndex) Ascend(ctx context.Context, fn func(Widget) bool) {
	idx.forRange(ctx, func(btreeFn func(s slot) bool) {
		idx.tree.Ascend(btreeFn)
	}, fn)
}

// AscendRange iterates over [lower, upper).
func (idx *BTreeIndex) AscendRange(ctx context.Context, lower, upper ZIndex, fn func(Widget) bool) {
	idx.forRange(ctx,
		func(btreeFn func(s slot) bool) {
			idx.tree.AscendRange(slot{z: lower}, slot{z: upper}, btreeFn)
		},
		fn,
	)
}

func (idx *BTreeIndex) Min(ctx context.Context) (Widget, bool) {
	s, found := idx.tree.Min()
	if !found {
		return Widget{}, false
	}
	return *s.w, true
}

func (idx *BTreeIndex) Max(ctx context.Context) (Widget, bool) {
	s, found := idx.tree.Max()
	if !found {
		return Widget{}, false
	}
	return *s.w, true
}

func (idx *BTreeIndex) Len() int {
	return idx.tree.Len()
}

func (idx *BTreeIndex) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	first := true

	idx.Ascend(context.TODO(), func(w Widget) bool {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%d:%s", w.ZIndex, w.ID))
		first = false
		return true // Continue iteration
	})

	sb.WriteString("]")
	return sb.String()
}
