// Package widgetstore file: identity.go
package widgetstore

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// entry is the identity index cell for one widget. cur is read without
// locking; mu serializes read-modify-write cycles for the same id.
type entry struct {
	mu  sync.Mutex
	cur atomic.Pointer[Widget]
}

// IdentityIndex keys the current snapshot of every widget by its id.
type IdentityIndex struct {
	store sync.Map // map[WidgetID]*entry
	size  atomic.Int64
}

func NewIdentityIndex() *IdentityIndex {
	return &IdentityIndex{}
}

// Claim stores w under its id unless the id is already taken. The check and
// the insert are one atomic step.
func (ix *IdentityIndex) Claim(w *Widget) bool {
	e := &entry{}
	e.cur.Store(w)
	if _, loaded := ix.store.LoadOrStore(w.ID, e); loaded {
		return false
	}
	ix.size.Add(1)
	return true
}

// Load returns the current snapshot for id.
func (ix *IdentityIndex) Load(id WidgetID) (*Widget, bool) {
	v, ok := ix.store.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*entry).cur.Load(), true
}

// CompareAndSwap replaces old with next if old is still the current
// snapshot for its id.
func (ix *IdentityIndex) CompareAndSwap(old, next *Widget) bool {
	v, ok := ix.store.Load(old.ID)
	if !ok {
		return false
	}
	return v.(*entry).cur.CompareAndSwap(old, next)
}

// Current reports whether w is the snapshot currently stored for its id.
func (ix *IdentityIndex) Current(w *Widget) bool {
	cur, ok := ix.Load(w.ID)
	return ok && cur == w
}

// Compute runs a read-modify-write cycle for id. Cycles for the same id are
// serialized. fn derives the next snapshot from the current one; if the
// snapshot changes underneath (a cascade moved the widget) fn runs again
// with the fresh one. then runs with the published pair before the key is
// released.
func (ix *IdentityIndex) Compute(id WidgetID, fn func(cur *Widget) *Widget, then func(prev, next *Widget)) (*Widget, error) {
	v, ok := ix.store.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
	}
	e := v.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	for {
		cur := e.cur.Load()
		next := fn(cur)
		if e.cur.CompareAndSwap(cur, next) {
			if then != nil {
				then(cur, next)
			}
			return next, nil
		}
	}
}

// Range calls fn with the current snapshot of every widget in no particular order.
func (ix *IdentityIndex) Range(fn func(w *Widget) bool) {
	ix.store.Range(func(_, value any) bool {
		return fn(value.(*entry).cur.Load())
	})
}

func (ix *IdentityIndex) Len() int {
	return int(ix.size.Load())
}
