package widgetstore

import (
	"sync"

	"github.com/google/btree"
)

// BTreeG is the subset of a concurrent btree the ordered index relies on.
type BTreeG[T any] interface {
	// CRUD
	ReplaceOrInsert(item T) (T, bool) // Create/Update, returns the replaced item
	Get(key T) (T, bool)              // Read
	Len() int                         // Utility: number of items

	// CompareAndDelete removes the item stored under item's key only when
	// same reports it equal to item.
	CompareAndDelete(item T, same func(a, b T) bool) bool

	// Traversal
	Ascend(fn btree.ItemIteratorG[T])
	AscendRange(greaterOrEqual, lessThan T, fn btree.ItemIteratorG[T])

	// Min/Max
	Min() (T, bool)
	Max() (T, bool)
}

// SafeBTreeG guards a google/btree with a RWMutex. Every method is a single
// atomic step; callers composing several steps get no isolation between them.
type SafeBTreeG[T any] struct {
	mu sync.RWMutex
	bt *btree.BTreeG[T]
}

var _ BTreeG[int] = (*SafeBTreeG[int])(nil)

func NewSafeBTreeG[T any](degree int, less func(a, b T) bool) *SafeBTreeG[T] {
	return &SafeBTreeG[T]{bt: btree.NewG(degree, less)}
}

// --- CRUD ---
func (s *SafeBTreeG[T]) ReplaceOrInsert(item T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bt.ReplaceOrInsert(item)
}

func (s *SafeBTreeG[T]) Get(key T) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bt.Get(key)
}

func (s *SafeBTreeG[T]) CompareAndDelete(item T, same func(a, b T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.bt.Get(item)
	if !found || !same(existing, item) {
		return false
	}
	s.bt.Delete(existing)
	return true
}

func (s *SafeBTreeG[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bt.Len()
}

// --- Traversal ---
// fn runs under the read lock and must not call back into the tree.
func (s *SafeBTreeG[T]) Ascend(fn btree.ItemIteratorG[T]) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.bt.Ascend(fn)
}

func (s *SafeBTreeG[T]) AscendRange(greaterOrEqual, lessThan T, fn btree.ItemIteratorG[T]) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.bt.AscendRange(greaterOrEqual, lessThan, fn)
}

// --- Min/Max ---
func (s *SafeBTreeG[T]) Min() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bt.Min()
}

func (s *SafeBTreeG[T]) Max() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bt.Max()
}
