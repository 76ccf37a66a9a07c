package util

import (
	"github.com/hashicorp/go-set/v3"
	"iter"
	"slices"
)

// OrderSet is a set that remembers insertion order.
//
// Membership goes through a hash set, so Contains is O(1), while iteration
// and indexing follow the order elements were first inserted in.
// Removal keeps the relative order of the remaining elements.
type OrderSet[A comparable] struct {
	items []A
	index *set.Set[A]
}

func NewOrderSet[A comparable](elems ...A) *OrderSet[A] {
	s := &OrderSet[A]{
		items: make([]A, 0, len(elems)),
		index: set.New[A](len(elems)),
	}
	for _, elem := range elems {
		s.Insert(elem)
	}
	return s
}

// Insert appends elem if it is not present yet, and reports whether it was added
func (s *OrderSet[A]) Insert(elem A) bool {
	if !s.index.Insert(elem) {
		return false
	}
	s.items = append(s.items, elem)
	return true
}

func (s *OrderSet[A]) Contains(elem A) bool {
	return s.index.Contains(elem)
}

func (s *OrderSet[A]) Len() int {
	return len(s.items)
}

func (s *OrderSet[A]) At(i int) A {
	return s.items[i]
}

// All iterates over index, element pairs in insertion order
func (s *OrderSet[A]) All() iter.Seq2[int, A] {
	return slices.All(s.items)
}

func (s *OrderSet[A]) Items() iter.Seq[A] {
	return slices.Values(s.items)
}

// Slice returns a copy of the elements in insertion order
func (s *OrderSet[A]) Slice() []A {
	return slices.Clone(s.items)
}

// RemoveIndices removes the elements at the given positions.
// indices must be sorted in ascending order.
func (s *OrderSet[A]) RemoveIndices(indices []int) {
	if len(indices) == 0 {
		return
	}
	kept := s.items[:0]
	next := 0
	for i, elem := range s.items {
		if next < len(indices) && indices[next] == i {
			next++
			s.index.Remove(elem)
			continue
		}
		kept = append(kept, elem)
	}
	clear(s.items[len(kept):])
	s.items = kept
}

func (s *OrderSet[A]) Copy() *OrderSet[A] {
	return &OrderSet[A]{
		items: slices.Clone(s.items),
		index: s.index.Copy(),
	}
}

func (s *OrderSet[A]) String() string {
	return JoinAny(s.items, ", ")
}
