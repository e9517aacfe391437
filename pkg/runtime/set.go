package runtime

import "iter"

// Set is an insertion-ordered set. Individuals are keyed by IRI, other values
// by equality. The zero value is an empty set ready to use.
type Set[T any] struct {
	items []T
	index map[any]int
	key   func(T) any
}

// NewSet creates a set of comparable values.
func NewSet[T comparable](items ...T) *Set[T] {
	s := &Set[T]{
		index: make(map[any]int),
		key:   func(v T) any { return v },
	}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// NewIndividualSet creates a set of individuals keyed by IRI.
func NewIndividualSet[T Individual](items ...T) *Set[T] {
	s := &Set[T]{
		index: make(map[any]int),
		key:   func(v T) any { return v.IRI() },
	}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// keyOf falls back to IRI or equality keys for a zero-value set.
func (s *Set[T]) keyOf(v T) any {
	if s.key != nil {
		return s.key(v)
	}
	if ind, ok := any(v).(Individual); ok {
		return ind.IRI()
	}
	return v
}

// Add inserts v and reports whether it was absent.
func (s *Set[T]) Add(v T) bool {
	k := s.keyOf(v)
	if _, ok := s.index[k]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[any]int)
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	if s == nil {
		return false
	}
	k := s.keyOf(v)
	i, ok := s.index[k]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, k)
	for j := i; j < len(s.items); j++ {
		s.index[s.keyOf(s.items[j])] = j
	}
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[s.keyOf(v)]
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns a copy of the elements in insertion order.
func (s *Set[T]) Items() []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// All iterates the elements in insertion order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s == nil {
			return
		}
		for _, v := range s.items {
			if !yield(v) {
				return
			}
		}
	}
}
