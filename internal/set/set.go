// Package set provides a small generic set used for membership checks.
package set

type Set[T comparable] struct {
	m map[T]struct{}
}

// New creates a Set holding the provided values.
func New[T comparable](values ...T) Set[T] {
	m := make(map[T]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return Set[T]{m}
}

// Add inserts values into the set.
func (s *Set[T]) Add(values ...T) {
	for _, v := range values {
		s.m[v] = struct{}{}
	}
}

// Exists reports whether v is a member of the set.
func (s *Set[T]) Exists(v T) bool {
	_, ok := s.m[v]
	return ok
}

// Len returns the number of members in the set.
func (s *Set[T]) Len() int {
	return len(s.m)
}
