// Package recency implements a bounded recency-membership set: a set
// with O(1) membership tests that forgets its oldest members once a
// capacity is exceeded
package recency

import "fmt"

// Set combines a FIFO queue of ids with a companion set used for
// membership tests. Every id in the queue is in the set and every id in
// the set is in the queue; both are only ever modified together.
type Set struct {
	queue    []int
	members  map[int]struct{}
	capacity int
}

// New returns a new Set holding at most capacity ids
func New(capacity int) *Set {
	if capacity <= 0 {
		panic(fmt.Sprintf("new: capacity must be positive (have %d)",
			capacity))
	}
	return &Set{
		queue:    make([]int, 0, capacity+1),
		members:  make(map[int]struct{}, capacity+1),
		capacity: capacity,
	}
}

// Add inserts id into the Set. Adding an id already present is a no-op
// and does not refresh its position in the queue. If the insertion
// exceeds the capacity, the oldest id is evicted and returned along
// with true.
func (s *Set) Add(id int) (evicted int, ok bool) {
	if s.Contains(id) {
		return 0, false
	}

	s.queue = append(s.queue, id)
	s.members[id] = struct{}{}

	if len(s.queue) > s.capacity {
		evicted = s.queue[0]
		copy(s.queue, s.queue[1:])
		s.queue = s.queue[:len(s.queue)-1]
		delete(s.members, evicted)
		return evicted, true
	}
	return 0, false
}

// Contains returns whether id is in the Set
func (s *Set) Contains(id int) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the number of ids in the Set
func (s *Set) Len() int {
	return len(s.queue)
}

// Cap returns the capacity of the Set
func (s *Set) Cap() int {
	return s.capacity
}

// IDs returns the ids in the Set from oldest to newest
func (s *Set) IDs() []int {
	ids := make([]int, len(s.queue))
	copy(ids, s.queue)
	return ids
}
