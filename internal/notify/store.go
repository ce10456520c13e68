// Package notify holds the notification model and its bounded in-memory
// store. Retention is memory-only and lost on restart: the system's value is
// real-time delivery, not historical audit.
package notify

import "sync"

// DefaultCapacity is the fixed retention bound of a Store: at most this many
// notifications are kept, newest-first, with the oldest evicted on overflow.
const DefaultCapacity = 100

// Store is an append-only ring buffer of recent notifications.
// Safe for concurrent use; all reads return snapshot copies.
type Store struct {
	mu     sync.Mutex
	ring   []Notification
	start  int // index of the oldest entry
	size   int
	nextID int64
}

// NewStore creates a Store. Non-positive capacities fall back to
// DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{ring: make([]Notification, capacity)}
}

// Append stamps the notification with the next id and inserts it, evicting
// the oldest entry when at capacity. O(1). Returns the stored copy.
func (s *Store) Append(n Notification) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	n.ID = s.nextID

	capacity := len(s.ring)
	if s.size < capacity {
		s.ring[(s.start+s.size)%capacity] = n
		s.size++
		return n
	}

	// Overwrite oldest.
	s.ring[s.start] = n
	s.start = (s.start + 1) % capacity
	return n
}

// Recent returns up to k notifications, newest-first, without mutating the
// store. k is clamped to the current size; k <= 0 yields an empty slice.
func (s *Store) Recent(k int) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if k < 0 {
		k = 0
	}
	if k > s.size {
		k = s.size
	}

	out := make([]Notification, 0, k)
	for i := 0; i < k; i++ {
		idx := (s.start + s.size - 1 - i + len(s.ring)) % len(s.ring)
		out = append(out, s.ring[idx])
	}
	return out
}

// Len returns the number of stored notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}
