// Package favorites holds a session's shortlist: an ordered set of listings,
// unique by id, with synchronous change observers.
package favorites

import (
	"sync"

	"github.com/evcraddock/estate-finder/internal/property"
)

// Snapshot is an immutable view of the store after a change.
type Snapshot struct {
	Properties []*property.Property
}

// Len returns the number of favorites in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Properties)
}

// Contains reports whether id is in the snapshot.
func (s Snapshot) Contains(id string) bool {
	for _, p := range s.Properties {
		if p.ID == id {
			return true
		}
	}
	return false
}

type observer struct {
	id int
	fn func(Snapshot)
}

// Store is an insertion-ordered set of listings. It is safe for concurrent
// use. Observers run after the store is unlocked, so they may read it, but
// they must not mutate it.
type Store struct {
	mu        sync.Mutex
	items     []*property.Property
	index     map[string]int
	observers []observer
	nextObs   int

	// writeMu serializes mutations together with their deliveries, so
	// snapshots reach observers in mutation order. It is taken before mu.
	writeMu sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Add appends p unless a listing with the same id is already present.
// It reports whether the store changed.
func (s *Store) Add(p *property.Property) bool {
	if p == nil || p.ID == "" {
		return false
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if _, ok := s.index[p.ID]; ok {
		s.mu.Unlock()
		return false
	}
	s.add(p)
	s.publish()
	return true
}

// Remove deletes the listing with the given id, keeping the order of the rest.
// Removing an id that is not present is a no-op.
func (s *Store) Remove(id string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.remove(id) {
		s.mu.Unlock()
		return false
	}
	s.publish()
	return true
}

func (s *Store) add(p *property.Property) {
	s.index[p.ID] = len(s.items)
	s.items = append(s.items, p)
}

func (s *Store) remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.items = append(s.items[:i:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	return true
}

// Toggle removes p if present, otherwise adds it. It reports whether p is a
// favorite afterwards.
func (s *Store) Toggle(p *property.Property) bool {
	if p == nil || p.ID == "" {
		return false
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	on := !s.remove(p.ID)
	if on {
		s.add(p)
	}
	s.publish()
	return on
}

// Clear empties the store. Clearing an empty store does not notify.
func (s *Store) Clear() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return
	}
	s.items = nil
	s.index = make(map[string]int)
	s.publish()
}

// Contains reports whether a listing with id is a favorite.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.index[id]
	return ok
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// List returns the favorites in insertion order. The slice is a copy.
func (s *Store) List() []*property.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyItems()
}

// IDs returns the favorite ids in insertion order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.items))
	for i, p := range s.items {
		ids[i] = p.ID
	}
	return ids
}

// Subscribe registers fn to receive a snapshot after every change, in
// subscription order. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) copyItems() []*property.Property {
	out := make([]*property.Property, len(s.items))
	copy(out, s.items)
	return out
}

// publish must be called with s.writeMu and s.mu held. It releases mu and
// gives every observer the same snapshot before the mutating call returns.
func (s *Store) publish() {
	if len(s.observers) == 0 {
		s.mu.Unlock()
		return
	}
	snap := Snapshot{Properties: s.copyItems()}
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(snap)
	}
}
