package fakeapi

import (
	"errors"
	"sort"
	"sync"
)

// errNotFound is returned for identifiers the store does not hold.
var errNotFound = errors.New("not found")

// record is implemented by the stored record types.
type record interface {
	RecordID() int64
}

// Store is an in-memory collection with server-assigned identifiers.
type Store[T record] struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]T
	withID func(T, int64) T
}

func newStore[T record](withID func(T, int64) T) *Store[T] {
	return &Store[T]{nextID: 1, items: make(map[int64]T), withID: withID}
}

// List returns all records ordered by identifier.
func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID() < out[j].RecordID() })
	return out
}

// Create stores rec under a fresh identifier, ignoring any it carries.
func (s *Store[T]) Create(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	rec = s.withID(rec, id)
	s.items[id] = rec
	return rec
}

// Replace overwrites the record with the given identifier wholesale.
func (s *Store[T]) Replace(id int64, rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		var zero T
		return zero, errNotFound
	}
	rec = s.withID(rec, id)
	s.items[id] = rec
	return rec, nil
}

// Delete removes the record with the given identifier.
func (s *Store[T]) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return errNotFound
	}
	delete(s.items, id)
	return nil
}
