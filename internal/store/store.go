package store

import (
	"fmt"
	"sync"
)

// Store is the single in-process owner of the medium. Every operation runs
// a fresh read (and, for mutations, a full rewrite) while holding the
// store's lock, so concurrent Append and RemoveAt calls are linearized.
//
// Two Stores over the same medium do not coordinate: their read-modify-write
// sequences can interleave and the last writer wins.
type Store struct {
	mu     sync.Mutex
	medium Medium
}

// New returns a Store that owns medium.
func New(medium Medium) *Store {
	return &Store{medium: medium}
}

// Close closes the underlying medium.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.medium.Close()
}

// Init creates an empty collection if the medium holds none.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.medium.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	return nil
}

// Load returns the full persisted collection.
func (s *Store) Load() ([]Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.medium.Read()
}

// Append reads the collection, appends one person from gen, persists the
// whole result and returns it.
func (s *Store) Append(gen Generator) ([]Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people, err := s.medium.Read()
	if err != nil {
		return nil, err
	}
	people = append(people, gen())
	if err := s.medium.Write(people); err != nil {
		return nil, err
	}
	return people, nil
}

// RemoveAt removes the person at index and persists the result. An empty
// collection or an out-of-range index leaves the medium untouched and is not
// an error. The returned collection is the one now persisted.
func (s *Store) RemoveAt(index int) ([]Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people, err := s.medium.Read()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(people) {
		return people, nil
	}

	people = append(people[:index:index], people[index+1:]...)
	if err := s.medium.Write(people); err != nil {
		return nil, err
	}
	return people, nil
}

// At returns people[index], or ErrIndexOutOfRange.
func At(people []Person, index int) (Person, error) {
	if index < 0 || index >= len(people) {
		return Person{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(people))
	}
	return people[index], nil
}
