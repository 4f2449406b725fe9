// Color mapping rules and the thread-safe set that owns them.
package core

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MaxMappings caps how many color mappings can be active at once.
const MaxMappings = 10

// BGR is a color triple in OpenCV channel order (blue, green, red).
type BGR [3]uint8

// Scalar converts the triple to a gocv scalar in B,G,R order.
func (c BGR) Scalar() gocv.Scalar {
	return gocv.NewScalar(float64(c[0]), float64(c[1]), float64(c[2]), 0)
}

// Mapping replaces every pixel whose three channels all fall inside the
// inclusive [Lower, Upper] range with Replacement. Inverted ranges
// (Lower > Upper on any channel) are legal and simply match nothing.
// A mapping has no identity of its own; it is addressed by its position
// in the MappingSet that owns it.
type Mapping struct {
	Lower       BGR
	Upper       BGR
	Replacement BGR
}

// DefaultMapping mirrors the initial panel state: a near-white source range
// replaced with pure green.
func DefaultMapping() Mapping {
	return Mapping{
		Lower:       BGR{200, 200, 200},
		Upper:       BGR{255, 255, 255},
		Replacement: BGR{0, 255, 0},
	}
}

// MappingSet is the ordered list of active mappings. Order matters only for
// pixels matched by more than one range: the last mapping wins.
type MappingSet struct {
	mu        sync.RWMutex
	mappings  []Mapping
	listeners []func()
}

// NewMappingSet creates an empty mapping set.
func NewMappingSet() *MappingSet {
	return &MappingSet{
		mappings: make([]Mapping, 0, MaxMappings),
	}
}

// Add appends a mapping and returns its index. Returns ErrMappingLimit once
// MaxMappings are present; the set is left unchanged in that case.
func (s *MappingSet) Add(m Mapping) (int, error) {
	s.mu.Lock()
	if len(s.mappings) >= MaxMappings {
		s.mu.Unlock()
		return -1, fmt.Errorf("%w: %d mappings already active", ErrMappingLimit, MaxMappings)
	}
	s.mappings = append(s.mappings, m)
	index := len(s.mappings) - 1
	s.mu.Unlock()

	s.notify()
	return index, nil
}

// Update replaces the mapping at index.
func (s *MappingSet) Update(index int, m Mapping) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.mappings) {
		s.mu.Unlock()
		return fmt.Errorf("mapping index %d out of range", index)
	}
	s.mappings[index] = m
	s.mu.Unlock()

	s.notify()
	return nil
}

// Remove deletes the mapping at index; mappings after it shift down one slot.
func (s *MappingSet) Remove(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.mappings) {
		s.mu.Unlock()
		return fmt.Errorf("mapping index %d out of range", index)
	}
	s.mappings = append(s.mappings[:index], s.mappings[index+1:]...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Len returns the number of active mappings.
func (s *MappingSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}

// At returns the mapping at index.
func (s *MappingSet) At(index int) (Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.mappings) {
		return Mapping{}, fmt.Errorf("mapping index %d out of range", index)
	}
	return s.mappings[index], nil
}

// Snapshot returns a frozen copy of the sequence. Exports run against a
// snapshot so edits made while one is in flight cannot leak into it.
func (s *MappingSet) Snapshot() []Mapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Mapping, len(s.mappings))
	copy(out, s.mappings)
	return out
}

// Subscribe registers a callback invoked after every change to the set.
// Callbacks run on the mutating goroutine, outside the set's lock.
func (s *MappingSet) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *MappingSet) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
