package ui

import "maps"

// State is a screen's opaque state map. Set marks it dirty so the engine
// re-renders after the current event.
type State struct {
	values map[string]any
	dirty  bool
}

// NewState returns a state seeded with a copy of initial.
func NewState(initial map[string]any) *State {
	s := &State{values: maps.Clone(initial)}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return s
}

// Get returns the raw value for key.
func (s *State) Get(key string) any {
	return s.values[key]
}

// String returns a string value or "".
func (s *State) String(key string) string {
	v, _ := s.values[key].(string)
	return v
}

// Int returns an int value or 0.
func (s *State) Int(key string) int {
	v, _ := s.values[key].(int)
	return v
}

// Bool returns a bool value or false.
func (s *State) Bool(key string) bool {
	v, _ := s.values[key].(bool)
	return v
}

// Set stores value under key.
func (s *State) Set(key string, value any) {
	s.values[key] = value
	s.dirty = true
}

// Update stores every entry of values.
func (s *State) Update(values map[string]any) {
	maps.Copy(s.values, values)
	s.dirty = true
}

// Delete removes key.
func (s *State) Delete(key string) {
	delete(s.values, key)
	s.dirty = true
}

// Dirty reports whether the state changed since the last TakeDirty.
func (s *State) Dirty() bool {
	return s.dirty
}

// TakeDirty returns the dirty flag and clears it.
func (s *State) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}
