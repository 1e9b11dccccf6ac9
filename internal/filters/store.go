package filters

import (
	"fmt"
	"slices"
	"sync"
)

// Snapshot maps views to their filter state.
type Snapshot map[View]State

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for v, st := range s {
		out[v] = st.Clone()
	}
	return out
}

// Store owns the filter state of every view.
//
// Records are only changed through Replace and Reset. Callers always get
// copies, so a returned State can be modified freely without touching the
// store.
type Store struct {
	mu     sync.RWMutex
	states map[View]State
}

// NewStore creates a store with every view set to its default record.
func NewStore() *Store {
	return &Store{states: Defaults()}
}

// Get returns the current record of view.
func (s *Store) Get(view View) (State, error) {
	if !view.IsValid() {
		return State{}, invalidView(view)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[view].Clone(), nil
}

// Replace overwrites the record of view with next.
// No validation or merging happens; the caller supplies a complete record.
func (s *Store) Replace(view View, next State) error {
	if !view.IsValid() {
		return invalidView(view)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[view] = next.Clone()
	return nil
}

// Reset restores the default record of view while keeping the sort and
// paging preferences found in current. See ResetState for the exact rules.
// The resulting record is stored and returned.
func (s *Store) Reset(view View, current State) (State, error) {
	defaults, err := Default(view)
	if err != nil {
		return State{}, err
	}
	next := ResetState(defaults, current)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[view] = next
	return next.Clone(), nil
}

// Snapshot returns a copy of every view record.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot(s.states).Clone()
}

// Restore replaces the records of the views present in snap.
// Views missing from snap keep their current record. Nothing is changed
// when snap names an unknown view.
func (s *Store) Restore(snap Snapshot) error {
	for v := range snap {
		if !v.IsValid() {
			return invalidView(v)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for v, st := range snap {
		s.states[v] = st.Clone()
	}
	return nil
}

// ResetState builds the record produced by resetting current to defaults.
//
// sortIndex and sortDirection always come from current, even when unset
// there. limit and offset come from current only when current.Limit is
// defined; offset follows limit's guard rather than its own. Every other
// field comes from defaults.
func ResetState(defaults, current State) State {
	next := State{
		Limit:         cloneInt(defaults.Limit),
		Offset:        cloneInt(defaults.Offset),
		SortIndex:     cloneInt(current.SortIndex),
		SortDirection: current.SortDirection,
		Text:          defaults.Text,
		Version:       slices.Clone(defaults.Version),
		Impacting:     slices.Clone(defaults.Impacting),
		Hits:          slices.Clone(defaults.Hits),
		RuleStatus:    defaults.RuleStatus,
	}
	if current.Limit != nil {
		next.Limit = cloneInt(current.Limit)
		next.Offset = cloneInt(current.Offset)
	}
	return next
}

func invalidView(v View) error {
	return fmt.Errorf("%w: %s", ErrInvalidView, v)
}
