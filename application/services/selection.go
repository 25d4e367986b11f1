package services

import (
	"opencut-backend/domain/core/valueobjects"
)

// SelectionSet is the set of currently selected clips for one session,
// keyed by the exact (track, clip) pair: the same clip reached through a
// different track reference is a different selection entry. Insertion
// order is preserved so bulk operations apply deterministically.
//
// SelectionSet is not safe for concurrent use; the owning session
// serializes access.
type SelectionSet struct {
	refs  map[string]valueobjects.SelectionRef
	order []string
}

// NewSelectionSet creates an empty selection
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{refs: make(map[string]valueobjects.SelectionRef)}
}

// Replace makes ref the sole selection
func (s *SelectionSet) Replace(ref valueobjects.SelectionRef) {
	s.Clear()
	s.add(ref)
}

// Toggle adds ref to the selection, or removes it if already selected
func (s *SelectionSet) Toggle(ref valueobjects.SelectionRef) {
	key := ref.Key()
	if _, ok := s.refs[key]; ok {
		s.remove(key)
		return
	}
	s.add(ref)
}

// Set replaces the whole selection, the marquee path. Duplicate refs
// collapse to one entry.
func (s *SelectionSet) Set(refs []valueobjects.SelectionRef) {
	s.Clear()
	for _, ref := range refs {
		if _, ok := s.refs[ref.Key()]; !ok {
			s.add(ref)
		}
	}
}

// Clear empties the selection
func (s *SelectionSet) Clear() {
	s.refs = make(map[string]valueobjects.SelectionRef)
	s.order = s.order[:0]
}

// Contains reports whether ref is selected
func (s *SelectionSet) Contains(ref valueobjects.SelectionRef) bool {
	_, ok := s.refs[ref.Key()]
	return ok
}

// Refs returns the selected refs in selection order
func (s *SelectionSet) Refs() []valueobjects.SelectionRef {
	out := make([]valueobjects.SelectionRef, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.refs[key])
	}
	return out
}

// Len returns the number of selected clips
func (s *SelectionSet) Len() int {
	return len(s.refs)
}

// Prune drops refs the keep predicate rejects. Called after operations
// that may have removed or moved clips out from under the selection.
func (s *SelectionSet) Prune(keep func(valueobjects.SelectionRef) bool) {
	for _, key := range append([]string(nil), s.order...) {
		if !keep(s.refs[key]) {
			s.remove(key)
		}
	}
}

func (s *SelectionSet) add(ref valueobjects.SelectionRef) {
	s.refs[ref.Key()] = ref
	s.order = append(s.order, ref.Key())
}

func (s *SelectionSet) remove(key string) {
	delete(s.refs, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
