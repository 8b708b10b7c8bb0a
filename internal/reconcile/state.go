package reconcile

import (
	"maps"

	"github.com/listenupapp/bookpage/internal/domain"
)

// State is the per-session selection state. It is not safe for concurrent
// use; the owning session serializes access.
type State struct {
	selections map[domain.Field]domain.SourceID
	interacted map[domain.Field]bool
}

// NewState returns an empty state with no selections.
func NewState() *State {
	return &State{
		selections: make(map[domain.Field]domain.SourceID),
		interacted: make(map[domain.Field]bool),
	}
}

// Select records an explicit user choice. User choices are never replaced by
// automatic initialization.
func (s *State) Select(field domain.Field, source domain.SourceID) {
	s.selections[field] = source
	s.interacted[field] = true
}

// Selection returns the current selection for field, if any.
func (s *State) Selection(field domain.Field) (domain.SourceID, bool) {
	src, ok := s.selections[field]
	return src, ok
}

// Interacted reports whether the user has chosen a source for field.
func (s *State) Interacted(field domain.Field) bool {
	return s.interacted[field]
}

// Invalidate drops every automatic selection so the next Initialize pass
// re-evaluates those fields against new candidate data.
func (s *State) Invalidate() {
	for field := range s.selections {
		if !s.interacted[field] {
			delete(s.selections, field)
		}
	}
}

// Selections returns a copy of the current selections.
func (s *State) Selections() map[domain.Field]domain.SourceID {
	return maps.Clone(s.selections)
}
