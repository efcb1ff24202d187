package dialog

import (
	"sync"

	"github.com/akozyreva/somnus/internal/domain"
)

// Store maps user ids to their current dialog state. It is in-memory and
// ephemeral: a restart loses in-flight dialogs. A single mutex guards the
// map, which is fine at the scale of a personal bot.
type Store struct {
	mu     sync.RWMutex
	states map[int64]domain.DialogState
}

// NewStore creates an empty dialog state store.
func NewStore() *Store {
	return &Store{states: make(map[int64]domain.DialogState)}
}

// Get returns the user's current state, DialogNone when unset.
func (s *Store) Get(userID int64) domain.DialogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[userID]
}

// Set records the user's state, overwriting any pending dialog. Starting
// a new dialog abandons the previous one; the newer request wins.
func (s *Store) Set(userID int64, state domain.DialogState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == domain.DialogNone {
		delete(s.states, userID)
		return
	}
	s.states[userID] = state
}

// Clear resets the user's state to DialogNone.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
