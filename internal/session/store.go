package session

import "sync"

// Store keeps the per-participant mass removal flag for connected participants.
// Participants without an entry use the configured default.
type Store struct {
	mu       sync.Mutex
	def      bool
	sessions map[uint64]bool
}

// NewStore creates a store whose absent entries report defaultMassRemove.
func NewStore(defaultMassRemove bool) *Store {
	return &Store{
		def:      defaultMassRemove,
		sessions: make(map[uint64]bool),
	}
}

// IsMassRemove reports whether mass removal is active for the participant.
func (s *Store) IsMassRemove(playerID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on, ok := s.sessions[playerID]; ok {
		return on
	}
	return s.def
}

// Toggle flips the participant's flag, creating the entry on first use, and
// returns the new state.
func (s *Store) Toggle(playerID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	on, ok := s.sessions[playerID]
	if !ok {
		on = s.def
	}
	on = !on
	s.sessions[playerID] = on
	return on
}

// Forget drops the participant's entry, e.g. on disconnect. It reports
// whether mass removal was active, so callers can tear down its overlay.
func (s *Store) Forget(playerID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	on, ok := s.sessions[playerID]
	delete(s.sessions, playerID)
	return ok && on
}

// Len returns the number of participants with an entry.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ActiveCount returns how many participants with an entry have mass removal on.
func (s *Store) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, on := range s.sessions {
		if on {
			n++
		}
	}
	return n
}
