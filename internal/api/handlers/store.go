package handlers

import (
	"sync"

	"github.com/google/uuid"

	"trip-planner-service/internal/planner"
)

// SessionStore holds the live planning sessions, one orchestrator per
// session id. Sessions are in-memory only and vanish with the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*planner.Orchestrator
	factory  func() *planner.Orchestrator
}

func NewSessionStore(factory func() *planner.Orchestrator) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*planner.Orchestrator),
		factory:  factory,
	}
}

// Create starts a fresh session and returns its id.
func (s *SessionStore) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = s.factory()

	return id
}

// Get returns the orchestrator for a session id.
func (s *SessionStore) Get(id string) (*planner.Orchestrator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.sessions[id]
	return o, ok
}
