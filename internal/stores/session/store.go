package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// namespace scopes the deterministic session IDs derived from an identity
var namespace = uuid.MustParse("6c1b7f0e-3d0a-5a4e-9b64-6d656d306167")

// IDFor derives the session ID for an agent/user pair. The same pair always
// maps to the same ID
func IDFor(agentID, userID string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(agentID+"\x00"+userID))
}

// Store holds the sessions of the running process
type Store struct {
	sessions map[uuid.UUID]*Session
	mu       sync.Mutex
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// ForIdentity returns the session for an agent/user pair, creating it on first use
func (s *Store) ForIdentity(agentID, userID string) *Session {
	id := IDFor(agentID, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:        id,
		AgentID:   agentID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[id] = sess
	return sess
}
