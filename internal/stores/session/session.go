// Package session keeps the conversational memory of the chat agent for the
// lifetime of the process.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nlpodyssey/openai-agents-go/memory"
)

// Session is an in-memory implementation of memory.Session
type Session struct {
	ID        uuid.UUID
	AgentID   string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time

	items []memory.TResponseInputItem
	mu    sync.RWMutex
}

var _ memory.Session = (*Session)(nil)

// SessionID returns the session ID as a string
func (s *Session) SessionID(context.Context) string {
	return s.ID.String()
}

// GetItems retrieves the conversation history in chronological order.
// If limit <= 0 all items are returned, otherwise the latest limit items.
func (s *Session) GetItems(_ context.Context, limit int) ([]memory.TResponseInputItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.items
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}

	// Function calls and their outputs must appear together
	return slices.Clone(trimOrphanOutputs(items)), nil
}

// AddItems appends new items to the conversation history
func (s *Session) AddItems(_ context.Context, items []memory.TResponseInputItem) error {
	if len(items) == 0 {
		return nil
	}

	added := slices.Clone(items)
	pairToolCalls(added)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, added...)
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// PopItem removes and returns the most recent item, or nil if the session is empty
func (s *Session) PopItem(context.Context) (*memory.TResponseInputItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil, nil
	}

	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	s.UpdatedAt = time.Now().UTC()
	return &last, nil
}

// ClearSession removes all items
func (s *Session) ClearSession(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.UpdatedAt = time.Now().UTC()
	return nil
}
