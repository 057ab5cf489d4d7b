package session

import (
	"context"
	"sort"
	"sync"

	"github.com/hupe1980/agentzero/core"
)

// InMemoryStore is a volatile Store implementation keeping transcripts in a
// process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo programs. Returned transcripts are copies.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]core.Message
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string][]core.Message)}
}

// Append adds a message to an existing or newly created session.
func (s *InMemoryStore) Append(_ context.Context, sessionID string, msg core.Message) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	return nil
}

// Messages returns a copy of the session's transcript.
func (s *InMemoryStore) Messages(_ context.Context, sessionID string) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.sessions[sessionID]
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Sessions returns all session ids in lexical order.
func (s *InMemoryStore) Sessions(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
