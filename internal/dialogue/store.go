package dialogue

import (
	"context"
	"errors"
	"sync"
)

// ErrSessionNotFound is returned when a session ID has no stored context.
var ErrSessionNotFound = errors.New("dialogue: session not found")

// SessionStore persists conversation contexts between turns.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, sess *Context) error
	Load(ctx context.Context, sessionID string) (*Context, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps contexts in process memory. It backs the CLI and tests;
// the API server uses the redis store unless configured otherwise.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Context
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Context)}
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, sess *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *sess
	stored.Slots = append([]SlotRange(nil), sess.Slots...)
	s.sessions[sessionID] = stored
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := stored
	out.Slots = append([]SlotRange(nil), stored.Slots...)
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
