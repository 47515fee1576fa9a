package session

import (
	"context"
	"strconv"
	"sync"

	"github.com/levenlabs/go-lflag"
	"github.com/loadlens/loadlens/pkg/types"
)

// memoryStore keeps session state in a guarded map. Each session's pipeline
// is synchronous, but separate sessions hit the store concurrently.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]types.SessionState
	maxCount int
}

func configuredMemory() *memoryStore {
	m := &memoryStore{sessions: make(map[string]types.SessionState)}
	maxSessions := lflag.String("max-sessions", "10000", "Maximum number of in-memory sessions before new ones are rejected")
	lflag.Do(func() {
		n, err := strconv.Atoi(*maxSessions)
		if err != nil || n < 0 {
			panic("max-sessions must be a non-negative integer")
		}
		m.maxCount = n
	})
	return m
}

// NewMemory returns an unbounded in-memory store, used by tests and the
// sample generator.
func NewMemory() Store {
	return &memoryStore{sessions: make(map[string]types.SessionState)}
}

func (m *memoryStore) Get(ctx context.Context, sessionID string) (types.SessionState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[sessionID]
	if !ok {
		return types.SessionState{}, ErrNotFound
	}
	return state, nil
}

func (m *memoryStore) Put(ctx context.Context, sessionID string, state types.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[sessionID]; !exists && m.maxCount > 0 && len(m.sessions) >= m.maxCount {
		return ErrTooManySessions
	}
	m.sessions[sessionID] = state
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]types.SessionState)
	return nil
}
