// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Sessions are ephemeral by design: there is exactly one logical
// session per widget instance, held in memory and discarded when the
// widget is torn down or the process restarts.
//
// Characteristics:
//   - Stores *trainer.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"fretquiz/internal/trainer"
)

// ErrNotFound is returned when a session ID has no live session.
var ErrNotFound = errors.New("not found")

// Store defines the registry interface for live training sessions.
type Store interface {
	// Save registers or updates a session.
	Save(ctx context.Context, s *trainer.Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session does not exist.
	Get(ctx context.Context, id string) (*trainer.Session, error)

	// Delete removes a session. Removing an unknown ID is a no-op.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions map
	sessions map[string]*trainer.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*trainer.Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *trainer.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*trainer.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete removes the session from the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
