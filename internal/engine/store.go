package engine

import (
	"context"
	"sync"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// SessionStore owns the per-player encounter sessions. Implementations hand
// out copies; callers write changes back with Put.
type SessionStore interface {
	Get(playerID string) (*Session, bool)
	Put(s *Session)
	Delete(playerID string)
	// IdleSince lists players whose session saw no activity after cutoff.
	IdleSince(cutoff time.Time) []string
}

// CooldownRegistry remembers when each player last started each kind.
type CooldownRegistry interface {
	LastStart(ctx context.Context, playerID string, kind game.Kind) (time.Time, bool, error)
	RecordStart(ctx context.Context, playerID string, kind game.Kind, at time.Time) error
	// ClearStart forgets the start of kind, as if it was never played.
	ClearStart(ctx context.Context, playerID string, kind game.Kind) error
}

// ActionRegistry remembers the time of each player's latest attack.
type ActionRegistry interface {
	Last(playerID string) (time.Time, bool)
	Record(playerID string, at time.Time)
	Clear(playerID string)
}

// MemorySessionStore keeps sessions in a map guarded by a mutex.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

func (m *MemorySessionStore) Get(playerID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[playerID]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

func (m *MemorySessionStore) Put(s *Session) {
	if s == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.PlayerID] = s.Clone()
}

func (m *MemorySessionStore) Delete(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, playerID)
}

func (m *MemorySessionStore) IdleSince(cutoff time.Time) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for id, s := range m.sessions {
		if s.LastActivity.Before(cutoff) {
			out = append(out, id)
		}
	}
	return out
}

type cooldownKey struct {
	playerID string
	kind     game.Kind
}

// MemoryCooldowns is the in-process CooldownRegistry.
type MemoryCooldowns struct {
	mu     sync.RWMutex
	starts map[cooldownKey]time.Time
}

// NewMemoryCooldowns creates an empty in-memory cooldown registry.
func NewMemoryCooldowns() *MemoryCooldowns {
	return &MemoryCooldowns{starts: make(map[cooldownKey]time.Time)}
}

func (m *MemoryCooldowns) LastStart(_ context.Context, playerID string, kind game.Kind) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.starts[cooldownKey{playerID, kind}]
	return t, ok, nil
}

func (m *MemoryCooldowns) RecordStart(_ context.Context, playerID string, kind game.Kind, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts[cooldownKey{playerID, kind}] = at
	return nil
}

func (m *MemoryCooldowns) ClearStart(_ context.Context, playerID string, kind game.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.starts, cooldownKey{playerID, kind})
	return nil
}

// MemoryActions is the in-process ActionRegistry.
type MemoryActions struct {
	mu   sync.Mutex
	last map[string]time.Time
}

// NewMemoryActions creates an empty action registry.
func NewMemoryActions() *MemoryActions {
	return &MemoryActions{last: make(map[string]time.Time)}
}

func (m *MemoryActions) Last(playerID string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.last[playerID]
	return t, ok
}

func (m *MemoryActions) Record(playerID string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[playerID] = at
}

func (m *MemoryActions) Clear(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.last, playerID)
}
