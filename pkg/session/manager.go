package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/moodbot/internal/logging"
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when an operation targets an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// Factory builds the tracker for a new session. name may be empty.
type Factory func(name string) (*conversation.Tracker, error)

// Hooks observe the session lifecycle. Both are called with the number of
// sessions alive after the change.
type Hooks struct {
	OnCreate func(id string, active int)
	OnDelete func(id string, active int)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	factory Factory

	mu       sync.Mutex // Guards locks and sessions
	locks    map[string]*lockEntry
	sessions map[string]*conversation.Tracker

	newID  func() string
	hooks  Hooks
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHooks registers lifecycle observers.
func WithHooks(h Hooks) Option {
	return func(m *Manager) {
		m.hooks = h
	}
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// NewManager creates a Manager that builds trackers with factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory:  factory,
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*conversation.Tracker),
		newID:    uuid.NewString,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Create starts a new session and returns its ID.
func (m *Manager) Create(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tracker, err := m.factory(name)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	m.mu.Lock()
	id := m.newID()
	if _, taken := m.sessions[id]; taken {
		m.mu.Unlock()
		return "", fmt.Errorf("failed to create session: duplicate id %q", id)
	}
	m.sessions[id] = tracker
	active := len(m.sessions)
	m.mu.Unlock()

	m.logger.Debug("Session created", "session_id", id, "active", active)
	if m.hooks.OnCreate != nil {
		m.hooks.OnCreate(id, active)
	}
	return id, nil
}

// WithSession runs fn while holding the lock for the session.
// fn has exclusive access to the tracker until it returns.
func (m *Manager) WithSession(ctx context.Context, sessionID string, fn func(context.Context, *conversation.Tracker) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	tracker, ok := m.lookup(sessionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return fn(ctx, tracker)
}

// Delete removes the session, waiting for in-flight operations on it to finish.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	m.mu.Lock()
	if _, ok := m.sessions[sessionID]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	delete(m.sessions, sessionID)
	active := len(m.sessions)
	m.mu.Unlock()

	m.logger.Debug("Session deleted", "session_id", sessionID, "active", active)
	if m.hooks.OnDelete != nil {
		m.hooks.OnDelete(sessionID, active)
	}
	return nil
}

// List returns the IDs of all live sessions, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) lookup(sessionID string) (*conversation.Tracker, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.sessions[sessionID]
	return t, ok
}
