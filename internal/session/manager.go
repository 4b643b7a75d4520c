// Package session keeps one favorites store and drag coordinator per
// browser session. Sessions live in memory and end after a period of
// inactivity, which also discards their favorites.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/evcraddock/estate-finder/internal/dnd"
	"github.com/evcraddock/estate-finder/internal/favorites"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// DefaultSweepSchedule runs the idle sweep every five minutes.
const DefaultSweepSchedule = "@every 5m"

// Session is the per-user state behind the API.
type Session struct {
	ID        string
	Favorites *favorites.Store
	Drag      *dnd.Coordinator

	lastSeen time.Time
}

// Manager creates, finds and expires sessions.
type Manager struct {
	resolver dnd.Resolver
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager. Drags in every session resolve ids
// through resolver. A ttl <= 0 uses DefaultTTL.
func NewManager(resolver dnd.Resolver, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		resolver: resolver,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// TTL returns the idle timeout.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// New starts a session with a fresh id and empty favorites.
func (m *Manager) New() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.create()
}

func (m *Manager) create() *Session {
	store := favorites.NewStore()
	s := &Session{
		ID:        uuid.NewString(),
		Favorites: store,
		Drag:      dnd.NewCoordinator(m.resolver, store),
		lastSeen:  m.now(),
	}
	m.sessions[s.ID] = s
	return s
}

// Get returns the session for id and marks it active. Unknown or expired ids
// get a new session under a new id; created reports when that happened.
func (m *Manager) Get(id string) (s *Session, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if s, ok := m.sessions[id]; ok {
		if now.Sub(s.lastSeen) <= m.ttl {
			s.lastSeen = now
			return s, false
		}
		delete(m.sessions, id)
	}
	return m.create(), true
}

// Lookup returns an existing session without creating one or touching it.
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}

// End discards a session and its favorites.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Sweep ends sessions idle for longer than the TTL and returns how many it removed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Schedule registers a periodic sweep on c. schedule uses cron syntax,
// e.g. "@every 5m"; an empty schedule uses DefaultSweepSchedule.
func (m *Manager) Schedule(c *cron.Cron, schedule string) (cron.EntryID, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return c.AddFunc(schedule, func() {
		if n := m.Sweep(m.now()); n > 0 {
			slog.Info("expired idle sessions", "count", n, "remaining", m.Len())
		}
	})
}
