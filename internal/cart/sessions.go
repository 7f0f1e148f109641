package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultSessionTTL is how long an idle session keeps its cart.
	DefaultSessionTTL = 30 * time.Minute

	// sweepInterval is how often the background eviction runs.
	sweepInterval = time.Minute
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Manager owns every live session's cart. Carts are created on first use,
// touched on every access and evicted after the idle TTL; nothing is
// persisted, matching the session-only lifetime of the cart.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration

	eventListeners []func(sessionID string, event Event)
	evictListeners []func(sessionID string)

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	m := &Manager{
		sessions:    make(map[string]*session),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// OnEvent registers a listener for cart events across all sessions.
// Register before traffic arrives; existing carts do not pick up listeners.
func (m *Manager) OnEvent(fn func(sessionID string, event Event)) {
	m.eventListeners = append(m.eventListeners, fn)
}

// OnEvict registers a hook for session eviction, letting subscribers drop
// their per-session state.
func (m *Manager) OnEvict(fn func(sessionID string)) {
	m.evictListeners = append(m.evictListeners, fn)
}

// NewSessionID issues an identifier for the session cookie.
func (m *Manager) NewSessionID() string {
	return uuid.New().String()
}

// Cart returns the session's cart, creating it on first use.
func (m *Manager) Cart(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[sessionID]; ok {
		existing.lastSeen = time.Now()
		return existing.store
	}

	store := NewStore(func(event Event) {
		for _, fn := range m.eventListeners {
			fn(sessionID, event)
		}
	})
	m.sessions[sessionID] = &session{store: store, lastSeen: time.Now()}
	return store
}

// Close stops eviction and shuts down every cart's event dispatch.
func (m *Manager) Close() {
	close(m.stopCleanup)
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sess := range m.sessions {
		sess.store.Close()
	}
	m.sessions = make(map[string]*session)
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) evictIdle() {
	m.mu.Lock()
	var evicted []string
	for id, sess := range m.sessions {
		if time.Since(sess.lastSeen) >= m.ttl {
			sess.store.Close()
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	m.mu.Unlock()

	for _, id := range evicted {
		for _, fn := range m.evictListeners {
			fn(id)
		}
	}
}
