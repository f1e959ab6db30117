package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/vk/uibridge/internal/scope"
)

// InitListener is called exactly once when a new session begins, before the
// session serves its first request. A listener error aborts session setup.
type InitListener func(ctx context.Context, s *Session) error

// Manager owns the live session set. Sessions are keyed by a cookie and
// expire after the configured idle duration.
type Manager struct {
	cookieName string
	idle       time.Duration
	store      *scope.Store

	mu        sync.Mutex
	sessions  map[string]*Session
	listeners []InitListener

	// newID is swappable for tests.
	newID func() string
	now   func() time.Time
}

// NewManager creates a session manager whose sessions share the given UI
// scope store. idle must be positive.
func NewManager(cookieName string, idle time.Duration, store *scope.Store) *Manager {
	return &Manager{
		cookieName: cookieName,
		idle:       idle,
		store:      store,
		sessions:   make(map[string]*Session),
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// OnInit registers a session-initialization listener. Listeners registered
// after the first session was created still apply to later sessions only.
func (m *Manager) OnInit(l InitListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Resolve returns the request's session, initializing a new one (and setting
// the cookie) when the request carries no valid session. An init listener
// failure aborts the setup: no session is retained and the error is
// returned to the caller.
func (m *Manager) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if s, ok := m.Get(cookie.Value); ok {
			s.touch(m.now())
			return s, nil
		}
		// Stale cookie; fall through and initialize a fresh session.
	}

	s, err := m.initSession(ctx)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

// initSession creates a session and runs the init listeners against it.
func (m *Manager) initSession(ctx context.Context) (*Session, error) {
	logger := ctxlog.FromContext(ctx)

	m.mu.Lock()
	listeners := make([]InitListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	s := newSession(m.newID(), m.now(), m.store)
	logger.Debug("Initializing new session.", "session", s.ID)

	for _, l := range listeners {
		if err := l(ctx, s); err != nil {
			return nil, fmt.Errorf("session initialization aborted: %w", err)
		}
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logger.Info("Session initialized.", "session", s.ID)
	return s, nil
}

// Get looks up a live session by ID without touching its idle clock.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Invalidate drops a session and everything it holds in the UI scope.
func (m *Manager) Invalidate(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.invalidate()
	}
}

// Sweep expires every session idle for longer than the configured duration
// and returns how many were dropped.
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idle {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.invalidate()
	}
	return len(expired)
}

// Run sweeps expired sessions periodically until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	interval := m.idle / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.Debug("Expired idle sessions.", "count", n)
			}
		}
	}
}
