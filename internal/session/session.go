// Package session implements the in-memory HTTP session layer the bridge
// runs on: cookie-keyed sessions, one-shot init listeners fired when a new
// session begins, and per-session UI instances living in the UI scope.
//
// Sessions are not persisted anywhere; an expired or invalidated session is
// simply gone.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vk/uibridge/internal/provider"
	"github.com/vk/uibridge/internal/scope"
	"github.com/vk/uibridge/internal/ui"
)

// Session is one user session. It owns its UI provider, its scope store and
// the UI instances created for it.
type Session struct {
	// ID is the opaque session key stored in the cookie.
	ID string

	mu       sync.Mutex
	provider *provider.Provider

	// store is the application-wide UI scope; the session only drops its own
	// identifiers from it on invalidation.
	store    *scope.Store
	uis      map[string]ui.UI
	ids      map[string]scope.Identifier
	nextUIID int
	lastSeen time.Time
}

func newSession(id string, now time.Time, store *scope.Store) *Session {
	return &Session{
		ID:       id,
		store:    store,
		uis:      make(map[string]ui.UI),
		ids:      make(map[string]scope.Identifier),
		lastSeen: now,
	}
}

// SetProvider installs the session's UI provider. Called from an init
// listener during session initialization.
func (s *Session) SetProvider(p *provider.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = p
}

// Provider returns the session's UI provider.
func (s *Session) Provider() *provider.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

// Scope returns the UI-scoped store the session's instances live in.
func (s *Session) Scope() *scope.Store {
	return s.store
}

// UI returns the session's instance for the given UI name, creating and
// initializing it on first use. Creation runs through the provider so the
// scope identifier is in place for the factory call.
func (s *Session) UI(ctx context.Context, name string) (ui.UI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if instance, ok := s.uis[name]; ok {
		return instance, nil
	}
	if s.provider == nil {
		return nil, fmt.Errorf("session %s has no UI provider installed", s.ID)
	}

	s.nextUIID++
	event := &ui.CreateEvent{
		Name:      name,
		UIID:      s.nextUIID,
		SessionID: s.ID,
	}
	instance, err := s.provider.CreateUI(ctx, event)
	if err != nil {
		s.nextUIID--
		return nil, err
	}
	s.uis[name] = instance
	s.ids[name] = scope.Identifier{SessionID: s.ID, UIID: event.UIID}
	return instance, nil
}

// touch records request activity for idle expiry.
func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// invalidate drops every UI instance and all scoped values held by the session.
func (s *Session) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, id := range s.ids {
		s.store.Drop(id)
		delete(s.ids, name)
		delete(s.uis, name)
	}
}
