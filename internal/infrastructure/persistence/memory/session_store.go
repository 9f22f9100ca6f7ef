// Package memory provides table-indexed in-process stores used as the default
// backend and by tests. Ownership is explicit: one entry per session ID, the
// store holds the only long-lived reference.
package memory

import (
	"context"
	"sync"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
)

// SessionStore implements port.SessionRepository over a map keyed by session
// ID with optimistic version checking, mirroring the postgres repo contract.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]storedSession
}

type storedSession struct {
	session model.Session
	version int
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]storedSession{}}
}

func (s *SessionStore) Save(_ context.Context, sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[sess.ID()]
	if ok && existing.version != sess.Version() {
		return port.ErrVersionConflict
	}
	s.sessions[sess.ID()] = storedSession{
		session: sess.ClearEvents(),
		version: sess.Version() + 1,
	}
	return nil
}

func (s *SessionStore) FindByID(_ context.Context, id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[id]
	if !ok {
		return model.Session{}, port.ErrSessionNotFound
	}
	return reconstructAt(stored.session, stored.version), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return port.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// reconstructAt rebuilds the aggregate carrying the store's version so the
// next Save passes the optimistic check.
func reconstructAt(sess model.Session, version int) model.Session {
	return model.ReconstructSession(
		sess.ID(),
		sess.Stage(),
		sess.Transcript(),
		sess.Application(),
		sess.Identity(),
		sess.VerifyAttempts(),
		sess.SlipReentries(),
		sess.ProcessedMessages(),
		sess.Active(),
		version,
		sess.CreatedAt(),
		sess.UpdatedAt(),
	)
}
