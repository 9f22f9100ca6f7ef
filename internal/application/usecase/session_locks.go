package usecase

import "sync"

// sessionLocks serializes message processing per session: at most one
// in-flight stage transition per session, while distinct sessions proceed in
// parallel. Entries are reference counted so idle sessions do not accumulate
// locks.
type sessionLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{entries: map[string]*lockEntry{}}
}

// Acquire blocks until the session's lock is held and returns the release
// function.
func (l *sessionLocks) Acquire(sessionID string) func() {
	l.mu.Lock()
	e, ok := l.entries[sessionID]
	if !ok {
		e = &lockEntry{}
		l.entries[sessionID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, sessionID)
		}
		l.mu.Unlock()
	}
}
