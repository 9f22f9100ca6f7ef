package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/vittamlabs/origination/internal/domain/model"
)

// ErrSanctionNotFound is returned when no sanction record exists for a session.
var ErrSanctionNotFound = errors.New("sanction record not found")

// ErrSanctionExists guards the write-once rule for sanction records.
var ErrSanctionExists = errors.New("sanction record already exists for session")

// SanctionStore implements port.SanctionRecordRepository. Records are
// append-only: a second save for the same session is refused.
type SanctionStore struct {
	mu        sync.RWMutex
	bySession map[string]model.SanctionRecord
}

func NewSanctionStore() *SanctionStore {
	return &SanctionStore{bySession: map[string]model.SanctionRecord{}}
}

func (s *SanctionStore) Save(_ context.Context, rec model.SanctionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bySession[rec.SessionID]; ok {
		return ErrSanctionExists
	}
	s.bySession[rec.SessionID] = rec
	return nil
}

func (s *SanctionStore) FindBySessionID(_ context.Context, sessionID string) (model.SanctionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.bySession[sessionID]
	if !ok {
		return model.SanctionRecord{}, ErrSanctionNotFound
	}
	return rec, nil
}
