package adapter

import (
	"context"
	"sync"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
)

// StubKYCClient is an in-memory KYC directory for development and tests.
type StubKYCClient struct {
	mu      sync.RWMutex
	records map[string]model.KYCRecord
}

func NewStubKYCClient() *StubKYCClient {
	return &StubKYCClient{records: map[string]model.KYCRecord{}}
}

// SeededStubKYCClient returns a directory preloaded with the demo customers.
func SeededStubKYCClient() *StubKYCClient {
	c := NewStubKYCClient()
	c.Register(model.KYCRecord{
		Name:        "Rahul Sharma",
		Phone:       "9876543210",
		Address:     "14 MG Road, Bengaluru",
		DateOfBirth: "1990-04-12",
	})
	c.Register(model.KYCRecord{
		Name:        "Priya Nair",
		Phone:       "9812345670",
		Address:     "22 Marine Drive, Kochi",
		DateOfBirth: "1987-11-03",
	})
	return c
}

// Register adds or replaces a record, keyed by phone.
func (c *StubKYCClient) Register(rec model.KYCRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[rec.Phone] = rec
}

func (c *StubKYCClient) Lookup(_ context.Context, phone string) (model.KYCRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[phone]
	if !ok {
		return model.KYCRecord{}, port.ErrKYCNotFound
	}
	return rec, nil
}
