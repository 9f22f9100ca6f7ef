package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/model"
)

// StubCreditBureauClient is a development/test adapter. Profiles registered
// with WithProfile are returned verbatim; everything else gets a
// deterministic profile derived from a hash of the phone number, so repeated
// runs produce repeatable scenarios.
type StubCreditBureauClient struct {
	mu     sync.RWMutex
	seeded map[string]model.CreditProfile
}

func NewStubCreditBureauClient() *StubCreditBureauClient {
	return &StubCreditBureauClient{seeded: map[string]model.CreditProfile{}}
}

// WithProfile registers a fixed profile for a phone number.
func (c *StubCreditBureauClient) WithProfile(phone string, profile model.CreditProfile) *StubCreditBureauClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seeded[phone] = profile
	return c
}

func (c *StubCreditBureauClient) FetchProfile(_ context.Context, phone string) (model.CreditProfile, error) {
	if phone == "" {
		return model.CreditProfile{}, fmt.Errorf("phone is required")
	}

	c.mu.RLock()
	profile, ok := c.seeded[phone]
	c.mu.RUnlock()
	if ok {
		profile.FetchedAt = time.Now().UTC()
		return profile, nil
	}

	h := sha256.Sum256([]byte(phone))
	score := 300 + int(binary.BigEndian.Uint32(h[:4])%601) // range [300, 900]
	limit := decimal.NewFromInt(int64(50000 + binary.BigEndian.Uint32(h[4:8])%450001))
	salary := decimal.NewFromInt(int64(25000 + binary.BigEndian.Uint32(h[8:12])%175001))
	existingEMI := decimal.NewFromInt(int64(binary.BigEndian.Uint32(h[12:16]) % 20001))

	return model.CreditProfile{
		Score:                score,
		PreApprovedLimit:     limit,
		ExistingLoanEMITotal: existingEMI,
		MonthlySalary:        salary,
		FetchedAt:            time.Now().UTC(),
	}, nil
}
