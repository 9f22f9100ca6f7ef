// Package adapter implements the external collaborator ports: the KYC
// directory and the credit bureau, each with an HTTP client for real
// integration and a deterministic stub for development and tests.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
)

// CreditBureauConfig holds configuration for the credit bureau adapter.
type CreditBureauConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPCreditBureauClient implements port.CreditBureauClient against a bureau
// HTTP API. Retry and timeout policy live with the caller; each call here is
// a single attempt bounded by the request context.
type HTTPCreditBureauClient struct {
	config CreditBureauConfig
	client *http.Client
}

func NewHTTPCreditBureauClient(config CreditBureauConfig) *HTTPCreditBureauClient {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCreditBureauClient{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

type creditProfilePayload struct {
	Score            int             `json:"score"`
	PreApprovedLimit decimal.Decimal `json:"pre_approved_limit"`
	ExistingEMITotal decimal.Decimal `json:"existing_emi_total"`
	MonthlySalary    decimal.Decimal `json:"monthly_salary"`
}

// FetchProfile retrieves the credit profile for a phone number. A 404 maps
// to port.ErrProfileNotFound; other non-200 statuses are transport failures.
func (c *HTTPCreditBureauClient) FetchProfile(ctx context.Context, phone string) (model.CreditProfile, error) {
	if phone == "" {
		return model.CreditProfile{}, fmt.Errorf("phone is required")
	}

	url := fmt.Sprintf("%s/v1/profiles/%s", c.config.BaseURL, phone)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.CreditProfile{}, fmt.Errorf("build bureau request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return model.CreditProfile{}, fmt.Errorf("bureau request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.CreditProfile{}, port.ErrProfileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return model.CreditProfile{}, fmt.Errorf("bureau returned status %d", resp.StatusCode)
	}

	var payload creditProfilePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.CreditProfile{}, fmt.Errorf("decode bureau response: %w", err)
	}

	return model.CreditProfile{
		Score:                payload.Score,
		PreApprovedLimit:     payload.PreApprovedLimit,
		ExistingLoanEMITotal: payload.ExistingEMITotal,
		MonthlySalary:        payload.MonthlySalary,
		FetchedAt:            time.Now().UTC(),
	}, nil
}
