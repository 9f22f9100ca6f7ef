package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
)

// KYCConfig holds configuration for the KYC directory adapter.
type KYCConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPKYCClient implements port.KYCClient against the KYC directory API.
type HTTPKYCClient struct {
	config KYCConfig
	client *http.Client
}

func NewHTTPKYCClient(config KYCConfig) *HTTPKYCClient {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPKYCClient{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

type kycPayload struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
}

// Lookup resolves the KYC record for a phone number. A 404 maps to
// port.ErrKYCNotFound; other non-200 statuses are transport failures.
func (c *HTTPKYCClient) Lookup(ctx context.Context, phone string) (model.KYCRecord, error) {
	if phone == "" {
		return model.KYCRecord{}, fmt.Errorf("phone is required")
	}

	url := fmt.Sprintf("%s/v1/kyc/%s", c.config.BaseURL, phone)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.KYCRecord{}, fmt.Errorf("build kyc request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return model.KYCRecord{}, fmt.Errorf("kyc request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return model.KYCRecord{}, port.ErrKYCNotFound
	default:
		return model.KYCRecord{}, fmt.Errorf("kyc directory returned status %d", resp.StatusCode)
	}

	var payload kycPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.KYCRecord{}, fmt.Errorf("decode kyc response: %w", err)
	}

	return model.KYCRecord{
		Name:        payload.Name,
		Phone:       payload.Phone,
		Address:     payload.Address,
		DateOfBirth: payload.DateOfBirth,
	}, nil
}
