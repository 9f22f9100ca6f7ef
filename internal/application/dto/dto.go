// Package dto carries the request and response shapes of the application
// layer, decoupled from both domain models and transport encodings.
package dto

import "time"

// PromptKind distinguishes plain-field prompts from document-upload prompts.
type PromptKind string

const (
	PromptField    PromptKind = "field"
	PromptDocument PromptKind = "document"
)

// InputPrompt names a structured input the client should collect next.
type InputPrompt struct {
	Name  string     `json:"name"`
	Kind  PromptKind `json:"kind"`
	Label string     `json:"label"`
}

type StartSessionResponse struct {
	SessionID string        `json:"session_id"`
	Stage     string        `json:"stage"`
	Greeting  string        `json:"greeting"`
	Prompts   []InputPrompt `json:"prompts,omitempty"`
}

type SendMessageRequest struct {
	SessionID       string `json:"session_id"`
	Content         string `json:"content"`
	ClientMessageID string `json:"client_message_id,omitempty"`
}

type SendMessageResponse struct {
	SessionID string        `json:"session_id"`
	Stage     string        `json:"stage"`
	Reply     string        `json:"reply"`
	Prompts   []InputPrompt `json:"prompts,omitempty"`
}

type TurnResponse struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

type SessionHistoryResponse struct {
	SessionID string         `json:"session_id"`
	Stage     string         `json:"stage"`
	Active    bool           `json:"active"`
	Turns     []TurnResponse `json:"turns"`
}

type SanctionRecordResponse struct {
	ID                     string    `json:"id"`
	SessionID              string    `json:"session_id"`
	Reference              string    `json:"reference"`
	CustomerName           string    `json:"customer_name"`
	Phone                  string    `json:"phone"`
	Address                string    `json:"address"`
	DateOfBirth            string    `json:"date_of_birth"`
	LoanAmount             string    `json:"loan_amount"`
	TenureMonths           int       `json:"tenure_months"`
	InterestRatePercent    string    `json:"interest_rate_percent"`
	EMI                    string    `json:"emi"`
	ProcessingFee          string    `json:"processing_fee"`
	TotalPayable           string    `json:"total_payable"`
	IssuedAt               time.Time `json:"issued_at"`
	ValidUntil             time.Time `json:"valid_until"`
	DisbursementAccountRef string    `json:"disbursement_account_ref"`
}
