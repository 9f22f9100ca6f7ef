package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SanctionRecord is the terminal artifact of an approved origination: the
// canonical data a document renderer later consumes. Records are write-once;
// a new application produces a new record, never an edit of an old one.
//
// Every monetary figure here is copied verbatim from the Decision that
// approved the loan and is reproducible by re-running the financial
// calculator on the same (amount, rate, tenure) triple.
type SanctionRecord struct {
	ID        string
	SessionID string

	// Reference is the human-facing letter reference, e.g. "SL/<id>".
	Reference string

	// Identity snapshot at sanction time.
	CustomerName string
	Phone        string
	Address      string
	DateOfBirth  string

	LoanAmount          decimal.Decimal
	TenureMonths        int
	InterestRatePercent decimal.Decimal
	EMI                 decimal.Decimal
	ProcessingFee       decimal.Decimal
	TotalPayable        decimal.Decimal

	IssuedAt     time.Time
	ValidityDays int

	// DisbursementAccountRef identifies the account funds will be credited to.
	DisbursementAccountRef string
}

// ValidUntil returns the last day the sanction can be acted on.
func (r SanctionRecord) ValidUntil() time.Time {
	return r.IssuedAt.AddDate(0, 0, r.ValidityDays)
}
