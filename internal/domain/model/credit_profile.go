package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditProfile is a read-only snapshot from the credit bureau, fetched fresh
// for every underwriting attempt unless the caller explicitly supplies a
// cached copy.
type CreditProfile struct {
	// Score is the bureau score in [0, 900].
	Score int

	// PreApprovedLimit is the amount eligible for instant approval.
	PreApprovedLimit decimal.Decimal

	// ExistingLoanEMITotal is the sum of EMIs the customer already services.
	ExistingLoanEMITotal decimal.Decimal

	// MonthlySalary is the declared or verified monthly income.
	MonthlySalary decimal.Decimal

	FetchedAt time.Time
}
