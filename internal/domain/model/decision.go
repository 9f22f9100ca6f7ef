package model

import (
	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

// Decision is the outcome of one underwriting run. It is immutable once
// produced: a re-run supersedes it with a new Decision, never an edit.
type Decision struct {
	Outcome valueobject.DecisionOutcome

	// Reason is the human-readable reason code, set for every outcome.
	Reason string

	// Offer is the product the decision was priced against. Zero when no
	// offer matched (OfferSelected false).
	Offer         Offer
	OfferSelected bool

	// Financials, populated only when Outcome is Approved. The sanction
	// assembler copies these verbatim; they are never recomputed downstream.
	EMI           decimal.Decimal
	TotalPayable  decimal.Decimal
	ProcessingFee decimal.Decimal
}

// Approved reports whether the decision outcome is Approved.
func (d Decision) Approved() bool {
	return d.Outcome.Equal(valueobject.OutcomeApproved)
}
