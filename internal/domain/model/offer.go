package model

import "github.com/shopspring/decimal"

// Offer is a lending product with eligibility bands and pricing. The catalog
// is loaded once and treated as immutable for the process lifetime.
type Offer struct {
	ID   string
	Name string

	MinCreditScore int
	MaxCreditScore int

	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal

	MinTenureMonths int
	MaxTenureMonths int

	// BaseRatePercent is the annual interest rate, e.g. 10.5 for 10.5% p.a.
	BaseRatePercent decimal.Decimal

	// ProcessingFeePct is charged on the principal at sanction.
	ProcessingFeePct decimal.Decimal

	// ValidityDays overrides the policy sanction-validity default when > 0.
	ValidityDays int

	Active bool
}

// Matches reports whether this offer's eligibility bands contain the given
// score, amount and tenure. All band edges are inclusive.
func (o Offer) Matches(score int, amount decimal.Decimal, tenureMonths int) bool {
	if !o.Active {
		return false
	}
	if score < o.MinCreditScore || score > o.MaxCreditScore {
		return false
	}
	if amount.LessThan(o.MinAmount) || amount.GreaterThan(o.MaxAmount) {
		return false
	}
	if tenureMonths < o.MinTenureMonths || tenureMonths > o.MaxTenureMonths {
		return false
	}
	return true
}
