package valueobject

import "github.com/shopspring/decimal"

// Policy holds the static lending-policy parameters. It is loaded once at
// startup and treated as immutable for the process lifetime, so concurrent
// reads need no locking.
type Policy struct {
	// MinCreditScore is the hard floor below which every application is
	// rejected. The boundary is inclusive: a score equal to the floor passes.
	MinCreditScore int

	// LimitMultiplier caps conditionally approvable amounts at this multiple
	// of the customer's pre-approved limit.
	LimitMultiplier decimal.Decimal

	// EMIIncomeCap is the maximum fraction of verified monthly salary the
	// total monthly obligation (new EMI plus existing EMIs) may reach.
	EMIIncomeCap decimal.Decimal

	// MaxVerifyAttempts bounds identity re-prompts before the session is
	// handed off to a terminal stage.
	MaxVerifyAttempts int

	// MaxSlipReentries bounds how many times a session may re-enter
	// underwriting from the salary-slip stage.
	MaxSlipReentries int

	// DefaultTenureMonths applies when the customer selects an amount
	// without a tenure.
	DefaultTenureMonths int

	// DefaultValidityDays is the sanction validity window unless the
	// matched offer overrides it.
	DefaultValidityDays int
}

// DefaultPolicy returns the production lending policy.
func DefaultPolicy() Policy {
	return Policy{
		MinCreditScore:      700,
		LimitMultiplier:     decimal.NewFromInt(2),
		EMIIncomeCap:        decimal.NewFromFloat(0.5),
		MaxVerifyAttempts:   3,
		MaxSlipReentries:    2,
		DefaultTenureMonths: 60,
		DefaultValidityDays: 30,
	}
}
