package model

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

var phoneRe = regexp.MustCompile(`^\d{10}$`)

// Application is the in-progress loan application a session accumulates from
// the conversation. It is mutated only through the Session aggregate; decision
// components read it and return new Decisions.
type Application struct {
	// Declared identity, compared against the KYC record during verification.
	Name        string
	Phone       string
	Address     string
	DateOfBirth string // ISO date, e.g. "1990-04-12"

	// Requested terms.
	Amount       decimal.Decimal
	TenureMonths int

	// SalarySlip marks whether a salary document has been recorded for this
	// application. It gates the conditional-approval tier.
	SalarySlip bool
}

// HasLoanTerms reports whether both amount and tenure have been captured.
func (a Application) HasLoanTerms() bool {
	return a.Amount.IsPositive() && a.TenureMonths >= 1
}

// HasIdentity reports whether all declared identity fields are present.
func (a Application) HasIdentity() bool {
	return a.Name != "" && a.Phone != "" && a.Address != "" && a.DateOfBirth != ""
}

// ValidateIdentity checks the declared identity fields for shape problems
// that can be fixed by re-prompting, before any collaborator is consulted.
func (a Application) ValidateIdentity() error {
	if strings.TrimSpace(a.Name) == "" {
		return valueobject.NewValidationError("name", "must not be empty")
	}
	if !phoneRe.MatchString(a.Phone) {
		return valueobject.NewValidationError("phone", "must be a 10-digit number")
	}
	if strings.TrimSpace(a.Address) == "" {
		return valueobject.NewValidationError("address", "must not be empty")
	}
	if strings.TrimSpace(a.DateOfBirth) == "" {
		return valueobject.NewValidationError("date_of_birth", "must not be empty")
	}
	return nil
}

// ValidateTerms checks the requested loan terms.
func (a Application) ValidateTerms() error {
	if !a.Amount.IsPositive() {
		return valueobject.NewValidationError("amount", "must be positive")
	}
	if a.TenureMonths < 1 {
		return valueobject.NewValidationError("tenure_months", "must be at least 1")
	}
	return nil
}
