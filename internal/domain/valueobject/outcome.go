package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DecisionOutcome – closed tagged variant
// ---------------------------------------------------------------------------

// DecisionOutcome is the closed set of underwriting outcomes. Using a value
// object rather than a bare string keeps handling exhaustive: the zero value
// is invalid and only the three declared variants exist.
type DecisionOutcome struct {
	value string
}

const (
	outcomeApproved        = "APPROVED"
	outcomeNeedsSalarySlip = "NEEDS_SALARY_SLIP"
	outcomeRejected        = "REJECTED"
)

var (
	OutcomeApproved        = DecisionOutcome{value: outcomeApproved}
	OutcomeNeedsSalarySlip = DecisionOutcome{value: outcomeNeedsSalarySlip}
	OutcomeRejected        = DecisionOutcome{value: outcomeRejected}
)

var validOutcomes = map[string]DecisionOutcome{
	outcomeApproved:        OutcomeApproved,
	outcomeNeedsSalarySlip: OutcomeNeedsSalarySlip,
	outcomeRejected:        OutcomeRejected,
}

// NewDecisionOutcome creates a DecisionOutcome from a raw string.
func NewDecisionOutcome(s string) (DecisionOutcome, error) {
	v, ok := validOutcomes[s]
	if !ok {
		return DecisionOutcome{}, fmt.Errorf("invalid decision outcome: %q", s)
	}
	return v, nil
}

// String returns the string representation of the outcome.
func (o DecisionOutcome) String() string { return o.value }

// IsZero returns true if the outcome has not been initialised.
func (o DecisionOutcome) IsZero() bool { return o.value == "" }

// Equal returns true when both outcomes carry the same value.
func (o DecisionOutcome) Equal(other DecisionOutcome) bool { return o.value == other.value }
