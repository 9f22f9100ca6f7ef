package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrInvalidStageTransition is returned when a session transition is not
	// permitted by the stage table.
	ErrInvalidStageTransition = errors.New("invalid stage transition")

	// ErrSessionTerminal is returned when input arrives for a session whose
	// stage permits no further transitions.
	ErrSessionTerminal = errors.New("session is in a terminal stage")

	// ErrDecisionNotApproved is a contract violation: the sanction assembler
	// was invoked with a decision that is not Approved. It is never recovered
	// from, only logged and failed.
	ErrDecisionNotApproved = errors.New("sanction requires an approved decision")
)

// ---------------------------------------------------------------------------
// ValidationError – malformed or missing application input
// ---------------------------------------------------------------------------

// ValidationError reports a malformed or missing application field. It is
// always recovered locally by re-prompting the customer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ---------------------------------------------------------------------------
// CollaboratorError – external lookup timeout or transport failure
// ---------------------------------------------------------------------------

// CollaboratorError wraps a timeout or transport failure from an external
// collaborator (KYC directory, credit bureau). The session stays in its
// current stage and the customer is asked to retry.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// ---------------------------------------------------------------------------
// VerificationFailure – identity mismatch against the KYC record
// ---------------------------------------------------------------------------

// VerificationFailure carries the field-level mismatches between the declared
// application identity and the KYC record.
type VerificationFailure struct {
	Mismatches []FieldMismatch
}

// FieldMismatch names one field that failed the identity comparison.
type FieldMismatch struct {
	Field  string
	Reason string
}

func (e *VerificationFailure) Error() string {
	fields := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		fields = append(fields, m.Field)
	}
	return "identity verification failed: " + strings.Join(fields, ", ")
}
