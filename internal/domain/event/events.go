// Package event defines the domain events the session aggregate records and
// the messaging layer publishes.
package event

import "github.com/vittamlabs/origination/pkg/events"

const aggregateType = "session"

const (
	TypeSessionStarted   = "origination.session.started"
	TypeIdentityVerified = "origination.session.identity_verified"
	TypeDecisionReached  = "origination.session.decision_reached"
	TypeSanctionIssued   = "origination.session.sanction_issued"
	TypeSessionClosed    = "origination.session.closed"
)

// SessionStarted is recorded when a new conversation opens.
type SessionStarted struct {
	events.BaseEvent
}

func NewSessionStarted(sessionID string) SessionStarted {
	return SessionStarted{BaseEvent: events.NewBaseEvent(TypeSessionStarted, sessionID, aggregateType)}
}

// IdentityVerified is recorded when the declared identity matched KYC.
type IdentityVerified struct {
	events.BaseEvent
	Phone string `json:"phone"`
}

func NewIdentityVerified(sessionID, phone string) IdentityVerified {
	return IdentityVerified{
		BaseEvent: events.NewBaseEvent(TypeIdentityVerified, sessionID, aggregateType),
		Phone:     phone,
	}
}

// DecisionReached is recorded when underwriting produced an outcome.
type DecisionReached struct {
	events.BaseEvent
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

func NewDecisionReached(sessionID, outcome, reason string) DecisionReached {
	return DecisionReached{
		BaseEvent: events.NewBaseEvent(TypeDecisionReached, sessionID, aggregateType),
		Outcome:   outcome,
		Reason:    reason,
	}
}

// SanctionIssued is recorded when a sanction record was assembled and stored.
type SanctionIssued struct {
	events.BaseEvent
	SanctionID string `json:"sanction_id"`
}

func NewSanctionIssued(sessionID, sanctionID string) SanctionIssued {
	return SanctionIssued{
		BaseEvent:  events.NewBaseEvent(TypeSanctionIssued, sessionID, aggregateType),
		SanctionID: sanctionID,
	}
}

// SessionClosed is recorded when a session reached the Closed stage.
type SessionClosed struct {
	events.BaseEvent
	Reason string `json:"reason,omitempty"`
}

func NewSessionClosed(sessionID, reason string) SessionClosed {
	return SessionClosed{
		BaseEvent: events.NewBaseEvent(TypeSessionClosed, sessionID, aggregateType),
		Reason:    reason,
	}
}
