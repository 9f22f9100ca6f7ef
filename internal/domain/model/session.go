package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/event"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
	"github.com/vittamlabs/origination/pkg/events"
)

// ---------------------------------------------------------------------------
// Turn
// ---------------------------------------------------------------------------

// TurnRole identifies who authored a transcript turn.
type TurnRole string

const (
	RoleCustomer TurnRole = "customer"
	RoleAgent    TurnRole = "agent"
)

// Turn is one immutable entry in a session transcript.
type Turn struct {
	Role    TurnRole
	Content string
	At      time.Time
}

// ---------------------------------------------------------------------------
// Session aggregate root
// ---------------------------------------------------------------------------

// Session owns one customer conversation: the current stage, the append-only
// transcript, and the in-progress application. It is immutable in the
// aggregate sense: every mutation returns a new copy, and it is the only
// place stage or application state changes. Session-stage transitions append
// exactly one agent turn each.
type Session struct {
	id             string
	stage          valueobject.Stage
	transcript     []Turn
	application    Application
	identity       *VerifiedIdentity
	verifyAttempts int
	slipReentries  int

	// processed maps client-supplied message IDs to the agent reply they
	// produced, so re-delivered messages return the recorded reply instead
	// of re-running a stage.
	processed map[string]string

	active    bool
	version   int
	createdAt time.Time
	updatedAt time.Time

	domainEvents []events.DomainEvent
}

// NewSession creates a session in the Greeting stage with the opening agent
// turn already appended.
func NewSession(greeting string, now time.Time) Session {
	id := uuid.New().String()
	s := Session{
		id:        id,
		stage:     valueobject.StageGreeting,
		active:    true,
		version:   1,
		createdAt: now,
		updatedAt: now,
		processed: map[string]string{},
	}
	s.transcript = append(s.transcript, Turn{Role: RoleAgent, Content: greeting, At: now})
	s.domainEvents = append(s.domainEvents, event.NewSessionStarted(id))
	return s
}

// ReconstructSession rebuilds a session from persistence without side effects.
func ReconstructSession(
	id string,
	stage valueobject.Stage,
	transcript []Turn,
	application Application,
	identity *VerifiedIdentity,
	verifyAttempts, slipReentries int,
	processed map[string]string,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) Session {
	if processed == nil {
		processed = map[string]string{}
	}
	return Session{
		id:             id,
		stage:          stage,
		transcript:     transcript,
		application:    application,
		identity:       identity,
		verifyAttempts: verifyAttempts,
		slipReentries:  slipReentries,
		processed:      processed,
		active:         active,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Transcript
// ---------------------------------------------------------------------------

// WithCustomerTurn appends a customer turn. Not a stage transition.
func (s Session) WithCustomerTurn(text string, now time.Time) Session {
	next := s.clone()
	next.transcript = append(next.transcript, Turn{Role: RoleCustomer, Content: text, At: now})
	next.updatedAt = now
	return next
}

// WithAgentTurn appends a clarifying agent turn without changing stage,
// used for re-prompts and recoverable-error messages.
func (s Session) WithAgentTurn(text string, now time.Time) Session {
	next := s.clone()
	next.transcript = append(next.transcript, Turn{Role: RoleAgent, Content: text, At: now})
	next.updatedAt = now
	return next
}

// ---------------------------------------------------------------------------
// Stage transitions (each returns a new copy and appends one agent turn)
// ---------------------------------------------------------------------------

// BeginNeedsDiscovery transitions Greeting -> NeedsDiscovery.
func (s Session) BeginNeedsDiscovery(agentMsg string, now time.Time) (Session, error) {
	return s.transition(valueobject.StageNeedsDiscovery, agentMsg, now)
}

// CaptureLoanTerms records the requested amount and tenure and transitions
// NeedsDiscovery -> Verifying.
func (s Session) CaptureLoanTerms(amount decimal.Decimal, tenureMonths int, agentMsg string, now time.Time) (Session, error) {
	next, err := s.transition(valueobject.StageVerifying, agentMsg, now)
	if err != nil {
		return s, err
	}
	next.application.Amount = amount
	next.application.TenureMonths = tenureMonths
	return next, nil
}

// WithIdentityFields records the declared identity on the application while
// the session stays in Verifying.
func (s Session) WithIdentityFields(name, phone, address, dateOfBirth string, now time.Time) Session {
	next := s.clone()
	next.application.Name = name
	next.application.Phone = phone
	next.application.Address = address
	next.application.DateOfBirth = dateOfBirth
	next.updatedAt = now
	return next
}

// RecordVerificationFailure counts a failed identity check. While attempts
// remain the session stays in Verifying and re-prompts; once maxAttempts is
// reached it transitions to the Rejected terminal stage. The returned bool
// reports whether attempts were exhausted.
func (s Session) RecordVerificationFailure(agentMsg string, maxAttempts int, now time.Time) (Session, bool, error) {
	if !s.stage.Equal(valueobject.StageVerifying) {
		return s, false, valueobject.ErrInvalidStageTransition
	}
	next := s.clone()
	next.verifyAttempts++
	if next.verifyAttempts >= maxAttempts {
		rejected, err := next.transition(valueobject.StageRejected, agentMsg, now)
		if err != nil {
			return s, false, err
		}
		return rejected, true, nil
	}
	next.transcript = append(next.transcript, Turn{Role: RoleAgent, Content: agentMsg, At: now})
	next.updatedAt = now
	return next, false, nil
}

// MarkVerified freezes the verified identity snapshot and transitions
// Verifying -> Underwriting.
func (s Session) MarkVerified(identity VerifiedIdentity, agentMsg string, now time.Time) (Session, error) {
	if !s.stage.Equal(valueobject.StageVerifying) {
		return s, valueobject.ErrInvalidStageTransition
	}
	next, err := s.transition(valueobject.StageUnderwriting, agentMsg, now)
	if err != nil {
		return s, err
	}
	next.identity = &identity
	next.domainEvents = append(next.domainEvents, event.NewIdentityVerified(s.id, identity.Phone))
	return next, nil
}

// ApplyDecision moves Underwriting to the stage the decision outcome
// dictates. The orchestrator never re-interprets the decision: the mapping
// here is mechanical.
func (s Session) ApplyDecision(d Decision, agentMsg string, now time.Time) (Session, error) {
	if !s.stage.Equal(valueobject.StageUnderwriting) {
		return s, valueobject.ErrInvalidStageTransition
	}

	var target valueobject.Stage
	switch {
	case d.Outcome.Equal(valueobject.OutcomeApproved):
		target = valueobject.StageApproved
	case d.Outcome.Equal(valueobject.OutcomeNeedsSalarySlip):
		target = valueobject.StageSalarySlipPending
	default:
		target = valueobject.StageRejected
	}

	next, err := s.transition(target, agentMsg, now)
	if err != nil {
		return s, err
	}
	next.domainEvents = append(next.domainEvents, event.NewDecisionReached(s.id, d.Outcome.String(), d.Reason))
	return next, nil
}

// AttachSalarySlip records the salary document marker and re-enters
// Underwriting. This is the only back-edge in the machine; re-entries beyond
// maxReentries end the session in Rejected. The returned bool reports
// whether re-entries were exhausted.
func (s Session) AttachSalarySlip(agentMsg string, maxReentries int, now time.Time) (Session, bool, error) {
	if !s.stage.Equal(valueobject.StageSalarySlipPending) {
		return s, false, valueobject.ErrInvalidStageTransition
	}
	next := s.clone()
	next.slipReentries++
	if next.slipReentries > maxReentries {
		rejected, err := next.transition(valueobject.StageRejected, agentMsg, now)
		if err != nil {
			return s, false, err
		}
		return rejected, true, nil
	}
	reentered, err := next.transition(valueobject.StageUnderwriting, agentMsg, now)
	if err != nil {
		return s, false, err
	}
	reentered.application.SalarySlip = true
	return reentered, false, nil
}

// IssueDocument transitions Approved -> DocumentIssued once the sanction
// record exists.
func (s Session) IssueDocument(sanctionID, agentMsg string, now time.Time) (Session, error) {
	next, err := s.transition(valueobject.StageDocumentIssued, agentMsg, now)
	if err != nil {
		return s, err
	}
	next.domainEvents = append(next.domainEvents, event.NewSanctionIssued(s.id, sanctionID))
	return next, nil
}

// Close ends the session from any non-terminal stage. This is the customer
// and agent escape hatch, always permitted.
func (s Session) Close(reason, agentMsg string, now time.Time) (Session, error) {
	if s.stage.IsTerminal() {
		return s, valueobject.ErrSessionTerminal
	}
	next, err := s.transition(valueobject.StageClosed, agentMsg, now)
	if err != nil {
		return s, err
	}
	next.active = false
	next.domainEvents = append(next.domainEvents, event.NewSessionClosed(s.id, reason))
	return next, nil
}

// transition validates the move against the stage table, applies it, and
// appends the single agent turn that every transition carries.
func (s Session) transition(target valueobject.Stage, agentMsg string, now time.Time) (Session, error) {
	if !s.stage.CanTransitionTo(target) {
		return s, valueobject.ErrInvalidStageTransition
	}
	next := s.clone()
	next.stage = target
	next.transcript = append(next.transcript, Turn{Role: RoleAgent, Content: agentMsg, At: now})
	next.updatedAt = now
	return next, nil
}

// ---------------------------------------------------------------------------
// Idempotency
// ---------------------------------------------------------------------------

// ProcessedReply returns the recorded agent reply for a client message ID if
// that message was already processed.
func (s Session) ProcessedReply(clientMsgID string) (string, bool) {
	if clientMsgID == "" {
		return "", false
	}
	reply, ok := s.processed[clientMsgID]
	return reply, ok
}

// WithProcessedReply records the reply produced for a client message ID so a
// re-delivery returns it without re-running the stage.
func (s Session) WithProcessedReply(clientMsgID, reply string) Session {
	if clientMsgID == "" {
		return s
	}
	next := s.clone()
	next.processed[clientMsgID] = reply
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (s Session) ID() string                   { return s.id }
func (s Session) Stage() valueobject.Stage     { return s.stage }
func (s Session) Application() Application     { return s.application }
func (s Session) Identity() *VerifiedIdentity  { return s.identity }
func (s Session) VerifyAttempts() int          { return s.verifyAttempts }
func (s Session) SlipReentries() int           { return s.slipReentries }
func (s Session) Active() bool                 { return s.active }
func (s Session) Version() int                 { return s.version }
func (s Session) CreatedAt() time.Time         { return s.createdAt }
func (s Session) UpdatedAt() time.Time         { return s.updatedAt }

// Transcript returns a copy of the ordered turn list.
func (s Session) Transcript() []Turn {
	out := make([]Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// ProcessedMessages returns a copy of the idempotency map for persistence.
func (s Session) ProcessedMessages() map[string]string {
	out := make(map[string]string, len(s.processed))
	for k, v := range s.processed {
		out[k] = v
	}
	return out
}

// LastAgentMessage returns the content of the most recent agent turn, or ""
// for an empty transcript.
func (s Session) LastAgentMessage() string {
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].Role == RoleAgent {
			return s.transcript[i].Content
		}
	}
	return ""
}

// DomainEvents returns the events recorded since the last clear.
func (s Session) DomainEvents() []events.DomainEvent { return s.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (s Session) ClearEvents() Session {
	next := s
	next.domainEvents = nil
	return next
}

// clone deep-copies the mutable members so copy-on-write transitions never
// alias the original's transcript or idempotency map.
func (s Session) clone() Session {
	next := s
	next.transcript = make([]Turn, len(s.transcript))
	copy(next.transcript, s.transcript)
	next.processed = make(map[string]string, len(s.processed))
	for k, v := range s.processed {
		next.processed[k] = v
	}
	if len(s.domainEvents) > 0 {
		next.domainEvents = make([]events.DomainEvent, len(s.domainEvents))
		copy(next.domainEvents, s.domainEvents)
	}
	return next
}
