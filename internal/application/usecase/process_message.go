package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
	"github.com/vittamlabs/origination/internal/domain/service"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

// ProcessMessageUseCase advances a session through the conversation state
// machine in response to one inbound customer message. It is the only writer
// of session state: the per-session lock guarantees at most one in-flight
// transition, and the aggregate is saved exactly once per message so a chain
// of transitions lands atomically.
type ProcessMessageUseCase struct {
	sessions  port.SessionRepository
	sanctions port.SanctionRecordRepository
	offers    port.OfferCatalog
	kyc       port.KYCClient
	bureau    port.CreditBureauClient
	publisher port.EventPublisher

	matcher   *service.IdentityMatcher
	engine    *service.UnderwritingEngine
	assembler *service.SanctionAssembler

	policy valueobject.Policy
	locks  *sessionLocks
	retry  retryConfig
	logger *slog.Logger
}

// NewProcessMessageUseCase wires dependencies.
func NewProcessMessageUseCase(
	sessions port.SessionRepository,
	sanctions port.SanctionRecordRepository,
	offers port.OfferCatalog,
	kyc port.KYCClient,
	bureau port.CreditBureauClient,
	publisher port.EventPublisher,
	matcher *service.IdentityMatcher,
	engine *service.UnderwritingEngine,
	assembler *service.SanctionAssembler,
	policy valueobject.Policy,
	logger *slog.Logger,
) *ProcessMessageUseCase {
	return &ProcessMessageUseCase{
		sessions:  sessions,
		sanctions: sanctions,
		offers:    offers,
		kyc:       kyc,
		bureau:    bureau,
		publisher: publisher,
		matcher:   matcher,
		engine:    engine,
		assembler: assembler,
		policy:    policy,
		locks:     newSessionLocks(),
		retry:     defaultRetryConfig(),
		logger:    logger,
	}
}

// Execute processes one customer message and returns the next agent reply.
func (uc *ProcessMessageUseCase) Execute(ctx context.Context, req dto.SendMessageRequest) (dto.SendMessageResponse, error) {
	release := uc.locks.Acquire(req.SessionID)
	defer release()

	sess, err := uc.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return dto.SendMessageResponse{}, fmt.Errorf("load session: %w", err)
	}

	// Re-delivered message: return the recorded reply, no state change. This
	// runs before the terminal guard so replaying the message that closed a
	// session still gets its original reply.
	if reply, ok := sess.ProcessedReply(req.ClientMessageID); ok {
		return dto.SendMessageResponse{
			SessionID: sess.ID(),
			Stage:     sess.Stage().String(),
			Reply:     reply,
			Prompts:   detectPrompts(sess.Stage(), reply),
		}, nil
	}

	// Terminal sessions accept no new input; reply without touching state.
	if sess.Stage().IsTerminal() {
		return dto.SendMessageResponse{
			SessionID: sess.ID(),
			Stage:     sess.Stage().String(),
			Reply:     msgSessionEnded,
		}, nil
	}

	now := time.Now().UTC()
	sess = sess.WithCustomerTurn(req.Content, now)

	if isCloseIntent(req.Content) {
		sess, err = sess.Close("customer request", msgClosed, now)
	} else {
		sess, err = uc.advance(ctx, sess, req.Content, now)
	}
	if err != nil {
		return dto.SendMessageResponse{}, err
	}

	reply := sess.LastAgentMessage()
	sess = sess.WithProcessedReply(req.ClientMessageID, reply)

	if err := uc.sessions.Save(ctx, sess); err != nil {
		return dto.SendMessageResponse{}, fmt.Errorf("save session: %w", err)
	}

	if err := uc.publisher.Publish(ctx, sess.DomainEvents()...); err != nil {
		uc.logger.Warn("publish session events", "session_id", sess.ID(), "error", err)
	}

	uc.logger.Info("message processed",
		"session_id", sess.ID(),
		"stage", sess.Stage().String(),
	)

	return dto.SendMessageResponse{
		SessionID: sess.ID(),
		Stage:     sess.Stage().String(),
		Reply:     reply,
		Prompts:   detectPrompts(sess.Stage(), reply),
	}, nil
}

// advance runs the stage-specific handling for one message. Recoverable
// problems (unparseable input, collaborator outages, identity mismatches
// under the retry budget) resolve to a clarifying agent turn, never an error.
func (uc *ProcessMessageUseCase) advance(ctx context.Context, sess model.Session, text string, now time.Time) (model.Session, error) {
	switch {
	case sess.Stage().Equal(valueobject.StageGreeting):
		if isGreetingOnly(text) {
			return sess.WithAgentTurn(msgAskTerms, now), nil
		}
		next, err := sess.BeginNeedsDiscovery(msgAskTerms, now)
		if err != nil {
			return sess, fmt.Errorf("begin needs discovery: %w", err)
		}
		// The first substantive message may already carry the loan terms.
		return uc.discover(next, text, now)

	case sess.Stage().Equal(valueobject.StageNeedsDiscovery):
		return uc.discover(sess, text, now)

	case sess.Stage().Equal(valueobject.StageVerifying):
		return uc.verify(ctx, sess, text, now)

	case sess.Stage().Equal(valueobject.StageUnderwriting):
		// Resting here means a collaborator was unavailable mid-decision;
		// any message retries underwriting.
		return uc.underwrite(ctx, sess, now)

	case sess.Stage().Equal(valueobject.StageSalarySlipPending):
		return uc.collectSalarySlip(ctx, sess, text, now)

	default:
		// Approved never rests (issuance happens in the same save);
		// DocumentIssued only awaits an explicit close.
		return sess.WithAgentTurn(msgAnythingElse, now), nil
	}
}

// discover captures loan amount and tenure, defaulting tenure when only an
// amount is given, then moves to identity verification.
func (uc *ProcessMessageUseCase) discover(sess model.Session, text string, now time.Time) (model.Session, error) {
	terms := parseLoanTerms(text)
	if !terms.HasAmount {
		return sess.WithAgentTurn(msgRepromptAmount, now), nil
	}

	tenure := terms.TenureMonths
	if !terms.HasTenure {
		tenure = uc.policy.DefaultTenureMonths
	}

	proposed := model.Application{Amount: terms.Amount, TenureMonths: tenure}
	if verr := proposed.ValidateTerms(); verr != nil {
		return sess.WithAgentTurn(msgRepromptAmount, now), nil
	}

	next, err := sess.CaptureLoanTerms(terms.Amount, tenure, msgAskIdentity, now)
	if err != nil {
		return sess, fmt.Errorf("capture loan terms: %w", err)
	}
	return next, nil
}

// verify collects identity fields, checks them against the KYC record, and
// on success chains straight into underwriting.
func (uc *ProcessMessageUseCase) verify(ctx context.Context, sess model.Session, text string, now time.Time) (model.Session, error) {
	fields := parseIdentityFields(text)
	if !fields.Complete() {
		return sess.WithAgentTurn(msgRepromptIdentity, now), nil
	}

	sess = sess.WithIdentityFields(fields.Name, fields.Phone, fields.Address, fields.DateOfBirth, now)
	if verr := sess.Application().ValidateIdentity(); verr != nil {
		return sess.WithAgentTurn(msgRepromptIdentity, now), nil
	}

	rec, err := callCollaborator(ctx, "kyc", uc.retry, func(ctx context.Context) (model.KYCRecord, error) {
		return uc.kyc.Lookup(ctx, fields.Phone)
	})
	if err != nil {
		var collabErr *valueobject.CollaboratorError
		if errors.As(err, &collabErr) {
			uc.logger.Warn("kyc unavailable", "session_id", sess.ID(), "error", err)
			return sess.WithAgentTurn(msgTryAgainLater, now), nil
		}
		if errors.Is(err, port.ErrKYCNotFound) {
			return uc.recordVerifyFailure(sess, msgVerifyNotFound, now)
		}
		return sess, fmt.Errorf("kyc lookup: %w", err)
	}

	identity, failure := uc.matcher.MatchIdentity(sess.Application(), rec, now)
	if failure != nil {
		uc.logger.Info("identity mismatch",
			"session_id", sess.ID(),
			"mismatches", failure.Error(),
		)
		return uc.recordVerifyFailure(sess, msgVerifyMismatch, now)
	}

	next, err := sess.MarkVerified(identity, msgVerified, now)
	if err != nil {
		return sess, fmt.Errorf("mark verified: %w", err)
	}
	return uc.underwrite(ctx, next, now)
}

func (uc *ProcessMessageUseCase) recordVerifyFailure(sess model.Session, repromptMsg string, now time.Time) (model.Session, error) {
	msg := repromptMsg
	if sess.VerifyAttempts()+1 >= uc.policy.MaxVerifyAttempts {
		msg = msgVerifyExhausted
	}
	next, exhausted, err := sess.RecordVerificationFailure(msg, uc.policy.MaxVerifyAttempts, now)
	if err != nil {
		return sess, fmt.Errorf("record verification failure: %w", err)
	}
	if exhausted {
		uc.logger.Info("verification attempts exhausted", "session_id", sess.ID())
	}
	return next, nil
}

// collectSalarySlip records the document marker and re-enters underwriting,
// within the bounded re-entry budget.
func (uc *ProcessMessageUseCase) collectSalarySlip(ctx context.Context, sess model.Session, text string, now time.Time) (model.Session, error) {
	if !hasSalarySlipMarker(text) {
		return sess.WithAgentTurn(msgAskSlipAgain, now), nil
	}

	msg := msgSlipReceived
	if sess.SlipReentries()+1 > uc.policy.MaxSlipReentries {
		msg = msgSlipExhausted
	}
	next, exhausted, err := sess.AttachSalarySlip(msg, uc.policy.MaxSlipReentries, now)
	if err != nil {
		return sess, fmt.Errorf("attach salary slip: %w", err)
	}
	if exhausted {
		uc.logger.Info("salary slip re-entries exhausted", "session_id", sess.ID())
		return next, nil
	}
	return uc.underwrite(ctx, next, now)
}

// underwrite fetches a fresh credit profile, runs the decision engine, and
// applies the outcome; an approval chains into sanction issuance.
func (uc *ProcessMessageUseCase) underwrite(ctx context.Context, sess model.Session, now time.Time) (model.Session, error) {
	identity := sess.Identity()
	if identity == nil {
		return sess, fmt.Errorf("underwrite session %s: no verified identity", sess.ID())
	}

	profile, err := callCollaborator(ctx, "credit-bureau", uc.retry, func(ctx context.Context) (model.CreditProfile, error) {
		return uc.bureau.FetchProfile(ctx, identity.Phone)
	})
	if err != nil {
		// No profile on file is a definitive answer; only outages get the
		// try-again reply.
		if errors.Is(err, port.ErrProfileNotFound) {
			uc.logger.Info("no credit profile on file", "session_id", sess.ID())
			d := model.Decision{
				Outcome: valueobject.OutcomeRejected,
				Reason:  service.ReasonNoCreditProfile,
			}
			next, derr := sess.ApplyDecision(d, msgRejected(d.Reason), now)
			if derr != nil {
				return sess, fmt.Errorf("apply decision: %w", derr)
			}
			return next, nil
		}
		uc.logger.Warn("credit bureau unavailable", "session_id", sess.ID(), "error", err)
		return sess.WithAgentTurn(msgTryAgainLater, now), nil
	}

	offers, err := uc.offers.ActiveOffers(ctx)
	if err != nil {
		return sess, fmt.Errorf("load offers: %w", err)
	}

	d := uc.engine.Decide(sess.Application(), profile, offers)

	uc.logger.Info("decision reached",
		"session_id", sess.ID(),
		"outcome", d.Outcome.String(),
		"reason", d.Reason,
	)

	switch {
	case d.Outcome.Equal(valueobject.OutcomeApproved):
		next, err := sess.ApplyDecision(d, msgApproved(d), now)
		if err != nil {
			return sess, fmt.Errorf("apply decision: %w", err)
		}
		return uc.issueSanction(ctx, next, d, now)

	case d.Outcome.Equal(valueobject.OutcomeNeedsSalarySlip):
		next, err := sess.ApplyDecision(d, msgNeedSalarySlip, now)
		if err != nil {
			return sess, fmt.Errorf("apply decision: %w", err)
		}
		return next, nil

	default:
		next, err := sess.ApplyDecision(d, msgRejected(d.Reason), now)
		if err != nil {
			return sess, fmt.Errorf("apply decision: %w", err)
		}
		return next, nil
	}
}

// issueSanction assembles and stores the sanction record, then moves the
// session to DocumentIssued.
func (uc *ProcessMessageUseCase) issueSanction(ctx context.Context, sess model.Session, d model.Decision, now time.Time) (model.Session, error) {
	rec, err := uc.assembler.Assemble(sess.ID(), *sess.Identity(), sess.Application(), d, now)
	if err != nil {
		// Contract violation: only approved decisions reach here.
		uc.logger.Error("sanction assembly refused", "session_id", sess.ID(), "error", err)
		return sess, fmt.Errorf("assemble sanction: %w", err)
	}

	if err := uc.sanctions.Save(ctx, rec); err != nil {
		return sess, fmt.Errorf("save sanction record: %w", err)
	}

	next, err := sess.IssueDocument(rec.ID, msgDocumentIssued(rec), now)
	if err != nil {
		return sess, fmt.Errorf("issue document: %w", err)
	}
	return next, nil
}
