package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/application/usecase"
	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
	"github.com/vittamlabs/origination/internal/domain/service"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
	"github.com/vittamlabs/origination/pkg/events"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockSessionRepo struct {
	sessions map[string]model.Session
	saves    int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: map[string]model.Session{}}
}

func (m *mockSessionRepo) Save(_ context.Context, s model.Session) error {
	m.saves++
	m.sessions[s.ID()] = s.ClearEvents()
	return nil
}

func (m *mockSessionRepo) FindByID(_ context.Context, id string) (model.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return model.Session{}, port.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return port.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

type mockSanctionRepo struct {
	saved []model.SanctionRecord
}

func (m *mockSanctionRepo) Save(_ context.Context, rec model.SanctionRecord) error {
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockSanctionRepo) FindBySessionID(_ context.Context, sessionID string) (model.SanctionRecord, error) {
	for _, rec := range m.saved {
		if rec.SessionID == sessionID {
			return rec, nil
		}
	}
	return model.SanctionRecord{}, errors.New("sanction record not found")
}

type mockOfferCatalog struct {
	offers []model.Offer
	err    error
}

func (m *mockOfferCatalog) ActiveOffers(_ context.Context) ([]model.Offer, error) {
	return m.offers, m.err
}

type mockKYCClient struct {
	lookupFn func(ctx context.Context, phone string) (model.KYCRecord, error)
	calls    int
}

func (m *mockKYCClient) Lookup(ctx context.Context, phone string) (model.KYCRecord, error) {
	m.calls++
	return m.lookupFn(ctx, phone)
}

type mockBureauClient struct {
	fetchFn func(ctx context.Context, phone string) (model.CreditProfile, error)
	calls   int
}

func (m *mockBureauClient) FetchProfile(ctx context.Context, phone string) (model.CreditProfile, error) {
	m.calls++
	return m.fetchFn(ctx, phone)
}

type mockPublisher struct {
	published []events.DomainEvent
}

func (m *mockPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	m.published = append(m.published, evts...)
	return nil
}

func (m *mockPublisher) eventTypes() []string {
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.EventType())
	}
	return out
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

const identityMessage = "name: Rahul Sharma\nphone: 9876543210\naddress: 14 MG Road, Bengaluru\ndob: 1990-04-12"

func kycRecord() model.KYCRecord {
	return model.KYCRecord{
		Name:        "Rahul Sharma",
		Phone:       "9876543210",
		Address:     "14 MG Road, Bengaluru",
		DateOfBirth: "1990-04-12",
	}
}

func strongProfile() model.CreditProfile {
	return model.CreditProfile{
		Score:                750,
		PreApprovedLimit:     decimal.NewFromInt(200000),
		ExistingLoanEMITotal: decimal.Zero,
		MonthlySalary:        decimal.NewFromInt(80000),
		FetchedAt:            time.Now().UTC(),
	}
}

func catalogOffers() []model.Offer {
	return []model.Offer{
		{
			ID:               "offer-prime",
			Name:             "Prime Personal Loan",
			MinCreditScore:   740,
			MaxCreditScore:   900,
			MinAmount:        decimal.NewFromInt(50000),
			MaxAmount:        decimal.NewFromInt(5000000),
			MinTenureMonths:  6,
			MaxTenureMonths:  84,
			BaseRatePercent:  decimal.NewFromFloat(10.5),
			ProcessingFeePct: decimal.NewFromFloat(1.5),
			Active:           true,
		},
		{
			ID:               "offer-standard",
			Name:             "Standard Personal Loan",
			MinCreditScore:   700,
			MaxCreditScore:   900,
			MinAmount:        decimal.NewFromInt(50000),
			MaxAmount:        decimal.NewFromInt(2000000),
			MinTenureMonths:  6,
			MaxTenureMonths:  60,
			BaseRatePercent:  decimal.NewFromFloat(13.25),
			ProcessingFeePct: decimal.NewFromFloat(2.0),
			Active:           true,
		},
	}
}

type fixture struct {
	sessions  *mockSessionRepo
	sanctions *mockSanctionRepo
	offers    *mockOfferCatalog
	kyc       *mockKYCClient
	bureau    *mockBureauClient
	publisher *mockPublisher
	uc        *usecase.ProcessMessageUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		sessions:  newMockSessionRepo(),
		sanctions: &mockSanctionRepo{},
		offers:    &mockOfferCatalog{offers: catalogOffers()},
		kyc: &mockKYCClient{lookupFn: func(context.Context, string) (model.KYCRecord, error) {
			return kycRecord(), nil
		}},
		bureau: &mockBureauClient{fetchFn: func(context.Context, string) (model.CreditProfile, error) {
			return strongProfile(), nil
		}},
		publisher: &mockPublisher{},
	}

	policy := valueobject.DefaultPolicy()
	calc := service.NewFinanceCalculator()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f.uc = usecase.NewProcessMessageUseCase(
		f.sessions,
		f.sanctions,
		f.offers,
		f.kyc,
		f.bureau,
		f.publisher,
		service.NewIdentityMatcher(),
		service.NewUnderwritingEngine(policy, calc),
		service.NewSanctionAssembler(policy, "VITTAM-DISB-TEST"),
		policy,
		logger,
	)
	return f
}

// seedSession stores a fresh greeted session and returns its ID.
func (f *fixture) seedSession() string {
	sess := model.NewSession("Hello! How can I help?", time.Now().UTC()).ClearEvents()
	f.sessions.sessions[sess.ID()] = sess
	return sess.ID()
}

func (f *fixture) send(t *testing.T, sessionID, content string) dto.SendMessageResponse {
	t.Helper()
	resp, err := f.uc.Execute(context.Background(), dto.SendMessageRequest{
		SessionID: sessionID,
		Content:   content,
	})
	require.NoError(t, err)
	return resp
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestProcessMessageHappyPath(t *testing.T) {
	f := newFixture(t)
	id := f.seedSession()

	// Pure greeting stays in Greeting and asks for the loan terms.
	resp := f.send(t, id, "hi")
	assert.Equal(t, "GREETING", resp.Stage)
	assert.Contains(t, resp.Reply, "How much would you like to borrow")

	// Terms land and the session moves to identity capture.
	resp = f.send(t, id, "I need 150000 for 24 months")
	assert.Equal(t, "VERIFYING", resp.Stage)
	assert.Contains(t, resp.Reply, "verify your identity")
	promptNames := make([]string, 0, len(resp.Prompts))
	for _, p := range resp.Prompts {
		promptNames = append(promptNames, p.Name)
	}
	assert.ElementsMatch(t, []string{"name", "phone", "address", "dob"}, promptNames)

	// Matching identity chains verification, underwriting, approval and
	// document issuance inside one message.
	resp = f.send(t, id, identityMessage)
	assert.Equal(t, "DOCUMENT_ISSUED", resp.Stage)
	assert.Contains(t, resp.Reply, "sanction letter")
	assert.Contains(t, resp.Reply, "SL/")

	require.Len(t, f.sanctions.saved, 1)
	rec := f.sanctions.saved[0]
	assert.Equal(t, id, rec.SessionID)
	assert.Equal(t, "Rahul Sharma", rec.CustomerName)
	assert.Equal(t, "150000.00", rec.LoanAmount.StringFixed(2))
	assert.Equal(t, 24, rec.TenureMonths)
	assert.Equal(t, "10.5", rec.InterestRatePercent.String())
	assert.Equal(t, "6956.41", rec.EMI.StringFixed(2))

	types := f.publisher.eventTypes()
	assert.Contains(t, types, "origination.session.identity_verified")
	assert.Contains(t, types, "origination.session.decision_reached")
	assert.Contains(t, types, "origination.session.sanction_issued")

	// The whole chain lands in one save per message.
	assert.Equal(t, 3, f.sessions.saves)
}

func TestProcessMessageIdempotentRedelivery(t *testing.T) {
	f := newFixture(t)
	id := f.seedSession()

	req := dto.SendMessageRequest{
		SessionID:       id,
		Content:         "I need 150000 for 24 months",
		ClientMessageID: "msg-42",
	}
	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	savesAfterFirst := f.sessions.saves

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Reply, second.Reply)
	assert.Equal(t, first.Stage, second.Stage)
	assert.Equal(t, savesAfterFirst, f.sessions.saves, "re-delivery must not write")
}

func TestProcessMessageTerminalSession(t *testing.T) {
	f := newFixture(t)
	id := f.seedSession()

	resp := f.send(t, id, "bye")
	assert.Equal(t, "CLOSED", resp.Stage)
	assert.Contains(t, resp.Reply, "closed")

	resp = f.send(t, id, "hello again")
	assert.Equal(t, "CLOSED", resp.Stage)
	assert.Contains(t, resp.Reply, "This conversation has ended")
	assert.Equal(t, 1, f.sessions.saves, "terminal replies must not write")
}

func TestProcessMessageRedeliveredClosingMessage(t *testing.T) {
	f := newFixture(t)
	id := f.seedSession()

	req := dto.SendMessageRequest{
		SessionID:       id,
		Content:         "bye",
		ClientMessageID: "msg-close-7",
	}
	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", first.Stage)
	savesAfterFirst := f.sessions.saves

	// Replaying the message that closed the session returns its recorded
	// reply, not the generic ended notice.
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Reply, second.Reply)
	assert.NotContains(t, second.Reply, "This conversation has ended")
	assert.Equal(t, savesAfterFirst, f.sessions.saves, "re-delivery must not write")
}

func TestProcessMessageCloseIntentFromAnyStage(t *testing.T) {
	f := newFixture(t)
	id := f.seedSession()

	f.send(t, id, "I want a loan of 200000")
	resp := f.send(t, id, "not interested")

	assert.Equal(t, "CLOSED", resp.Stage)
	sess, err := f.sessions.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, sess.Active())
}

func TestProcessMessageRepromptsOnUnreadableAmount(t *testing.T) {
	f := newFixture(t)
	id := f.seedSession()

	resp := f.send(t, id, "I'd like to apply for a loan please")
	assert.Equal(t, "NEEDS_DISCOVERY", resp.Stage)
	assert.Contains(t, resp.Reply, "couldn't read a loan amount")

	// Tenure defaults when only an amount is given.
	resp = f.send(t, id, "5 lakh")
	assert.Equal(t, "VERIFYING", resp.Stage)
	sess, err := f.sessions.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "500000", sess.Application().Amount.String())
	assert.Equal(t, 60, sess.Application().TenureMonths)
}

func TestProcessMessageVerificationMismatchBudget(t *testing.T) {
	f := newFixture(t)
	f.kyc.lookupFn = func(context.Context, string) (model.KYCRecord, error) {
		rec := kycRecord()
		rec.Name = "Someone Else"
		return rec, nil
	}
	id := f.seedSession()
	f.send(t, id, "150000 for 24 months")

	resp := f.send(t, id, identityMessage)
	assert.Equal(t, "VERIFYING", resp.Stage)
	assert.Contains(t, resp.Reply, "don't match our records")

	resp = f.send(t, id, identityMessage)
	assert.Equal(t, "VERIFYING", resp.Stage)

	resp = f.send(t, id, identityMessage)
	assert.Equal(t, "REJECTED", resp.Stage)
	assert.Contains(t, resp.Reply, "wasn't able to verify")
	assert.Equal(t, 0, f.bureau.calls, "underwriting never ran")
}

func TestProcessMessageKYCNotFound(t *testing.T) {
	f := newFixture(t)
	f.kyc.lookupFn = func(context.Context, string) (model.KYCRecord, error) {
		return model.KYCRecord{}, port.ErrKYCNotFound
	}
	id := f.seedSession()
	f.send(t, id, "150000 for 24 months")

	resp := f.send(t, id, identityMessage)
	assert.Equal(t, "VERIFYING", resp.Stage)
	assert.Contains(t, resp.Reply, "couldn't find a record")
	assert.Equal(t, 1, f.kyc.calls, "a definitive not-found is not retried")
}

func TestProcessMessageBureauOutage(t *testing.T) {
	f := newFixture(t)
	f.bureau.fetchFn = func(context.Context, string) (model.CreditProfile, error) {
		return model.CreditProfile{}, errors.New("connection refused")
	}
	id := f.seedSession()
	f.send(t, id, "150000 for 24 months")

	// Verification succeeds; the chained underwriting call fails and the
	// session rests in Underwriting with a try-again turn.
	resp := f.send(t, id, identityMessage)
	assert.Equal(t, "UNDERWRITING", resp.Stage)
	assert.Contains(t, resp.Reply, "trouble reaching")
	assert.Equal(t, 3, f.bureau.calls, "outages are retried before surfacing")

	// Any later message retries underwriting once the bureau recovers.
	f.bureau.fetchFn = func(context.Context, string) (model.CreditProfile, error) {
		return strongProfile(), nil
	}
	resp = f.send(t, id, "is it done?")
	assert.Equal(t, "DOCUMENT_ISSUED", resp.Stage)
}

func TestProcessMessageBureauProfileNotFound(t *testing.T) {
	f := newFixture(t)
	f.bureau.fetchFn = func(context.Context, string) (model.CreditProfile, error) {
		return model.CreditProfile{}, port.ErrProfileNotFound
	}
	id := f.seedSession()
	f.send(t, id, "150000 for 24 months")

	// A missing profile is a definitive answer: the session resolves to a
	// terminal rejection instead of parking in Underwriting.
	resp := f.send(t, id, identityMessage)
	assert.Equal(t, "REJECTED", resp.Stage)
	assert.Contains(t, resp.Reply, "no credit profile on file")
	assert.Equal(t, 1, f.bureau.calls, "a definitive not-found is not retried")

	resp = f.send(t, id, "can we try again?")
	assert.Equal(t, "REJECTED", resp.Stage)
	assert.Equal(t, 1, f.bureau.calls)
}

func TestProcessMessageSalarySlipPath(t *testing.T) {
	f := newFixture(t)
	f.bureau.fetchFn = func(context.Context, string) (model.CreditProfile, error) {
		p := strongProfile()
		p.PreApprovedLimit = decimal.NewFromInt(100000)
		return p, nil
	}
	id := f.seedSession()
	f.send(t, id, "150000 for 24 months")

	resp := f.send(t, id, identityMessage)
	assert.Equal(t, "SALARY_SLIP_PENDING", resp.Stage)
	assert.Contains(t, resp.Reply, "salary slip")

	var docPrompt *dto.InputPrompt
	for i := range resp.Prompts {
		if resp.Prompts[i].Name == "salary_slip" {
			docPrompt = &resp.Prompts[i]
		}
	}
	require.NotNil(t, docPrompt, "document prompt advertised")
	assert.Equal(t, dto.PromptDocument, docPrompt.Kind)

	// Non-document chatter re-prompts without consuming the budget.
	resp = f.send(t, id, "why do you need that?")
	assert.Equal(t, "SALARY_SLIP_PENDING", resp.Stage)

	// The slip marker re-enters underwriting and approval goes through.
	resp = f.send(t, id, "[document:salary_slip]")
	assert.Equal(t, "DOCUMENT_ISSUED", resp.Stage)
	require.Len(t, f.sanctions.saved, 1)
}

func TestProcessMessageRejectionReasons(t *testing.T) {
	t.Run("low credit score", func(t *testing.T) {
		f := newFixture(t)
		f.bureau.fetchFn = func(context.Context, string) (model.CreditProfile, error) {
			p := strongProfile()
			p.Score = 650
			return p, nil
		}
		id := f.seedSession()
		f.send(t, id, "150000 for 24 months")

		resp := f.send(t, id, identityMessage)
		assert.Equal(t, "REJECTED", resp.Stage)
		assert.Contains(t, resp.Reply, "credit score below threshold")
	})

	t.Run("amount beyond limit multiplier", func(t *testing.T) {
		f := newFixture(t)
		f.bureau.fetchFn = func(context.Context, string) (model.CreditProfile, error) {
			p := strongProfile()
			p.PreApprovedLimit = decimal.NewFromInt(50000)
			return p, nil
		}
		id := f.seedSession()
		f.send(t, id, "150000 for 24 months")

		resp := f.send(t, id, identityMessage)
		assert.Equal(t, "REJECTED", resp.Stage)
		assert.Contains(t, resp.Reply, "amount exceeds maximum multiplier")
	})
}

func TestProcessMessageSessionNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), dto.SendMessageRequest{
		SessionID: "missing",
		Content:   "hello",
	})
	assert.ErrorIs(t, err, port.ErrSessionNotFound)
}

func TestProcessMessageTranscriptAccumulates(t *testing.T) {
	f := newFixture(t)
	id := f.seedSession()

	f.send(t, id, "hi")
	f.send(t, id, "150000 for 24 months")

	sess, err := f.sessions.FindByID(context.Background(), id)
	require.NoError(t, err)

	turns := sess.Transcript()
	// Seed greeting + (customer, agent) per message, plus the discovery
	// transition turn on the second message.
	require.GreaterOrEqual(t, len(turns), 5)
	assert.Equal(t, model.RoleAgent, turns[0].Role)
	var customerTurns int
	for _, turn := range turns {
		if turn.Role == model.RoleCustomer {
			customerTurns++
		}
	}
	assert.Equal(t, 2, customerTurns)
	assert.False(t, strings.Contains(turns[len(turns)-1].Content, "150000"), "last turn is the agent reply")
}
