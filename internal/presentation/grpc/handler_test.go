package grpc_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vittamlabs/origination/internal/application/usecase"
	"github.com/vittamlabs/origination/internal/domain/service"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
	"github.com/vittamlabs/origination/internal/infrastructure/adapter"
	"github.com/vittamlabs/origination/internal/infrastructure/messaging"
	"github.com/vittamlabs/origination/internal/infrastructure/persistence/memory"
	grpcapi "github.com/vittamlabs/origination/internal/presentation/grpc"
)

func newHandler(t *testing.T) *grpcapi.ConversationHandler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := memory.NewSessionStore()
	sanctions := memory.NewSanctionStore()
	publisher := messaging.NewLogEventPublisher(logger)

	policy := valueobject.DefaultPolicy()
	calc := service.NewFinanceCalculator()

	return grpcapi.NewConversationHandler(
		usecase.NewStartSessionUseCase(sessions, publisher, logger),
		usecase.NewProcessMessageUseCase(
			sessions, sanctions, memory.NewSeededOfferCatalog(),
			adapter.SeededStubKYCClient(), adapter.NewStubCreditBureauClient(), publisher,
			service.NewIdentityMatcher(),
			service.NewUnderwritingEngine(policy, calc),
			service.NewSanctionAssembler(policy, "VITTAM-DISB-TEST"),
			policy, logger,
		),
		usecase.NewGetHistoryUseCase(sessions),
		usecase.NewDeleteSessionUseCase(sessions, logger),
	)
}

func TestConversationHandler(t *testing.T) {
	h := newHandler(t)
	ctx := context.Background()

	started, err := h.StartSession(ctx, &grpcapi.StartSessionRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, started.SessionId)
	assert.Equal(t, "GREETING", started.Stage)
	assert.NotEmpty(t, started.Greeting)

	sent, err := h.SendMessage(ctx, &grpcapi.SendMessageRequest{
		SessionId: started.SessionId,
		Content:   "I need 150000 for 24 months",
	})
	require.NoError(t, err)
	assert.Equal(t, "VERIFYING", sent.Stage)

	hist, err := h.GetHistory(ctx, &grpcapi.GetHistoryRequest{SessionId: started.SessionId})
	require.NoError(t, err)
	assert.True(t, hist.Active)
	assert.GreaterOrEqual(t, len(hist.Turns), 3)

	_, err = h.DeleteSession(ctx, &grpcapi.DeleteSessionRequest{SessionId: started.SessionId})
	require.NoError(t, err)

	_, err = h.GetHistory(ctx, &grpcapi.GetHistoryRequest{SessionId: started.SessionId})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestConversationHandlerValidation(t *testing.T) {
	h := newHandler(t)
	ctx := context.Background()

	_, err := h.SendMessage(ctx, &grpcapi.SendMessageRequest{SessionId: "", Content: "hi"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.SendMessage(ctx, &grpcapi.SendMessageRequest{SessionId: "s", Content: ""})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.GetHistory(ctx, &grpcapi.GetHistoryRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.DeleteSession(ctx, &grpcapi.DeleteSessionRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.SendMessage(ctx, &grpcapi.SendMessageRequest{SessionId: "missing", Content: "hi"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
