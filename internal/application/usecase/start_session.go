package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
)

// StartSessionUseCase opens a new conversation in the Greeting stage.
type StartSessionUseCase struct {
	sessions  port.SessionRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewStartSessionUseCase wires dependencies.
func NewStartSessionUseCase(
	sessions port.SessionRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *StartSessionUseCase {
	return &StartSessionUseCase{sessions: sessions, publisher: publisher, logger: logger}
}

// Execute creates and persists a greeted session and returns the opening turn.
func (uc *StartSessionUseCase) Execute(ctx context.Context) (dto.StartSessionResponse, error) {
	now := time.Now().UTC()

	sess := model.NewSession(msgGreeting, now)

	if err := uc.sessions.Save(ctx, sess); err != nil {
		return dto.StartSessionResponse{}, fmt.Errorf("save session: %w", err)
	}

	if err := uc.publisher.Publish(ctx, sess.DomainEvents()...); err != nil {
		uc.logger.Warn("publish session events", "session_id", sess.ID(), "error", err)
	}

	uc.logger.Info("session started", "session_id", sess.ID())

	return dto.StartSessionResponse{
		SessionID: sess.ID(),
		Stage:     sess.Stage().String(),
		Greeting:  msgGreeting,
	}, nil
}
