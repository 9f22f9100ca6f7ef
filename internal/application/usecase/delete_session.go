package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vittamlabs/origination/internal/domain/port"
)

// DeleteSessionUseCase releases a session and its transcript.
type DeleteSessionUseCase struct {
	sessions port.SessionRepository
	logger   *slog.Logger
}

func NewDeleteSessionUseCase(sessions port.SessionRepository, logger *slog.Logger) *DeleteSessionUseCase {
	return &DeleteSessionUseCase{sessions: sessions, logger: logger}
}

func (uc *DeleteSessionUseCase) Execute(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	uc.logger.Info("session deleted", "session_id", sessionID)
	return nil
}
