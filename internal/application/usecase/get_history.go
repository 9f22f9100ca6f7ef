package usecase

import (
	"context"
	"fmt"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/domain/port"
)

// GetHistoryUseCase returns the ordered transcript of a session.
type GetHistoryUseCase struct {
	sessions port.SessionRepository
}

func NewGetHistoryUseCase(sessions port.SessionRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{sessions: sessions}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, sessionID string) (dto.SessionHistoryResponse, error) {
	sess, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return dto.SessionHistoryResponse{}, fmt.Errorf("load session: %w", err)
	}

	turns := sess.Transcript()
	out := dto.SessionHistoryResponse{
		SessionID: sess.ID(),
		Stage:     sess.Stage().String(),
		Active:    sess.Active(),
		Turns:     make([]dto.TurnResponse, 0, len(turns)),
	}
	for _, t := range turns {
		out.Turns = append(out.Turns, dto.TurnResponse{
			Role:    string(t.Role),
			Content: t.Content,
			At:      t.At,
		})
	}
	return out, nil
}
