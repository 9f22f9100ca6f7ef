package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/application/usecase"
	"github.com/vittamlabs/origination/internal/domain/port"
)

// ConversationHandler exposes the session lifecycle over gRPC.
type ConversationHandler struct {
	UnimplementedConversationServiceServer

	start   *usecase.StartSessionUseCase
	process *usecase.ProcessMessageUseCase
	history *usecase.GetHistoryUseCase
	remove  *usecase.DeleteSessionUseCase
}

// NewConversationHandler creates a new handler with all use-case dependencies.
func NewConversationHandler(
	start *usecase.StartSessionUseCase,
	process *usecase.ProcessMessageUseCase,
	history *usecase.GetHistoryUseCase,
	remove *usecase.DeleteSessionUseCase,
) *ConversationHandler {
	return &ConversationHandler{
		start:   start,
		process: process,
		history: history,
		remove:  remove,
	}
}

func (h *ConversationHandler) StartSession(ctx context.Context, _ *StartSessionRequest) (*StartSessionResponse, error) {
	resp, err := h.start.Execute(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &StartSessionResponse{
		SessionId: resp.SessionID,
		Stage:     resp.Stage,
		Greeting:  resp.Greeting,
		Prompts:   toProtoPrompts(resp.Prompts),
	}, nil
}

func (h *ConversationHandler) SendMessage(ctx context.Context, req *SendMessageRequest) (*SendMessageResponse, error) {
	if req.SessionId == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	if req.Content == "" {
		return nil, status.Error(codes.InvalidArgument, "content is required")
	}

	resp, err := h.process.Execute(ctx, dto.SendMessageRequest{
		SessionID:       req.SessionId,
		Content:         req.Content,
		ClientMessageID: req.ClientMessageId,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &SendMessageResponse{
		SessionId: resp.SessionID,
		Stage:     resp.Stage,
		Reply:     resp.Reply,
		Prompts:   toProtoPrompts(resp.Prompts),
	}, nil
}

func (h *ConversationHandler) GetHistory(ctx context.Context, req *GetHistoryRequest) (*GetHistoryResponse, error) {
	if req.SessionId == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}

	resp, err := h.history.Execute(ctx, req.SessionId)
	if err != nil {
		return nil, toStatus(err)
	}

	turns := make([]*Turn, 0, len(resp.Turns))
	for _, t := range resp.Turns {
		turns = append(turns, &Turn{
			Role:    t.Role,
			Content: t.Content,
			At:      t.At.Format(time.RFC3339Nano),
		})
	}
	return &GetHistoryResponse{
		SessionId: resp.SessionID,
		Stage:     resp.Stage,
		Active:    resp.Active,
		Turns:     turns,
	}, nil
}

func (h *ConversationHandler) DeleteSession(ctx context.Context, req *DeleteSessionRequest) (*DeleteSessionResponse, error) {
	if req.SessionId == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	if err := h.remove.Execute(ctx, req.SessionId); err != nil {
		return nil, toStatus(err)
	}
	return &DeleteSessionResponse{}, nil
}

func toProtoPrompts(prompts []dto.InputPrompt) []*InputPrompt {
	if len(prompts) == 0 {
		return nil
	}
	out := make([]*InputPrompt, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, &InputPrompt{Name: p.Name, Kind: string(p.Kind), Label: p.Label})
	}
	return out
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, port.ErrSessionNotFound):
		return status.Error(codes.NotFound, "session not found")
	case errors.Is(err, port.ErrVersionConflict):
		return status.Error(codes.Aborted, "concurrent update, retry")
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
