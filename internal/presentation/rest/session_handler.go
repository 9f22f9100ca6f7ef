// Package rest exposes the chat-widget HTTP contract on net/http ServeMux.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/application/usecase"
	"github.com/vittamlabs/origination/internal/domain/port"
	"github.com/vittamlabs/origination/internal/infrastructure/persistence/memory"
	"github.com/vittamlabs/origination/internal/infrastructure/persistence/postgres"
)

// SessionHandler serves the session lifecycle routes.
type SessionHandler struct {
	start    *usecase.StartSessionUseCase
	process  *usecase.ProcessMessageUseCase
	history  *usecase.GetHistoryUseCase
	remove   *usecase.DeleteSessionUseCase
	sanction *usecase.GetSanctionUseCase
	logger   *slog.Logger
}

func NewSessionHandler(
	start *usecase.StartSessionUseCase,
	process *usecase.ProcessMessageUseCase,
	history *usecase.GetHistoryUseCase,
	remove *usecase.DeleteSessionUseCase,
	sanction *usecase.GetSanctionUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		start:    start,
		process:  process,
		history:  history,
		remove:   remove,
		sanction: sanction,
		logger:   logger,
	}
}

// RegisterRoutes attaches the session routes to the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/sessions", h.startSession)
	mux.HandleFunc("POST /api/v1/sessions/{id}/messages", h.sendMessage)
	mux.HandleFunc("GET /api/v1/sessions/{id}/history", h.getHistory)
	mux.HandleFunc("GET /api/v1/sessions/{id}/sanction", h.getSanction)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", h.deleteSession)
}

func (h *SessionHandler) startSession(w http.ResponseWriter, r *http.Request) {
	resp, err := h.start.Execute(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

type sendMessageBody struct {
	Content         string `json:"content"`
	ClientMessageID string `json:"client_message_id,omitempty"`
}

func (h *SessionHandler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var body sendMessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if body.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
		return
	}

	resp, err := h.process.Execute(r.Context(), dto.SendMessageRequest{
		SessionID:       r.PathValue("id"),
		Content:         body.Content,
		ClientMessageID: body.ClientMessageID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) getHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := h.history.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) getSanction(w http.ResponseWriter, r *http.Request) {
	resp, err := h.sanction.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.remove.Execute(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	case errors.Is(err, memory.ErrSanctionNotFound), errors.Is(err, postgres.ErrSanctionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "sanction record not found"})
	case errors.Is(err, port.ErrVersionConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "concurrent update, retry"})
	default:
		h.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
