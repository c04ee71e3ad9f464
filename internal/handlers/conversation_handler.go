package handlers

import (
	"context"
	"net/http"

	"speakpractice/internal/models"
)

// ConversationResponder produces the AI partner's next turn
type ConversationResponder interface {
	Respond(ctx context.Context, req models.ConversationRequest) (*models.ConversationReply, error)
}

// ConversationHandler proxies open conversation turns to the AI partner
type ConversationHandler struct {
	conversations ConversationResponder
}

// NewConversationHandler creates a new conversation handler. A nil
// responder answers every request with 503.
func NewConversationHandler(conversations ConversationResponder) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// Respond handles one conversation turn
func (h *ConversationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	if h.conversations == nil {
		respondWithError(w, http.StatusServiceUnavailable, MsgAIUnavailable, "", nil)
		return
	}

	var req models.ConversationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.conversations.Respond(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, "Error in AI conversation", err)
		return
	}

	respondJSON(w, http.StatusOK, reply)
}
