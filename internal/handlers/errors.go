package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"speakpractice/internal/llm"
	"speakpractice/internal/service"
	"speakpractice/internal/validation"
)

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondWithServiceError maps service and upstream errors onto HTTP
// statuses. Unknown errors are logged and reported as a 500.
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error) {
	switch {
	case errors.Is(err, service.ErrDialogueNotFound):
		respondWithError(w, http.StatusNotFound, MsgDialogueNotFound, "", nil)
	case errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, http.StatusNotFound, MsgSessionNotFound, "", nil)
	case errors.Is(err, service.ErrInvalidCharacter):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidInput):
		msg := err.Error()
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			msg = verr.Error()
		}
		respondWithError(w, http.StatusBadRequest, msg, "", nil)
	case errors.Is(err, service.ErrNoSpeech):
		respondWithError(w, http.StatusUnprocessableEntity, MsgNoSpeech, "", nil)
	case errors.Is(err, service.ErrNotUserTurn),
		errors.Is(err, service.ErrBelowPassThreshold),
		errors.Is(err, service.ErrSessionCompleted):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, service.ErrAudioUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, MsgAudioUnavailable, "", nil)
	case errors.Is(err, llm.ErrRateLimited):
		respondWithError(w, http.StatusTooManyRequests, MsgRateLimited, logMsg, err)
	case errors.Is(err, llm.ErrPaymentRequired):
		respondWithError(w, http.StatusPaymentRequired, MsgPaymentRequired, logMsg, err)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
