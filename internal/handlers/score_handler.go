package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"speakpractice/internal/scoring"
	"speakpractice/internal/service"
	"speakpractice/internal/validation"
)

// ScoreRecorder counts scored attempts
type ScoreRecorder interface {
	RecordScore(surface, tier string)
}

// ScoreHandler exposes the scoring engine directly
type ScoreHandler struct {
	classifier *scoring.Classifier
	recorder   ScoreRecorder
}

// NewScoreHandler creates a new score handler. recorder may be nil.
func NewScoreHandler(classifier *scoring.Classifier, recorder ScoreRecorder) *ScoreHandler {
	if classifier == nil {
		classifier = scoring.DefaultClassifier()
	}
	return &ScoreHandler{classifier: classifier, recorder: recorder}
}

type scoreRequest struct {
	Expected string `json:"expected"`
	Spoken   string `json:"spoken"`
}

type turnResponse struct {
	Clarity float64 `json:"clarity"`
}

// ScoreLine scores a spoken dialogue line word by word and returns feedback
func (h *ScoreHandler) ScoreLine(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeScoreRequest(w, r, &req) {
		return
	}

	feedback := h.classifier.Classify(scoring.ScoreDialogueLine(req.Spoken, req.Expected))
	if h.recorder != nil {
		h.recorder.RecordScore("line", string(feedback.Tier))
	}
	respondJSON(w, http.StatusOK, feedback)
}

// ScoreTurn scores a conversation turn as a whole string
func (h *ScoreHandler) ScoreTurn(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeScoreRequest(w, r, &req) {
		return
	}

	clarity := scoring.ScoreConversationTurn(req.Expected, req.Spoken)
	if h.recorder != nil {
		h.recorder.RecordScore("turn", string(scoring.TierFor(int(clarity))))
	}
	respondJSON(w, http.StatusOK, turnResponse{Clarity: clarity})
}

// decodeScoreRequest decodes req and rejects inputs too long to score
func decodeScoreRequest(w http.ResponseWriter, r *http.Request, req *scoreRequest) bool {
	if !decodeJSON(w, r, req) {
		return false
	}
	if err := validation.ValidateScoreInput(req.Expected, req.Spoken); err != nil {
		respondWithServiceError(w, "Rejected score request", fmt.Errorf("%w: %w", service.ErrInvalidInput, err))
		return false
	}
	return true
}

// decodeJSON reads a bounded JSON body into v, answering 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "Error decoding request", err)
		return false
	}
	return true
}
