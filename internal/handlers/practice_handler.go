package handlers

import (
	"errors"
	"net/http"

	"speakpractice/internal/models"
	"speakpractice/internal/service"
)

// PracticeHandler handles dialogue practice HTTP requests
type PracticeHandler struct {
	practiceService *service.PracticeService
	maxUploadSize   int64
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceService *service.PracticeService, maxUploadSize int64) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		maxUploadSize:   maxUploadSize,
	}
}

type startPracticeRequest struct {
	DialogueID string           `json:"dialogueId"`
	Character  models.Character `json:"character"`
}

type transcriptRequest struct {
	Transcript string `json:"transcript"`
}

// StartPractice starts a new practice session
func (h *PracticeHandler) StartPractice(w http.ResponseWriter, r *http.Request) {
	var req startPracticeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.practiceService.StartSession(r.Context(), req.DialogueID, req.Character)
	if err != nil {
		respondWithServiceError(w, "Error starting practice session", err)
		return
	}

	respondJSON(w, http.StatusCreated, state)
}

// GetPractice returns the current state of a session
func (h *PracticeHandler) GetPractice(w http.ResponseWriter, r *http.Request) {
	state, err := h.practiceService.GetSession(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, "Error loading practice session", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// SubmitTranscript scores a recognized transcript for the current line
func (h *PracticeHandler) SubmitTranscript(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.practiceService.SubmitTranscript(r.PathValue("id"), req.Transcript)
	if err != nil {
		respondWithServiceError(w, "Error scoring transcript", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// SubmitAudio transcribes an uploaded recording (multipart field "audio")
// and scores it for the current line
func (h *PracticeHandler) SubmitAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Recording too large", "", nil)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "Error parsing upload", err)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, MsgMissingAudio, "", nil)
		return
	}
	defer file.Close()

	state, err := h.practiceService.SubmitAudio(r.Context(), r.PathValue("id"), file, header.Filename)
	if err != nil {
		respondWithServiceError(w, "Error scoring recording", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// NextLine advances to the next line
func (h *PracticeHandler) NextLine(w http.ResponseWriter, r *http.Request) {
	state, err := h.practiceService.NextLine(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, "Error advancing practice session", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// Retry clears the attempt at the current line
func (h *PracticeHandler) Retry(w http.ResponseWriter, r *http.Request) {
	state, err := h.practiceService.Retry(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, "Error resetting line", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// Replay synthesizes the current line again
func (h *PracticeHandler) Replay(w http.ResponseWriter, r *http.Request) {
	state, err := h.practiceService.Replay(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, "Error replaying line", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}
