package handlers

import (
	"net/http"

	"speakpractice/internal/models"
	"speakpractice/internal/repository"
)

// DialogueHandler serves the dialogue catalog
type DialogueHandler struct {
	dialogues *repository.DialogueRepository
}

// NewDialogueHandler creates a new dialogue handler
func NewDialogueHandler(dialogues *repository.DialogueRepository) *DialogueHandler {
	return &DialogueHandler{dialogues: dialogues}
}

// ListCategories returns every category with its dialogue count
func (h *DialogueHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dialogues.ListCategories())
}

// ListByCategory returns the dialogues in one category
func (h *DialogueHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryId")
	category := h.dialogues.GetCategory(categoryID)
	if category == nil {
		respondWithError(w, http.StatusNotFound, MsgCategoryNotFound, "", nil)
		return
	}

	dialogues := h.dialogues.ListByCategory(categoryID)
	if dialogues == nil {
		dialogues = []models.Dialogue{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"category":  category,
		"dialogues": dialogues,
	})
}

// GetDialogue returns one dialogue with all of its lines
func (h *DialogueHandler) GetDialogue(w http.ResponseWriter, r *http.Request) {
	dialogue := h.dialogues.GetDialogue(r.PathValue("id"))
	if dialogue == nil {
		respondWithError(w, http.StatusNotFound, MsgDialogueNotFound, "", nil)
		return
	}
	respondJSON(w, http.StatusOK, dialogue)
}
