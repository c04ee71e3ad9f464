package handlers

const (
	// maxJSONBody caps request bodies on the JSON endpoints
	maxJSONBody = 1 << 20

	ErrInvalidJSON         = "Invalid JSON body"
	ErrInternalServerError = "Internal server error"

	MsgDialogueNotFound = "Dialogue not found"
	MsgCategoryNotFound = "Category not found"
	MsgSessionNotFound  = "Practice session not found"
	MsgNoSpeech         = "Could not recognize speech. Please try again."
	MsgAudioUnavailable = "Speech service is not configured"
	MsgAIUnavailable    = "AI conversation is not configured"
	MsgRateLimited      = "Rate limit exceeded. Please try again later."
	MsgPaymentRequired  = "Payment required. Please add credits to your workspace."
	MsgMissingAudio     = "Missing audio file"
)
