package models

// Roles accepted in a conversation history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is one role-tagged turn of an open conversation
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationRequest asks the AI partner for its next turn
type ConversationRequest struct {
	Topic        string                `json:"topic"`
	Conversation []ConversationMessage `json:"conversation"`
}

// ConversationReply is the AI partner's turn plus feedback on the learner's
// last message
type ConversationReply struct {
	Response        string   `json:"response"`
	GrammarFeedback *string  `json:"grammarFeedback"`
	Clarity         *float64 `json:"clarity,omitempty"`
	AudioURL        string   `json:"audioUrl,omitempty"`
}
