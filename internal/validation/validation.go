// Package validation checks client input before it reaches the scoring
// engine or a paid upstream service.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"speakpractice/internal/models"
)

// Input limits
const (
	MaxTopicLength      = 200
	MaxMessages         = 50
	MaxMessageLength    = 2000
	MaxTranscriptLength = 1000
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateTopic checks a conversation topic
func ValidateTopic(topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ValidationError{Field: "topic", Message: "topic is required"}
	}
	if utf8.RuneCountInString(topic) > MaxTopicLength {
		return ValidationError{Field: "topic", Message: fmt.Sprintf("topic must be at most %d characters", MaxTopicLength)}
	}
	return nil
}

// ValidateConversation checks a role-tagged history. Only user and
// assistant turns are accepted; clients may not inject system prompts.
func ValidateConversation(messages []models.ConversationMessage) error {
	if len(messages) > MaxMessages {
		return ValidationError{Field: "conversation", Message: fmt.Sprintf("conversation must have at most %d messages", MaxMessages)}
	}
	for i, m := range messages {
		field := fmt.Sprintf("conversation[%d]", i)
		if m.Role != models.RoleUser && m.Role != models.RoleAssistant {
			return ValidationError{Field: field, Message: "role must be user or assistant"}
		}
		if utf8.RuneCountInString(m.Content) > MaxMessageLength {
			return ValidationError{Field: field, Message: fmt.Sprintf("content must be at most %d characters", MaxMessageLength)}
		}
	}
	return nil
}

// ValidateTranscript checks a recognized transcript. Emptiness is not an
// error here; callers report it as missing speech.
func ValidateTranscript(transcript string) error {
	if utf8.RuneCountInString(transcript) > MaxTranscriptLength {
		return ValidationError{Field: "transcript", Message: fmt.Sprintf("transcript must be at most %d characters", MaxTranscriptLength)}
	}
	return nil
}

// ValidateScoreInput checks a reference/attempt pair sent for direct scoring.
// Edit distance grows with the product of both lengths, so each side is
// held to transcript length.
func ValidateScoreInput(expected, spoken string) error {
	if utf8.RuneCountInString(expected) > MaxTranscriptLength {
		return ValidationError{Field: "expected", Message: fmt.Sprintf("expected must be at most %d characters", MaxTranscriptLength)}
	}
	if utf8.RuneCountInString(spoken) > MaxTranscriptLength {
		return ValidationError{Field: "spoken", Message: fmt.Sprintf("spoken must be at most %d characters", MaxTranscriptLength)}
	}
	return nil
}
