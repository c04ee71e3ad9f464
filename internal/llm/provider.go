// Package llm defines the capability interface for the remote conversational
// model used by the open conversation surface.
//
// Implementations must be safe for concurrent use and must return promptly
// when the supplied context is cancelled.
package llm

import (
	"context"
	"errors"
)

// Errors an implementation should wrap when the upstream service reports them.
var (
	ErrRateLimited     = errors.New("rate limit exceeded, please try again later")
	ErrPaymentRequired = errors.New("payment required, please add credits to your workspace")
	ErrEmptyResponse   = errors.New("model returned no choices")
)

// Message is one role-tagged turn of the conversation history.
type Message struct {
	// Role is "system", "user" or "assistant".
	Role string

	Content string
}

// CompletionRequest carries the system prompt and history for one completion.
type CompletionRequest struct {
	// SystemPrompt is sent ahead of Messages when non-empty.
	SystemPrompt string

	Messages []Message

	// MaxTokens caps the completion length. Zero uses the provider default.
	MaxTokens int
}

// CompletionResponse is the model's reply.
type CompletionResponse struct {
	Content string
}

// Provider is a prompt-in, text-out conversational model.
type Provider interface {
	// Complete sends req to the model and waits for the full reply.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Model returns the model name used for requests.
	Model() string
}
