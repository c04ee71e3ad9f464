package service

import (
	"errors"
	"time"

	"speakpractice/internal/audio"
	"speakpractice/internal/llm"
)

var (
	ErrDialogueNotFound   = errors.New("dialogue not found")
	ErrSessionNotFound    = errors.New("practice session not found")
	ErrInvalidCharacter   = errors.New("character must be A or B")
	ErrNotUserTurn        = errors.New("current line belongs to the partner")
	ErrBelowPassThreshold = errors.New("score the current line above the pass mark before moving on")
	ErrSessionCompleted   = errors.New("practice session already completed")
	ErrAudioUnavailable   = errors.New("speech service not configured")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrNoSpeech is shared with the transcriber so a silent recording and
	// an empty typed transcript are reported the same way.
	ErrNoSpeech = audio.ErrNoSpeech
)

// Recorder receives scoring and upstream call metrics
type Recorder interface {
	RecordScore(surface, tier string)
	RecordLLMRequest(kind, status string, duration time.Duration)
	SetActiveSessions(n int)
}

type nopRecorder struct{}

func (nopRecorder) RecordScore(string, string)                     {}
func (nopRecorder) RecordLLMRequest(string, string, time.Duration) {}
func (nopRecorder) SetActiveSessions(int)                          {}

// callStatus buckets an upstream error into a metrics label
func callStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoSpeech):
		return "no_speech"
	case errors.Is(err, llm.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, llm.ErrPaymentRequired):
		return "payment_required"
	default:
		return "error"
	}
}
