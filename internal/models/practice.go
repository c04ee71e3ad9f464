package models

import (
	"time"

	"speakpractice/internal/scoring"
)

// PracticeSession tracks one learner working through a dialogue
type PracticeSession struct {
	ID           string
	DialogueID   string
	Character    Character
	CurrentIndex int
	Transcript   string
	Feedback     *scoring.Feedback
	Attempts     []LineAttempt
	Completed    bool
	StartedAt    time.Time
	UpdatedAt    time.Time
}

// LineAttempt records one scored attempt at a learner line
type LineAttempt struct {
	LineIndex   int       `json:"lineIndex"`
	Transcript  string    `json:"transcript"`
	Accuracy    int       `json:"accuracy"`
	Tier        string    `json:"tier"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

// IsExpiredAt reports whether the session was idle longer than ttl at now
func (s *PracticeSession) IsExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.UpdatedAt) > ttl
}

// PracticeState is the view of a session returned to clients
type PracticeState struct {
	SessionID    string            `json:"sessionId"`
	DialogueID   string            `json:"dialogueId"`
	Character    Character         `json:"character"`
	LineIndex    int               `json:"lineIndex"`
	TotalLines   int               `json:"totalLines"`
	Progress     float64           `json:"progress"`
	CurrentLine  *DialogueLine     `json:"currentLine,omitempty"`
	IsUserTurn   bool              `json:"isUserTurn"`
	Transcript   string            `json:"transcript,omitempty"`
	Feedback     *scoring.Feedback `json:"feedback,omitempty"`
	CanAdvance   bool              `json:"canAdvance"`
	AudioURL     string            `json:"audioUrl,omitempty"`
	Completed    bool              `json:"completed"`
	AverageScore float64           `json:"averageScore"`
}
