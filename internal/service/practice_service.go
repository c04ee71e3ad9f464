package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"speakpractice/internal/audio"
	"speakpractice/internal/models"
	"speakpractice/internal/repository"
	"speakpractice/internal/scoring"
	"speakpractice/internal/validation"
)

const (
	// DefaultPassThreshold is the accuracy a learner line needs before the
	// session moves on
	DefaultPassThreshold = scoring.FairThreshold
	DefaultSessionTTL    = 2 * time.Hour
	DefaultAudioBaseURL  = "/static/audio/"
)

// PracticeService runs dialogue practice sessions held in memory
type PracticeService struct {
	dialogues     *repository.DialogueRepository
	classifier    *scoring.Classifier
	speaker       audio.Speaker
	transcriber   audio.Transcriber
	recorder      Recorder
	passThreshold int
	ttl           time.Duration
	audioBaseURL  string
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*models.PracticeSession
}

// PracticeOption configures a PracticeService
type PracticeOption func(*PracticeService)

// WithSpeaker synthesizes partner lines
func WithSpeaker(speaker audio.Speaker) PracticeOption {
	return func(s *PracticeService) { s.speaker = speaker }
}

// WithTranscriber enables recorded-audio submissions
func WithTranscriber(transcriber audio.Transcriber) PracticeOption {
	return func(s *PracticeService) { s.transcriber = transcriber }
}

// WithClassifier replaces the default feedback templates
func WithClassifier(classifier *scoring.Classifier) PracticeOption {
	return func(s *PracticeService) { s.classifier = classifier }
}

// WithRecorder reports scoring metrics
func WithRecorder(recorder Recorder) PracticeOption {
	return func(s *PracticeService) { s.recorder = recorder }
}

// WithPassThreshold sets the accuracy required to advance past a learner line
func WithPassThreshold(threshold int) PracticeOption {
	return func(s *PracticeService) { s.passThreshold = threshold }
}

// WithSessionTTL sets how long an idle session is kept
func WithSessionTTL(ttl time.Duration) PracticeOption {
	return func(s *PracticeService) { s.ttl = ttl }
}

// WithAudioBaseURL sets the URL prefix synthesized files are served under
func WithAudioBaseURL(baseURL string) PracticeOption {
	return func(s *PracticeService) { s.audioBaseURL = baseURL }
}

// NewPracticeService creates a new practice service
func NewPracticeService(dialogues *repository.DialogueRepository, opts ...PracticeOption) *PracticeService {
	s := &PracticeService{
		dialogues:     dialogues,
		classifier:    scoring.DefaultClassifier(),
		recorder:      nopRecorder{},
		passThreshold: DefaultPassThreshold,
		ttl:           DefaultSessionTTL,
		audioBaseURL:  DefaultAudioBaseURL,
		now:           time.Now,
		sessions:      make(map[string]*models.PracticeSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession begins practicing dialogueID as character. When the first
// line belongs to the partner it is synthesized.
func (s *PracticeService) StartSession(ctx context.Context, dialogueID string, character models.Character) (*models.PracticeState, error) {
	if !character.Valid() {
		return nil, ErrInvalidCharacter
	}
	dialogue := s.dialogues.GetDialogue(dialogueID)
	if dialogue == nil {
		return nil, ErrDialogueNotFound
	}

	now := s.now()
	session := &models.PracticeSession{
		ID:         uuid.NewString(),
		DialogueID: dialogue.ID,
		Character:  character,
		StartedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	count := len(s.sessions)
	state := s.stateLocked(session, dialogue)
	s.mu.Unlock()

	s.recorder.SetActiveSessions(count)

	if !state.IsUserTurn {
		state.AudioURL = s.speakBestEffort(ctx, state.CurrentLine.English)
	}
	return state, nil
}

// GetSession returns the current state of a session
func (s *PracticeService) GetSession(id string) (*models.PracticeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, dialogue, err := s.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	return s.stateLocked(session, dialogue), nil
}

// SubmitTranscript scores what the learner said for the current line
func (s *PracticeService) SubmitTranscript(id, transcript string) (*models.PracticeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, dialogue, err := s.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	line, err := learnerLine(session, dialogue)
	if err != nil {
		return nil, err
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, ErrNoSpeech
	}
	if err := validation.ValidateTranscript(transcript); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	feedback := s.classifier.Classify(scoring.ScoreDialogueLine(transcript, line.English))
	now := s.now()

	session.Transcript = transcript
	session.Feedback = &feedback
	session.Attempts = append(session.Attempts, models.LineAttempt{
		LineIndex:   session.CurrentIndex,
		Transcript:  transcript,
		Accuracy:    feedback.Accuracy,
		Tier:        string(feedback.Tier),
		AttemptedAt: now,
	})
	session.UpdatedAt = now

	s.recorder.RecordScore("practice", string(feedback.Tier))

	return s.stateLocked(session, dialogue), nil
}

// SubmitAudio transcribes a recording of the current line and scores it
func (s *PracticeService) SubmitAudio(ctx context.Context, id string, recording io.Reader, filename string) (*models.PracticeState, error) {
	if s.transcriber == nil {
		return nil, ErrAudioUnavailable
	}

	// Reject wrong turns before paying for a transcription
	s.mu.Lock()
	session, dialogue, err := s.lookupLocked(id)
	if err == nil {
		_, err = learnerLine(session, dialogue)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	transcript, err := s.transcriber.Transcribe(ctx, recording, filename)
	s.recorder.RecordLLMRequest("transcription", callStatus(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe recording: %w", err)
	}

	return s.SubmitTranscript(id, transcript)
}

// NextLine advances the session. Learner lines must have been scored at or
// above the pass threshold first. Moving past the last line completes the
// session.
func (s *PracticeService) NextLine(ctx context.Context, id string) (*models.PracticeState, error) {
	s.mu.Lock()
	session, dialogue, err := s.lookupLocked(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.Completed {
		s.mu.Unlock()
		return nil, ErrSessionCompleted
	}

	current := dialogue.Lines[session.CurrentIndex]
	if current.Character == session.Character && !s.passedLocked(session) {
		s.mu.Unlock()
		return nil, ErrBelowPassThreshold
	}

	session.Transcript = ""
	session.Feedback = nil
	if session.CurrentIndex < len(dialogue.Lines)-1 {
		session.CurrentIndex++
	} else {
		session.Completed = true
	}
	session.UpdatedAt = s.now()

	state := s.stateLocked(session, dialogue)
	s.mu.Unlock()

	if !state.Completed && !state.IsUserTurn {
		state.AudioURL = s.speakBestEffort(ctx, state.CurrentLine.English)
	}
	return state, nil
}

// Retry discards the last transcript and feedback for the current line
func (s *PracticeService) Retry(id string) (*models.PracticeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, dialogue, err := s.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, ErrSessionCompleted
	}

	session.Transcript = ""
	session.Feedback = nil
	session.UpdatedAt = s.now()

	return s.stateLocked(session, dialogue), nil
}

// Replay synthesizes the current line again
func (s *PracticeService) Replay(ctx context.Context, id string) (*models.PracticeState, error) {
	if s.speaker == nil {
		return nil, ErrAudioUnavailable
	}

	s.mu.Lock()
	session, dialogue, err := s.lookupLocked(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.Completed {
		s.mu.Unlock()
		return nil, ErrSessionCompleted
	}
	session.UpdatedAt = s.now()
	state := s.stateLocked(session, dialogue)
	s.mu.Unlock()

	filename, err := s.speaker.Speak(ctx, state.CurrentLine.English)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize line: %w", err)
	}
	state.AudioURL = s.audioBaseURL + filename
	return state, nil
}

// ActiveSessions returns the number of sessions held in memory
func (s *PracticeService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanupExpiredSessions drops sessions idle longer than the TTL and
// returns how many were removed
func (s *PracticeService) CleanupExpiredSessions() int {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for id, session := range s.sessions {
		if session.IsExpiredAt(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	s.recorder.SetActiveSessions(count)
	return removed
}

// Run removes expired sessions every interval until ctx is done
func (s *PracticeService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.CleanupExpiredSessions(); removed > 0 {
				log.Printf("Removed %d expired practice sessions", removed)
			}
		}
	}
}

// lookupLocked finds a live session and its dialogue. Caller holds s.mu.
func (s *PracticeService) lookupLocked(id string) (*models.PracticeSession, *models.Dialogue, error) {
	session, ok := s.sessions[id]
	if !ok || session.IsExpiredAt(s.now(), s.ttl) {
		return nil, nil, ErrSessionNotFound
	}
	dialogue := s.dialogues.GetDialogue(session.DialogueID)
	if dialogue == nil {
		return nil, nil, ErrDialogueNotFound
	}
	return session, dialogue, nil
}

// learnerLine returns the current line when it is the learner's to speak
func learnerLine(session *models.PracticeSession, dialogue *models.Dialogue) (models.DialogueLine, error) {
	if session.Completed {
		return models.DialogueLine{}, ErrSessionCompleted
	}
	line := dialogue.Lines[session.CurrentIndex]
	if line.Character != session.Character {
		return models.DialogueLine{}, ErrNotUserTurn
	}
	return line, nil
}

func (s *PracticeService) passedLocked(session *models.PracticeSession) bool {
	return session.Feedback != nil && session.Feedback.Accuracy >= s.passThreshold
}

// stateLocked builds the client view of a session. Caller holds s.mu.
func (s *PracticeService) stateLocked(session *models.PracticeSession, dialogue *models.Dialogue) *models.PracticeState {
	total := len(dialogue.Lines)
	state := &models.PracticeState{
		SessionID:    session.ID,
		DialogueID:   session.DialogueID,
		Character:    session.Character,
		LineIndex:    session.CurrentIndex,
		TotalLines:   total,
		Transcript:   session.Transcript,
		Feedback:     session.Feedback,
		Completed:    session.Completed,
		AverageScore: averageScore(session.Attempts),
	}

	if session.Completed {
		state.Progress = 100
		return state
	}

	line := dialogue.Lines[session.CurrentIndex]
	state.CurrentLine = &line
	state.IsUserTurn = line.Character == session.Character
	state.Progress = math.Round(float64(session.CurrentIndex+1)/float64(total)*100*100) / 100
	state.CanAdvance = !state.IsUserTurn || s.passedLocked(session)
	return state
}

// averageScore averages the latest attempt at each learner line
func averageScore(attempts []models.LineAttempt) float64 {
	latest := make(map[int]int)
	for _, a := range attempts {
		latest[a.LineIndex] = a.Accuracy
	}
	if len(latest) == 0 {
		return 0
	}
	sum := 0
	for _, accuracy := range latest {
		sum += accuracy
	}
	return math.Round(float64(sum)/float64(len(latest))*100) / 100
}

// speakBestEffort synthesizes text, returning an empty URL when speech is
// unavailable. A practice step never fails because audio could not be made.
func (s *PracticeService) speakBestEffort(ctx context.Context, text string) string {
	if s.speaker == nil {
		return ""
	}
	filename, err := s.speaker.Speak(ctx, text)
	if err != nil {
		log.Printf("Warning: failed to synthesize partner line: %v", err)
		return ""
	}
	return s.audioBaseURL + filename
}
