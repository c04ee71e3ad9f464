package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"speakpractice/internal/audio"
	"speakpractice/internal/llm"
	"speakpractice/internal/models"
	"speakpractice/internal/scoring"
	"speakpractice/internal/validation"
)

const grammarPrompt = "Analyze this English sentence for grammar errors. Provide brief, constructive feedback. " +
	"If perfect, say 'Good grammar!' If errors exist, point them out kindly with corrections. Keep it under 30 words."

// conversationPrompt builds the partner persona for a topic
func conversationPrompt(topic string) string {
	return fmt.Sprintf(`You are a friendly English speaking partner helping someone practice English conversation.
Topic: %s
Keep your responses simple, natural, and conversational (2-3 sentences max).
Speak like a real person having a casual conversation.
Ask follow-up questions to keep the conversation flowing.`, topic)
}

// ConversationService relays open conversation turns to the AI partner
type ConversationService struct {
	provider     llm.Provider
	speaker      audio.Speaker
	recorder     Recorder
	audioBaseURL string
}

// NewConversationService creates a conversation service. speaker may be nil
// to skip synthesizing replies.
func NewConversationService(provider llm.Provider, speaker audio.Speaker, recorder Recorder, audioBaseURL string) *ConversationService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if audioBaseURL == "" {
		audioBaseURL = DefaultAudioBaseURL
	}
	return &ConversationService{
		provider:     provider,
		speaker:      speaker,
		recorder:     recorder,
		audioBaseURL: audioBaseURL,
	}
}

// Respond produces the partner's next turn. When the learner spoke last,
// their message is also critiqued for grammar and scored for clarity
// against the partner's previous turn. A failed critique leaves
// GrammarFeedback nil rather than failing the turn.
func (s *ConversationService) Respond(ctx context.Context, req models.ConversationRequest) (*models.ConversationReply, error) {
	if err := validation.ValidateTopic(req.Topic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := validation.ValidateConversation(req.Conversation); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	topic := strings.TrimSpace(req.Topic)

	history := make([]llm.Message, 0, len(req.Conversation))
	for _, m := range req.Conversation {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply := &models.ConversationReply{}
	last, hasLast := lastMessage(req.Conversation)
	critique := hasLast && last.Role == models.RoleUser

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp, err := s.complete(gctx, "reply", llm.CompletionRequest{
			SystemPrompt: conversationPrompt(topic),
			Messages:     history,
		})
		if err != nil {
			return err
		}
		reply.Response = resp.Content
		return nil
	})

	if critique {
		g.Go(func() error {
			resp, err := s.complete(gctx, "grammar", llm.CompletionRequest{
				SystemPrompt: grammarPrompt,
				Messages:     []llm.Message{{Role: models.RoleUser, Content: last.Content}},
			})
			if err != nil {
				log.Printf("Warning: grammar critique failed: %v", err)
				return nil
			}
			feedback := resp.Content
			reply.GrammarFeedback = &feedback
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if critique {
		if prev, ok := previousAssistant(req.Conversation); ok {
			clarity := scoring.ScoreConversationTurn(prev.Content, last.Content)
			reply.Clarity = &clarity
			s.recorder.RecordScore("conversation", string(scoring.TierFor(int(clarity))))
		}
	}

	if s.speaker != nil && strings.TrimSpace(reply.Response) != "" {
		if filename, err := s.speaker.Speak(ctx, reply.Response); err != nil {
			log.Printf("Warning: failed to synthesize reply: %v", err)
		} else {
			reply.AudioURL = s.audioBaseURL + filename
		}
	}

	return reply, nil
}

func (s *ConversationService) complete(ctx context.Context, kind string, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	start := time.Now()
	resp, err := s.provider.Complete(ctx, req)
	s.recorder.RecordLLMRequest(kind, callStatus(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s completion: %w", kind, err)
	}
	return resp, nil
}

func lastMessage(conversation []models.ConversationMessage) (models.ConversationMessage, bool) {
	if len(conversation) == 0 {
		return models.ConversationMessage{}, false
	}
	return conversation[len(conversation)-1], true
}

// previousAssistant returns the message just before the last one when it
// came from the assistant
func previousAssistant(conversation []models.ConversationMessage) (models.ConversationMessage, bool) {
	if len(conversation) < 2 {
		return models.ConversationMessage{}, false
	}
	prev := conversation[len(conversation)-2]
	return prev, prev.Role == models.RoleAssistant
}
