package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrNoSpeech is returned when a recording contains no recognizable speech
var ErrNoSpeech = errors.New("no speech detected")

// Transcriber converts recorded speech into a transcript
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// WhisperTranscriber transcribes audio with an OpenAI-compatible
// /audio/transcriptions endpoint
type WhisperTranscriber struct {
	client   oai.Client
	model    string
	language string
}

// NewWhisperTranscriber creates a transcriber. baseURL may be empty to use
// the default OpenAI endpoint
func NewWhisperTranscriber(apiKey, baseURL, model, language string, timeout time.Duration) (*WhisperTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("whisper: apiKey must not be empty")
	}
	if model == "" {
		model = string(oai.AudioModelWhisper1)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	return &WhisperTranscriber{
		client:   oai.NewClient(opts...),
		model:    model,
		language: language,
	}, nil
}

// Transcribe uploads the recording and returns the recognized text
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	params := oai.AudioTranscriptionNewParams{
		File:  oai.File(audio, filepath.Base(filename), contentTypeFor(filename)),
		Model: oai.AudioModel(t.model),
	}
	if t.language != "" {
		params.Language = oai.String(t.language)
	}

	transcription, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("whisper: transcription: %w", err)
	}

	text := strings.TrimSpace(transcription.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// contentTypeFor guesses the upload content type from the file extension
func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".m4a", ".mp4":
		return "audio/mp4"
	default:
		return "audio/webm"
	}
}
