package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Speaker turns text into a playable audio file
type Speaker interface {
	// Speak returns the name of an audio file (relative to the audio
	// directory) that speaks text
	Speak(ctx context.Context, text string) (string, error)
}

// GoogleTranslateTTSURL is the Google Translate text-to-speech endpoint
const GoogleTranslateTTSURL = "https://translate.google.com/translate_tts"

const ttsRequestTimeout = 10 * time.Second

// speechNamespace scopes the name-based UUIDs used as audio file names
var speechNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("speakpractice/tts"))

// TTSService provides text-to-speech functionality
type TTSService struct {
	audioDir string
	baseURL  string
	language string
	client   *http.Client
}

// NewTTSService creates a new TTS service writing MP3 files to audioDir
func NewTTSService(audioDir, language string) *TTSService {
	if language == "" {
		language = "en"
	}
	return &TTSService{
		audioDir: audioDir,
		baseURL:  GoogleTranslateTTSURL,
		language: language,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// AudioDir returns the directory audio files are written to
func (s *TTSService) AudioDir() string {
	return s.audioDir
}

// WithBaseURL overrides the TTS endpoint
func (s *TTSService) WithBaseURL(baseURL string) *TTSService {
	s.baseURL = baseURL
	return s
}

// AudioFilename returns the file name used for text. Lines differing only
// in case or surrounding whitespace share a file.
func AudioFilename(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	return fmt.Sprintf("line_%s.mp3", uuid.NewSHA1(speechNamespace, []byte(normalized)))
}

// Speak converts text to speech and saves it as MP3.
// Returns the filename (not full path) on success
func (s *TTSService) Speak(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text to speak")
	}

	filename := AudioFilename(text)
	path := filepath.Join(s.audioDir, filename)

	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	if err := s.generateUsingGoogleTTS(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech API
func (s *TTSService) generateUsingGoogleTTS(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.language)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := s.baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Partial downloads must never appear under the final name
	tmp, err := os.CreateTemp(s.audioDir, "tts-*.part")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return os.Rename(tmp.Name(), outputPath)
}

// BatchGenerateAudio generates audio files for multiple lines
func (s *TTSService) BatchGenerateAudio(ctx context.Context, lines []string) (map[string]string, error) {
	results := make(map[string]string)

	for _, line := range lines {
		filename, err := s.Speak(ctx, line)
		if err != nil {
			return results, fmt.Errorf("failed to generate audio for '%s': %w", line, err)
		}
		results[line] = filename
	}

	return results, nil
}

// DeleteAudioFile removes an audio file
func (s *TTSService) DeleteAudioFile(filename string) error {
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // Already deleted
	}

	return os.Remove(path)
}

// GetAllAudioFiles returns a list of all MP3 files in the audio directory
func (s *TTSService) GetAllAudioFiles() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var audioFiles []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".mp3" {
			audioFiles = append(audioFiles, file.Name())
		}
	}

	return audioFiles, nil
}

// CleanupOrphanedAudioFiles removes audio files not generated for any of
// the given lines. Returns the number of files removed
func (s *TTSService) CleanupOrphanedAudioFiles(lines []string) (int, error) {
	keep := make(map[string]bool, len(lines))
	for _, line := range lines {
		keep[AudioFilename(line)] = true
	}

	files, err := s.GetAllAudioFiles()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, file := range files {
		if keep[file] {
			continue
		}
		if err := s.DeleteAudioFile(file); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", file, err)
		}
		removed++
	}
	return removed, nil
}
