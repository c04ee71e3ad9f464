package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"speakpractice/internal/audio"
	"speakpractice/internal/config"
	"speakpractice/internal/handlers"
	"speakpractice/internal/llm/openai"
	"speakpractice/internal/metrics"
	"speakpractice/internal/repository"
	"speakpractice/internal/scoring"
	"speakpractice/internal/security"
	"speakpractice/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	startup := handlers.NewStartupStatus(
		handlers.StepLoadDialogues,
		handlers.StepLoadTemplates,
		handlers.StepInitServices,
		handlers.StepPrepareAudio,
		handlers.StepServerReady,
	)

	// Load dialogue catalog
	startup.SetCurrentStep(handlers.StepLoadDialogues)
	dialogueRepo, err := loadDialogues(cfg.DialoguesPath)
	if err != nil {
		log.Fatalf("Failed to load dialogues: %v", err)
	}
	log.Printf("Loaded %d dialogues", len(dialogueRepo.ListDialogues()))
	startup.CompleteStep(handlers.StepLoadDialogues)

	// Load feedback templates
	startup.SetCurrentStep(handlers.StepLoadTemplates)
	classifier, err := loadClassifier(cfg.FeedbackTemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load feedback templates: %v", err)
	}
	startup.CompleteStep(handlers.StepLoadTemplates)

	// Initialize services
	startup.SetCurrentStep(handlers.StepInitServices)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector("speakpractice", registry)

	ttsService := audio.NewTTSService(cfg.AudioDir, cfg.TTSLanguage)
	audioBaseURL, serveAudioSeparately := audioURLPrefix(cfg.StaticFilesPath, cfg.AudioDir)

	practiceOpts := []service.PracticeOption{
		service.WithSpeaker(ttsService),
		service.WithClassifier(classifier),
		service.WithRecorder(collector),
		service.WithPassThreshold(cfg.PassThreshold),
		service.WithSessionTTL(cfg.SessionTTL),
		service.WithAudioBaseURL(audioBaseURL),
	}

	// A nil responder makes the conversation route answer 503
	var conversations handlers.ConversationResponder
	if cfg.AIEnabled() {
		provider, err := openai.New(cfg.AIAPIKey, cfg.AIModel,
			openai.WithBaseURL(cfg.AIBaseURL),
			openai.WithTimeout(cfg.AITimeout),
		)
		if err != nil {
			log.Fatalf("Failed to initialize AI provider: %v", err)
		}
		conversations = service.NewConversationService(provider, ttsService, collector, audioBaseURL)

		transcriber, err := audio.NewWhisperTranscriber(cfg.AIAPIKey, cfg.AIBaseURL, cfg.STTModel, cfg.TTSLanguage, cfg.AITimeout)
		if err != nil {
			log.Fatalf("Failed to initialize transcriber: %v", err)
		}
		practiceOpts = append(practiceOpts, service.WithTranscriber(transcriber))

		log.Printf("AI conversation enabled (model: %s)", provider.Model())
	} else {
		log.Println("AI_API_KEY not set; AI conversation and audio uploads are disabled")
	}

	practiceService := service.NewPracticeService(dialogueRepo, practiceOpts...)
	limiter := security.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	startup.CompleteStep(handlers.StepInitServices)

	// Setup routes
	mux := handlers.NewMux(handlers.Routes{
		Startup:      startup,
		Dialogues:    handlers.NewDialogueHandler(dialogueRepo),
		Scores:       handlers.NewScoreHandler(classifier, collector),
		Practice:     handlers.NewPracticeHandler(practiceService, cfg.UploadMaxSize),
		Conversation: handlers.NewConversationHandler(conversations),
		Limiter:      limiter,
		StaticPath:   cfg.StaticFilesPath,
		Metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	if serveAudioSeparately {
		mux.Handle("GET /audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(cfg.AudioDir))))
	}

	handler := handlers.Logging(handlers.CORS(cfg.CORSOrigins, handlers.Metrics(collector, mux)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Audio no dialogue uses is removed before any request can produce new files
	lines := dialogueLines(dialogueRepo)
	removeOrphanedAudio(ttsService, lines)

	// Background cleanup of idle sessions and rate limit buckets
	go practiceService.Run(ctx, 5*time.Minute)
	go limiter.Run(ctx, time.Minute)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// A conversation turn may wait on the model and then on speech
		WriteTimeout: 2*cfg.AITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	go prepareAudio(ctx, ttsService, lines, startup)

	// Wait for interrupt signal
	<-ctx.Done()
	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

func loadDialogues(path string) (*repository.DialogueRepository, error) {
	if path == "" {
		return repository.NewDialogueRepository()
	}
	return repository.LoadDialogueRepository(path)
}

func loadClassifier(path string) (*scoring.Classifier, error) {
	if path == "" {
		return scoring.DefaultClassifier(), nil
	}
	templates, err := scoring.LoadTemplates(path)
	if err != nil {
		return nil, err
	}
	return scoring.NewClassifier(templates)
}

// audioURLPrefix returns the URL synthesized files are served under. Audio
// kept inside the static tree reuses /static/; anything else gets /audio/.
func audioURLPrefix(staticPath, audioDir string) (string, bool) {
	rel, err := filepath.Rel(staticPath, audioDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "/audio/", true
	}
	if rel == "." {
		return "/static/", false
	}
	return "/static/" + filepath.ToSlash(rel) + "/", false
}

// dialogueLines returns the English text of every line. Either speaker may
// be the partner, so all lines need audio.
func dialogueLines(dialogues *repository.DialogueRepository) []string {
	var lines []string
	for _, d := range dialogues.ListDialogues() {
		for _, line := range d.Lines {
			lines = append(lines, line.English)
		}
	}
	return lines
}

// removeOrphanedAudio deletes audio left over from lines that no longer
// exist. Conversation replies share the directory, so this only runs
// before the server accepts requests.
func removeOrphanedAudio(tts *audio.TTSService, lines []string) {
	removed, err := tts.CleanupOrphanedAudioFiles(lines)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: Failed to cleanup orphaned audio files: %v", err)
		}
		return
	}
	if removed > 0 {
		log.Printf("Removed %d orphaned audio files", removed)
	}
}

// prepareAudio synthesizes every dialogue line ahead of time. The server is
// marked ready either way; a failure leaves the audio step incomplete.
func prepareAudio(ctx context.Context, tts *audio.TTSService, lines []string, startup *handlers.StartupStatus) {
	defer startup.MarkReady()
	startup.SetCurrentStep(handlers.StepPrepareAudio)

	if err := os.MkdirAll(filepath.Clean(tts.AudioDir()), 0o755); err != nil {
		log.Printf("Warning: Failed to create audio directory: %v", err)
		return
	}

	generated, err := tts.BatchGenerateAudio(ctx, lines)
	if err != nil {
		log.Printf("Warning: Failed to generate missing audio files: %v", err)
		return
	}
	log.Printf("Prepared audio for %d dialogue lines", len(generated))
	startup.CompleteStep(handlers.StepPrepareAudio)
}
