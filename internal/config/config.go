package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort            string
	StaticFilesPath       string
	AudioDir              string
	UploadMaxSize         int64
	AIAPIKey              string
	AIBaseURL             string
	AIModel               string
	STTModel              string
	AITimeout             time.Duration
	TTSLanguage           string
	FeedbackTemplatesPath string
	DialoguesPath         string
	PassThreshold         int
	SessionTTL            time.Duration
	RateLimitRPS          float64
	RateLimitBurst        int
	CORSOrigins           []string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	// Missing .env is the normal case in production
	_ = godotenv.Load()

	staticPath := getEnv("STATIC_PATH", "./static")

	return &Config{
		ServerPort:            getEnv("PORT", "8080"),
		StaticFilesPath:       staticPath,
		AudioDir:              getEnv("AUDIO_DIR", staticPath+"/audio"),
		UploadMaxSize:         10 * 1024 * 1024, // 10MB
		AIAPIKey:              getEnv("AI_API_KEY", ""),
		AIBaseURL:             getEnv("AI_BASE_URL", ""),
		AIModel:               getEnv("AI_MODEL", "gpt-4o-mini"),
		STTModel:              getEnv("STT_MODEL", "whisper-1"),
		AITimeout:             getEnvDuration("AI_TIMEOUT", 30*time.Second),
		TTSLanguage:           getEnv("TTS_LANGUAGE", "en"),
		FeedbackTemplatesPath: getEnv("FEEDBACK_TEMPLATES_PATH", ""),
		DialoguesPath:         getEnv("DIALOGUES_PATH", ""),
		PassThreshold:         getEnvInt("PASS_THRESHOLD", 60),
		SessionTTL:            getEnvDuration("SESSION_TTL", 2*time.Hour),
		RateLimitRPS:          getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:        getEnvInt("RATE_LIMIT_BURST", 10),
		CORSOrigins:           getEnvList("CORS_ORIGINS", []string{"*"}),
	}
}

// AIEnabled reports whether an AI gateway key is configured
func (c *Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

// getEnvList reads a comma-separated list, dropping empty entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
