package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STATIC_PATH", "AUDIO_DIR", "AI_API_KEY", "PASS_THRESHOLD", "SESSION_TTL", "RATE_LIMIT_RPS", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.AudioDir != "./static/audio" {
		t.Errorf("AudioDir = %q", cfg.AudioDir)
	}
	if cfg.PassThreshold != 60 {
		t.Errorf("PassThreshold = %d, want 60", cfg.PassThreshold)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.AIEnabled() {
		t.Error("expected AI to be disabled without a key")
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("AI_API_KEY", "secret")
	t.Setenv("PASS_THRESHOLD", "70")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if !cfg.AIEnabled() {
		t.Error("expected AI to be enabled")
	}
	if cfg.PassThreshold != 70 {
		t.Errorf("PassThreshold = %d", cfg.PassThreshold)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Errorf("RateLimitRPS = %v", cfg.RateLimitRPS)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("AI_MODEL=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("AI_MODEL", "")
	os.Unsetenv("AI_MODEL")

	cfg := Load()
	if cfg.AIModel != "from-dotenv" {
		t.Errorf("AIModel = %q, want from-dotenv", cfg.AIModel)
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PASS_THRESHOLD", "sixty")
	t.Setenv("AI_TIMEOUT", "soon")

	cfg := Load()
	if cfg.PassThreshold != 60 {
		t.Errorf("PassThreshold = %d, want 60", cfg.PassThreshold)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Errorf("AITimeout = %v", cfg.AITimeout)
	}
}
