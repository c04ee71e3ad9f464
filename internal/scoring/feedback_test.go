package scoring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		accuracy int
		want     Tier
	}{
		{100, TierExcellent},
		{90, TierExcellent},
		{89, TierGood},
		{75, TierGood},
		{74, TierFair},
		{60, TierFair},
		{59, TierRetry},
		{0, TierRetry},
	}

	for _, tt := range tests {
		if got := TierFor(tt.accuracy); got != tt.want {
			t.Errorf("TierFor(%d) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}

func TestTierForIsTotal(t *testing.T) {
	colors := make(map[string]Tier)
	for accuracy := 0; accuracy <= 100; accuracy++ {
		fb := DefaultClassifier().Classify(LineScore{Accuracy: accuracy})
		if fb.Tier == "" || fb.Color == "" || fb.Emoji == "" {
			t.Fatalf("accuracy %d produced incomplete feedback %+v", accuracy, fb)
		}
		if seen, ok := colors[fb.Color]; ok && seen != fb.Tier {
			t.Fatalf("color %q shared by tiers %q and %q", fb.Color, seen, fb.Tier)
		}
		colors[fb.Color] = fb.Tier
	}
	if len(colors) != len(Tiers) {
		t.Errorf("expected %d distinct colors, got %d", len(Tiers), len(colors))
	}
}

func TestClassifyMessages(t *testing.T) {
	words := []string{"four", "books", "pencil", "box"}

	tests := []struct {
		name    string
		score   LineScore
		tier    Tier
		message string
		color   string
	}{
		{
			name:    "excellent ignores words",
			score:   LineScore{Accuracy: 95, IncorrectWords: words},
			tier:    TierExcellent,
			message: "Excellent pronunciation! You said it perfectly! 🌟",
			color:   "success",
		},
		{
			name:    "good lists first three words",
			score:   LineScore{Accuracy: 80, IncorrectWords: words},
			tier:    TierGood,
			message: "Very good! Just practice four, books, pencil a bit more. 👍",
			color:   "info",
		},
		{
			name:    "good without words",
			score:   LineScore{Accuracy: 80, IncorrectWords: []string{}},
			tier:    TierGood,
			message: "Very good! 👍",
			color:   "info",
		},
		{
			name:    "fair is corrective",
			score:   LineScore{Accuracy: 60, IncorrectWords: []string{"o'clock"}},
			tier:    TierFair,
			message: "Good try! Focus on pronouncing o'clock more clearly. 💪",
			color:   "warning",
		},
		{
			name:    "retry ignores words",
			score:   LineScore{Accuracy: 59, IncorrectWords: words},
			tier:    TierRetry,
			message: "Let's try again! Listen carefully and repeat. 🔄",
			color:   "destructive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := DefaultClassifier().Classify(tt.score)
			if fb.Tier != tt.tier {
				t.Errorf("Tier = %q, want %q", fb.Tier, tt.tier)
			}
			if fb.Message != tt.message {
				t.Errorf("Message = %q, want %q", fb.Message, tt.message)
			}
			if fb.Color != tt.color {
				t.Errorf("Color = %q, want %q", fb.Color, tt.color)
			}
			if len(fb.IncorrectWords) != len(tt.score.IncorrectWords) {
				t.Errorf("IncorrectWords truncated: got %d, want %d", len(fb.IncorrectWords), len(tt.score.IncorrectWords))
			}
		})
	}
}

func TestGenerateFeedback(t *testing.T) {
	fb := GenerateFeedback("I wake up at six", "I wake up at six o'clock")
	if fb.Accuracy != 83 {
		t.Fatalf("Accuracy = %d, want 83", fb.Accuracy)
	}
	if fb.Tier != TierGood {
		t.Fatalf("Tier = %q, want %q", fb.Tier, TierGood)
	}
	if !strings.Contains(fb.Message, "o'clock") {
		t.Errorf("expected message to mention o'clock, got %q", fb.Message)
	}
}

func TestParseTemplates(t *testing.T) {
	data := []byte(`
retry:
  message: "Innondu sala prayatnisi! ({{.Accuracy}}%)"
  emoji: "🔁"
  color: destructive
`)
	templates, err := ParseTemplates(data)
	if err != nil {
		t.Fatalf("ParseTemplates() error = %v", err)
	}

	c, err := NewClassifier(templates)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}

	fb := c.Classify(LineScore{Accuracy: 20})
	if fb.Message != "Innondu sala prayatnisi! (20%)" {
		t.Errorf("Message = %q", fb.Message)
	}
	if fb.Emoji != "🔁" {
		t.Errorf("Emoji = %q", fb.Emoji)
	}

	// Untouched tiers keep their defaults.
	if got := c.Classify(LineScore{Accuracy: 100}).Color; got != "success" {
		t.Errorf("excellent color = %q, want success", got)
	}
}

func TestParseTemplatesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown tier", data: "superb:\n  message: hi\n"},
		{name: "invalid yaml", data: "good: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTemplates([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNewClassifierRejectsBadTemplate(t *testing.T) {
	templates := DefaultTemplates()
	templates[TierFair] = TierTemplate{Message: "{{.Words"}
	if _, err := NewClassifier(templates); err == nil {
		t.Error("expected parse error, got nil")
	}

	delete(templates, TierFair)
	if _, err := NewClassifier(templates); err == nil {
		t.Error("expected missing tier error, got nil")
	}
}

func TestLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.yaml")
	if err := os.WriteFile(path, []byte("excellent:\n  message: Perfect!\n  emoji: \"✅\"\n  color: success\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	templates, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates() error = %v", err)
	}
	if templates[TierExcellent].Message != "Perfect!" {
		t.Errorf("excellent message = %q", templates[TierExcellent].Message)
	}

	if _, err := LoadTemplates(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
