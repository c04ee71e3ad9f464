package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TierTemplate is the presentation for one tier. Message is a text/template
// executed with .Accuracy and .Words; .Words is only filled when ListWords
// is set. A "join" function is available.
type TierTemplate struct {
	Message   string `yaml:"message"`
	Emoji     string `yaml:"emoji"`
	Color     string `yaml:"color"`
	ListWords bool   `yaml:"list_words"`
}

// Templates maps each tier to its presentation.
type Templates map[Tier]TierTemplate

// DefaultTemplates returns the built-in English feedback.
func DefaultTemplates() Templates {
	return Templates{
		TierExcellent: {
			Message: "Excellent pronunciation! You said it perfectly! 🌟",
			Emoji:   "🌟",
			Color:   "success",
		},
		TierGood: {
			Message:   `Very good!{{if .Words}} Just practice {{join .Words ", "}} a bit more.{{end}} 👍`,
			Emoji:     "👍",
			Color:     "info",
			ListWords: true,
		},
		TierFair: {
			Message:   `Good try! Focus on pronouncing {{join .Words ", "}} more clearly. 💪`,
			Emoji:     "💪",
			Color:     "warning",
			ListWords: true,
		},
		TierRetry: {
			Message: "Let's try again! Listen carefully and repeat. 🔄",
			Emoji:   "🔄",
			Color:   "destructive",
		},
	}
}

// LoadTemplates reads tier templates from a YAML file. Tiers missing from the
// file keep their default presentation.
//
//	good:
//	  message: "Bien! {{join .Words \", \"}}"
//	  emoji: "👍"
//	  color: info
//	  list_words: true
func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback templates: %w", err)
	}
	return ParseTemplates(data)
}

// ParseTemplates decodes YAML tier templates over the defaults.
func ParseTemplates(data []byte) (Templates, error) {
	var overrides map[Tier]TierTemplate
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse feedback templates: %w", err)
	}

	templates := DefaultTemplates()
	for tier, tmpl := range overrides {
		if _, ok := templates[tier]; !ok {
			return nil, fmt.Errorf("unknown feedback tier %q", tier)
		}
		templates[tier] = tmpl
	}
	return templates, nil
}
