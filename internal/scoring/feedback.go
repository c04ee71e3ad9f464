package scoring

import (
	"fmt"
	"strings"
	"text/template"
)

// Tier is a qualitative feedback band selected from an accuracy value.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierRetry     Tier = "retry"
)

// Tier thresholds, checked highest first. Each is inclusive.
const (
	ExcellentThreshold = 90
	GoodThreshold      = 75
	FairThreshold      = 60
)

// maxListedWords caps how many incorrect words a message mentions.
const maxListedWords = 3

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierExcellent, TierGood, TierFair, TierRetry}

// TierFor maps an accuracy to its tier. Every integer maps to exactly one tier.
func TierFor(accuracy int) Tier {
	switch {
	case accuracy >= ExcellentThreshold:
		return TierExcellent
	case accuracy >= GoodThreshold:
		return TierGood
	case accuracy >= FairThreshold:
		return TierFair
	default:
		return TierRetry
	}
}

// Feedback is a LineScore dressed up for presentation.
type Feedback struct {
	LineScore
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
	Emoji   string `json:"emoji"`
	Color   string `json:"color"`
}

// Classifier renders feedback messages from a set of tier templates.
type Classifier struct {
	styles    map[Tier]TierTemplate
	templates map[Tier]*template.Template
}

// messageData is what a tier's message template is executed with.
type messageData struct {
	Accuracy int
	Words    []string
}

// NewClassifier parses one template per tier. Every tier must be present.
func NewClassifier(templates Templates) (*Classifier, error) {
	c := &Classifier{
		styles:    make(map[Tier]TierTemplate, len(Tiers)),
		templates: make(map[Tier]*template.Template, len(Tiers)),
	}

	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	for _, tier := range Tiers {
		style, ok := templates[tier]
		if !ok {
			return nil, fmt.Errorf("missing feedback template for tier %q", tier)
		}
		tmpl, err := template.New(string(tier)).Funcs(funcMap).Parse(style.Message)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s message template: %w", tier, err)
		}
		c.styles[tier] = style
		c.templates[tier] = tmpl
	}

	return c, nil
}

// Classify selects the tier for score and renders its message. Tiers that
// list words get at most the first three incorrect words.
func (c *Classifier) Classify(score LineScore) Feedback {
	tier := TierFor(score.Accuracy)
	style := c.styles[tier]

	data := messageData{Accuracy: score.Accuracy}
	if style.ListWords {
		data.Words = score.IncorrectWords[:min(len(score.IncorrectWords), maxListedWords)]
	}

	var msg strings.Builder
	if err := c.templates[tier].Execute(&msg, data); err != nil {
		// Templates are validated at construction; fall back to the raw text.
		msg.Reset()
		msg.WriteString(style.Message)
	}

	return Feedback{
		LineScore: score,
		Tier:      tier,
		Message:   msg.String(),
		Emoji:     style.Emoji,
		Color:     style.Color,
	}
}

var defaultClassifier = mustClassifier(DefaultTemplates())

func mustClassifier(templates Templates) *Classifier {
	c, err := NewClassifier(templates)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultClassifier returns the classifier built from DefaultTemplates.
func DefaultClassifier() *Classifier {
	return defaultClassifier
}

// GenerateFeedback scores a dialogue line and classifies it with the default
// templates.
func GenerateFeedback(spoken, expected string) Feedback {
	return defaultClassifier.Classify(ScoreDialogueLine(spoken, expected))
}
