package repository

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"speakpractice/internal/models"
)

//go:embed data/dialogues.yaml
var defaultDialogues []byte

// catalog is the on-disk layout of a dialogue dataset
type catalog struct {
	Categories []models.Category `yaml:"categories"`
	Dialogues  []models.Dialogue `yaml:"dialogues"`
}

// DialogueRepository serves the read-only dialogue catalog
type DialogueRepository struct {
	categories []models.Category
	dialogues  []models.Dialogue
	byID       map[string]*models.Dialogue
}

// NewDialogueRepository loads the built-in dialogue catalog
func NewDialogueRepository() (*DialogueRepository, error) {
	return ParseDialogues(defaultDialogues)
}

// LoadDialogueRepository loads a dialogue catalog from a YAML file
func LoadDialogueRepository(path string) (*DialogueRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dialogues: %w", err)
	}
	return ParseDialogues(data)
}

// ParseDialogues decodes and validates a YAML dialogue catalog
func ParseDialogues(data []byte) (*DialogueRepository, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse dialogues: %w", err)
	}

	categoryIDs := make(map[string]bool, len(c.Categories))
	for _, category := range c.Categories {
		categoryIDs[category.ID] = true
	}

	r := &DialogueRepository{
		categories: c.Categories,
		dialogues:  c.Dialogues,
		byID:       make(map[string]*models.Dialogue, len(c.Dialogues)),
	}

	for i := range r.dialogues {
		d := &r.dialogues[i]
		if d.ID == "" {
			return nil, fmt.Errorf("dialogue %d has no id", i)
		}
		if _, exists := r.byID[d.ID]; exists {
			return nil, fmt.Errorf("duplicate dialogue id %q", d.ID)
		}
		if !categoryIDs[d.CategoryID] {
			return nil, fmt.Errorf("dialogue %q references unknown category %q", d.ID, d.CategoryID)
		}
		if len(d.Lines) == 0 {
			return nil, fmt.Errorf("dialogue %q has no lines", d.ID)
		}
		for j, line := range d.Lines {
			if !line.Character.Valid() {
				return nil, fmt.Errorf("dialogue %q line %d has invalid character %q", d.ID, j+1, line.Character)
			}
		}
		r.byID[d.ID] = d
	}

	return r, nil
}

// ListCategories returns every category with its dialogue count
func (r *DialogueRepository) ListCategories() []models.CategorySummary {
	counts := make(map[string]int)
	for _, d := range r.dialogues {
		counts[d.CategoryID]++
	}

	summaries := make([]models.CategorySummary, 0, len(r.categories))
	for _, category := range r.categories {
		summaries = append(summaries, models.CategorySummary{
			Category:      category,
			DialogueCount: counts[category.ID],
		})
	}
	return summaries
}

// GetCategory retrieves a category by ID
func (r *DialogueRepository) GetCategory(categoryID string) *models.Category {
	for i := range r.categories {
		if r.categories[i].ID == categoryID {
			return &r.categories[i]
		}
	}
	return nil
}

// ListByCategory returns the dialogues in a category, in catalog order
func (r *DialogueRepository) ListByCategory(categoryID string) []models.Dialogue {
	var dialogues []models.Dialogue
	for _, d := range r.dialogues {
		if d.CategoryID == categoryID {
			dialogues = append(dialogues, d)
		}
	}
	return dialogues
}

// ListDialogues returns every dialogue in catalog order
func (r *DialogueRepository) ListDialogues() []models.Dialogue {
	return r.dialogues
}

// GetDialogue retrieves a dialogue by ID, or nil when it does not exist
func (r *DialogueRepository) GetDialogue(id string) *models.Dialogue {
	return r.byID[id]
}
