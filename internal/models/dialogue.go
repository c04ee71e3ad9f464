package models

// Character identifies one of the two speakers in a dialogue
type Character string

const (
	CharacterA Character = "A"
	CharacterB Character = "B"
)

// Valid reports whether c is one of the two dialogue speakers
func (c Character) Valid() bool {
	return c == CharacterA || c == CharacterB
}

// Category groups dialogues by theme
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
}

// CategorySummary is a category with the number of dialogues it holds
type CategorySummary struct {
	Category
	DialogueCount int `json:"dialogueCount"`
}

// DialogueLine is one line of a scripted bilingual dialogue
type DialogueLine struct {
	Character Character `json:"character" yaml:"character"`
	English   string    `json:"english" yaml:"english"`
	Kannada   string    `json:"kannada" yaml:"kannada"`
}

// Dialogue is a scripted conversation between characters A and B
type Dialogue struct {
	ID           string         `json:"id" yaml:"id"`
	Title        string         `json:"title" yaml:"title"`
	TitleKannada string         `json:"titleKannada" yaml:"title_kannada"`
	CategoryID   string         `json:"categoryId" yaml:"category"`
	Lines        []DialogueLine `json:"lines" yaml:"lines"`
}
