package scoring

import (
	"math"
	"reflect"
	"testing"

	"github.com/antzucaro/matchr"
	"pgregory.net/rapid"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		expected []string
	}{
		{
			name:     "empty string",
			sentence: "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			sentence: " \t\n ",
			expected: []string{},
		},
		{
			name:     "lower-cases words",
			sentence: "Nice to meet you, Ravi!",
			expected: []string{"nice", "to", "meet", "you,", "ravi!"},
		},
		{
			name:     "collapses whitespace runs",
			sentence: "  I   wake\tup  ",
			expected: []string{"i", "wake", "up"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Tokenize(tt.sentence)
			if len(result) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.sentence, result, tt.expected)
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"world", "word", 1},
		{"hello there", "helo ther", 2},
		{"flaw", "lawn", 2},
		{"ಶಾಲೆ", "ಶಾಲೆಗೆ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := Levenshtein(tt.a, tt.b); got != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestLevenshteinMatchesReference(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-z' ]{0,12}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-z' ]{0,12}`).Draw(t, "b")

		got := Levenshtein(a, b)
		if want := matchr.Levenshtein(a, b); got != want {
			t.Fatalf("Levenshtein(%q, %q) = %d, reference says %d", a, b, got, want)
		}
		if sym := Levenshtein(b, a); sym != got {
			t.Fatalf("distance not symmetric: %d vs %d", got, sym)
		}
	})
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "both empty", a: "", b: "", expected: 1.0},
		{name: "one empty", a: "abc", b: "", expected: 0},
		{name: "identical", a: "ravi", b: "ravi", expected: 1.0},
		{name: "one deletion", a: "world", b: "word", expected: 0.8},
		{name: "trailing punctuation", a: "you,", b: "you", expected: 0.75},
		{name: "completely different", a: "dog", b: "cat", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Draw(t, "b")

		sim := Similarity(a, b)
		if sim < 0 || sim > 1 {
			t.Fatalf("Similarity(%q, %q) = %v, outside [0, 1]", a, b, sim)
		}
	})
}
