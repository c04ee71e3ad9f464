package scoring

import (
	"math"
	"strings"
)

// partialCreditThreshold is the word similarity above which a mismatched word
// still earns fractional credit.
const partialCreditThreshold = 0.7

// LineScore is the word-level result of comparing a spoken line with the
// expected dialogue line.
type LineScore struct {
	Accuracy       int      `json:"accuracy"`
	CorrectWords   []string `json:"correctWords"`
	IncorrectWords []string `json:"incorrectWords"`
}

// ScoreDialogueLine scores a spoken transcript against the expected line.
//
// Words are paired strictly by position. An exact match earns 1.0, a near
// match (similarity above 0.7) earns its similarity, anything else earns
// nothing. The total is divided by the number of expected words, so a short
// transcript can never reach 100.
//
// The correct/incorrect breakdown is a separate, stricter pass: only exact
// positional matches count as correct, and expected words with no spoken
// counterpart are incorrect.
func ScoreDialogueLine(spoken, expected string) LineScore {
	spokenWords := Tokenize(spoken)
	expectedWords := Tokenize(expected)

	score := LineScore{
		CorrectWords:   []string{},
		IncorrectWords: []string{},
	}
	if len(expectedWords) == 0 {
		return score
	}

	matched := 0.0
	for i := 0; i < min(len(spokenWords), len(expectedWords)); i++ {
		if spokenWords[i] == expectedWords[i] {
			matched++
			continue
		}
		if sim := Similarity(spokenWords[i], expectedWords[i]); sim > partialCreditThreshold {
			matched += sim
		}
	}
	score.Accuracy = int(math.Round(matched / float64(len(expectedWords)) * 100))

	for i, word := range expectedWords {
		if i < len(spokenWords) && spokenWords[i] == word {
			score.CorrectWords = append(score.CorrectWords, word)
		} else {
			score.IncorrectWords = append(score.IncorrectWords, word)
		}
	}

	return score
}

// ScoreConversationTurn estimates how clearly a reply was spoken by comparing
// the whole strings character by character. The result is a percentage
// rounded to two decimal places; an empty side scores 0.
//
// Unlike ScoreDialogueLine this never splits into words and applies no
// partial-credit threshold.
func ScoreConversationTurn(expected, spoken string) float64 {
	exp := strings.TrimSpace(strings.ToLower(expected))
	spk := strings.TrimSpace(strings.ToLower(spoken))
	if exp == "" || spk == "" {
		return 0
	}

	return math.Round(Similarity(exp, spk)*100*100) / 100
}
