// Package scoring compares a spoken transcript with a reference sentence and
// turns the result into an accuracy percentage and tiered feedback.
//
// Everything in this package is pure: no I/O, no shared state. All functions
// are safe for concurrent use.
package scoring

import "strings"

// Tokenize lower-cases a sentence and splits it on runs of whitespace.
// Empty or whitespace-only input yields an empty slice.
func Tokenize(sentence string) []string {
	return strings.Fields(strings.ToLower(sentence))
}
