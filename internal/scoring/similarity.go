package scoring

// Levenshtein returns the edit distance between a and b using unit-cost
// insertions, deletions and substitutions. Lengths are counted in runes.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	// prev and curr are consecutive rows of the distance table: curr[j] is
	// the distance between rb[:i] and ra[:j].
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = min(prev[j-1], curr[j-1], prev[j]) + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns (maxLen - distance) / maxLen, in [0, 1].
// Two empty strings are a trivial perfect match and score 1.0.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1.0
	}
	return float64(longest-Levenshtein(a, b)) / float64(longest)
}
