package optimizer

import "strings"

// countWords returns the number of whitespace-delimited tokens in s.
// Runs of whitespace count once and leading/trailing whitespace produces no
// empty tokens.
func countWords(s string) int {
	return len(strings.Fields(s))
}

// orOne returns n, or 1 when n is not positive. Used as a safe divisor for
// degenerate content (empty text, no terminal punctuation, no blank lines).
func orOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// clampScore clamps a score to the [0, 100] range.
func clampScore(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
