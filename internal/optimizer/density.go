package optimizer

import (
	"math"
	"strings"
)

const percentFactor = 100

// KeywordDensity returns, for each distinct keyword, the percentage of the
// content's word count occupied by its occurrences, rounded to two decimals.
// Matching is case-insensitive literal substring matching; keys preserve the
// caller's casing. If the same keyword string appears twice in the list, the
// last value wins (values are identical anyway, as density depends only on
// the keyword text).
func KeywordDensity(content string, keywords []string) map[string]float64 {
	contentLower := strings.ToLower(content)
	wordCount := orOne(countWords(content))

	density := make(map[string]float64, len(keywords))
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		count := strings.Count(contentLower, strings.ToLower(keyword))
		pct := float64(count) / float64(wordCount) * percentFactor
		density[keyword] = math.Round(pct*percentFactor) / percentFactor
	}

	return density
}
