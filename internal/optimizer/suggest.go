package optimizer

import "fmt"

const (
	// Suggestion thresholds. The low/high density thresholds intentionally
	// differ from the SEO stuffing threshold (0.5% / 3% here vs 5% there).
	seoSuggestionThreshold         = 80
	readabilitySuggestionThreshold = 80
	lowDensityThreshold            = 0.5
	highDensityThreshold           = 3.0

	// maxSuggestions bounds the suggestion list for requests with very large
	// keyword sets.
	maxSuggestions = 50
)

// Synthesize evaluates the suggestion rules in fixed order over the score
// outputs. Keyword rules run in the order keywords were supplied (first
// occurrence of duplicates), so the output is stable across calls. Nothing
// is deduplicated or removed; the list is append-only, capped at
// maxSuggestions entries.
func Synthesize(seoScore, readabilityScore int, density map[string]float64, keywords []string) []string {
	suggestions := []string{}

	if seoScore < seoSuggestionThreshold {
		suggestions = append(suggestions, "Consider adding more target keywords naturally")
	}
	if readabilityScore < readabilitySuggestionThreshold {
		suggestions = append(suggestions, "Try breaking down long sentences and paragraphs")
	}

	seen := make(map[string]bool, len(keywords))
	for _, keyword := range keywords {
		if len(suggestions) >= maxSuggestions {
			break
		}
		d, ok := density[keyword]
		if !ok || seen[keyword] {
			continue
		}
		seen[keyword] = true

		if d < lowDensityThreshold {
			suggestions = append(suggestions, fmt.Sprintf("Increase usage of keyword %q", keyword))
		} else if d > highDensityThreshold {
			suggestions = append(suggestions, fmt.Sprintf("Reduce usage of keyword %q to avoid keyword stuffing", keyword))
		}
	}

	return suggestions
}
