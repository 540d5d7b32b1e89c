package optimizer

import (
	"strings"

	"github.com/copyforge/optimizer/internal/logger"
)

const (
	// Score bounds
	maxScore = 100
	minScore = 0

	// SEO scoring constants
	missingKeywordPenalty    = 10
	stuffingPenalty          = 5
	stuffingDensityThreshold = 0.05 // keyword occupies more than 5% of tokens
	shortContentPenalty      = 10
	longContentPenalty       = 5
	minWordCount             = 300
	maxWordCountThreshold    = 2000
)

// SEOScorer rates keyword coverage and content length on a 0-100 scale.
type SEOScorer struct {
	logger logger.Logger
}

// NewSEOScorer creates a new SEO scorer.
func NewSEOScorer(log logger.Logger) *SEOScorer {
	return &SEOScorer{logger: log}
}

// Score calculates the SEO score for the given content and target keywords.
// Keyword matching is case-insensitive literal substring matching, so a
// keyword that is a substring of another word also matches ("cat" inside
// "category").
func (s *SEOScorer) Score(content string, keywords []string) int {
	score := maxScore
	contentLower := strings.ToLower(content)
	wordCount := countWords(content)

	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		count := strings.Count(contentLower, strings.ToLower(keyword))
		if count == 0 {
			score -= missingKeywordPenalty
		}

		density := float64(count) / float64(orOne(wordCount))
		if density > stuffingDensityThreshold {
			score -= stuffingPenalty
		}
	}

	if wordCount < minWordCount {
		score -= shortContentPenalty
	}
	if wordCount > maxWordCountThreshold {
		score -= longContentPenalty
	}

	final := clampScore(score)

	s.logger.Debug("SEO score calculated",
		logger.Int("score", final),
		logger.Int("word_count", wordCount),
		logger.Int("keyword_count", len(keywords)),
	)

	return final
}
