package optimizer

import (
	"regexp"
	"strings"

	"github.com/copyforge/optimizer/internal/logger"
)

const (
	// Readability scoring constants
	longSentenceThreshold     = 20
	veryLongSentenceThreshold = 25
	longSentencePenalty       = 10
	longParagraphThreshold    = 100
	longParagraphPenalty      = 10
)

// sentenceDelimiters splits text into sentences on runs of terminal
// punctuation.
var sentenceDelimiters = regexp.MustCompile(`[.!?]+`)

// ReadabilityScorer rates sentence and paragraph length on a 0-100 scale.
type ReadabilityScorer struct {
	logger logger.Logger
}

// NewReadabilityScorer creates a new readability scorer.
func NewReadabilityScorer(log logger.Logger) *ReadabilityScorer {
	return &ReadabilityScorer{logger: log}
}

// Score calculates the readability score for the given content. Content with
// no terminal punctuation or no blank lines is scored as a single sentence or
// paragraph rather than dividing by zero.
func (r *ReadabilityScorer) Score(content string) int {
	score := maxScore

	wordCount := countWords(content)
	sentenceCount := countFragments(sentenceDelimiters.Split(content, -1))
	paragraphCount := countFragments(strings.Split(content, "\n\n"))

	avgWordsPerSentence := float64(wordCount) / float64(orOne(sentenceCount))
	if avgWordsPerSentence > longSentenceThreshold {
		score -= longSentencePenalty
	}
	if avgWordsPerSentence > veryLongSentenceThreshold {
		score -= longSentencePenalty
	}

	avgWordsPerParagraph := float64(wordCount) / float64(orOne(paragraphCount))
	if avgWordsPerParagraph > longParagraphThreshold {
		score -= longParagraphPenalty
	}

	final := clampScore(score)

	r.logger.Debug("Readability score calculated",
		logger.Int("score", final),
		logger.Int("sentences", sentenceCount),
		logger.Int("paragraphs", paragraphCount),
	)

	return final
}

// countFragments counts the non-blank fragments of a split.
func countFragments(fragments []string) int {
	count := 0
	for _, f := range fragments {
		if strings.TrimSpace(f) != "" {
			count++
		}
	}
	return count
}
