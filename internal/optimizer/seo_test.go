package optimizer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/copyforge/optimizer/internal/logger"
)

// repeatWords builds content of n copies of word separated by single spaces.
func repeatWords(word string, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = word
	}
	return strings.Join(words, " ")
}

// distinctWords builds content of n distinct filler tokens.
func distinctWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("filler%d", i)
	}
	return words
}

func TestSEOScorer_MissingKeyword(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	// 300 words, keyword absent: only the missing-keyword penalty applies.
	content := repeatWords("word", 300)
	score := scorer.Score(content, []string{"golang"})

	if score != 90 {
		t.Errorf("expected score 90, got %d", score)
	}
}

func TestSEOScorer_KeywordStuffing(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	// 350 words, keyword appears 20 times: density 20/350 > 5% triggers the
	// stuffing penalty, word count >= 300 avoids the length penalty.
	words := distinctWords(330)
	for i := 0; i < 20; i++ {
		words = append(words, "gopher")
	}
	content := strings.Join(words, " ")

	score := scorer.Score(content, []string{"gopher"})

	if score != 95 {
		t.Errorf("expected score 95, got %d", score)
	}
}

func TestSEOScorer_ShortContent(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	// Keyword present, under 300 words: only the short-content penalty.
	// Density 5/100 = 0.05 is not strictly greater than the threshold.
	words := distinctWords(95)
	for i := 0; i < 5; i++ {
		words = append(words, "gopher")
	}
	score := scorer.Score(strings.Join(words, " "), []string{"gopher"})

	if score != 90 {
		t.Errorf("expected score 90, got %d", score)
	}
}

func TestSEOScorer_LongContent(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	content := repeatWords("gopher", 2100)
	// Keyword present but density 1.0 > 5%: stuffing plus length penalty.
	score := scorer.Score(content, []string{"gopher"})

	if score != 90 {
		t.Errorf("expected score 90 (stuffing + long content), got %d", score)
	}
}

func TestSEOScorer_SubstringMatching(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	// Matching is literal substring: "cat" inside "category" counts.
	words := distinctWords(299)
	words = append(words, "category")
	score := scorer.Score(strings.Join(words, " "), []string{"cat"})

	if score != 100 {
		t.Errorf("expected score 100 with substring match, got %d", score)
	}
}

func TestSEOScorer_ClampsToZero(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	keywords := make([]string, 15)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("absent%d", i)
	}

	// 15 missing keywords plus the short-content penalty would go negative.
	score := scorer.Score("tiny content", keywords)

	if score != 0 {
		t.Errorf("expected clamped score 0, got %d", score)
	}
}

func TestSEOScorer_EmptyContent(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	score := scorer.Score("", []string{"golang"})

	// Missing keyword (-10) and short content (-10).
	if score != 80 {
		t.Errorf("expected score 80 for empty content, got %d", score)
	}
}

func TestSEOScorer_NoKeywords(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	score := scorer.Score(repeatWords("word", 500), nil)

	if score != 100 {
		t.Errorf("expected score 100 with no keywords, got %d", score)
	}
}

func TestSEOScorer_Deterministic(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	content := repeatWords("gopher word", 200)
	keywords := []string{"gopher", "absent"}

	first := scorer.Score(content, keywords)
	second := scorer.Score(content, keywords)

	if first != second {
		t.Errorf("expected identical scores, got %d and %d", first, second)
	}
}

func TestSEOScorer_AlwaysInRange(t *testing.T) {
	scorer := NewSEOScorer(logger.NewNop())

	contents := []string{"", "one", "a. b! c?", repeatWords("word", 5000)}
	keywordSets := [][]string{nil, {}, {"word"}, {"a", "b", "c", "d"}}

	for _, content := range contents {
		for _, keywords := range keywordSets {
			score := scorer.Score(content, keywords)
			if score < 0 || score > 100 {
				t.Errorf("score %d out of range for content %q keywords %v",
					score, content, keywords)
			}
		}
	}
}
