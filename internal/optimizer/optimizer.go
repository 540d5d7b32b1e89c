// Package optimizer implements the content-optimization engine: an external
// rewrite pass followed by deterministic SEO, readability, and keyword
// density scoring with synthesized suggestions.
package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/copyforge/optimizer/internal/domain"
	"github.com/copyforge/optimizer/internal/logger"
)

// Fixed sampling parameters for the rewrite pass.
const (
	rewriteTemperature = 0.7
	rewriteMaxTokens   = 1000
)

// Rewriter is the outbound text-rewrite collaborator. Any chat-completion
// provider satisfies this contract.
type Rewriter interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// Optimizer orchestrates the rewrite pass and the three analyzers.
type Optimizer struct {
	rewriter    Rewriter
	seo         *SEOScorer
	readability *ReadabilityScorer
	logger      logger.Logger
}

// New creates an optimizer with the given rewrite collaborator. The rewriter
// is injected so callers can substitute test doubles.
func New(log logger.Logger, rewriter Rewriter) *Optimizer {
	return &Optimizer{
		rewriter:    rewriter,
		seo:         NewSEOScorer(log),
		readability: NewReadabilityScorer(log),
		logger:      log,
	}
}

// Optimize runs the full pipeline: validate, build the prompt, rewrite,
// score, synthesize suggestions. A rewrite failure is propagated to the
// caller (wrapping rewrite.ErrUnavailable) rather than silently scoring the
// unmodified input; the caller owns retry policy. Scoring is total and never
// fails once rewritten text exists.
func (o *Optimizer) Optimize(ctx context.Context, req *domain.OptimizationRequest) (*domain.OptimizationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	prompt := BuildPrompt(req)
	optimized, err := o.rewriter.Complete(ctx, prompt, rewriteTemperature, rewriteMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("rewrite content: %w", err)
	}
	if optimized == "" {
		// Provider accepted the request but produced nothing usable.
		optimized = req.Content
	}

	analysis := o.Analyze(optimized, req.TargetKeywords)

	o.logger.Info("Content optimized",
		logger.String("content_type", string(req.ContentType)),
		logger.Int("seo_score", analysis.SEOScore),
		logger.Int("readability_score", analysis.ReadabilityScore),
		logger.Int("suggestions", len(analysis.Suggestions)),
		logger.Int64("processing_time_ms", time.Since(start).Milliseconds()),
	)

	return &domain.OptimizationResult{
		OptimizedContent: optimized,
		Suggestions:      analysis.Suggestions,
		SEOScore:         analysis.SEOScore,
		ReadabilityScore: analysis.ReadabilityScore,
		KeywordDensity:   analysis.KeywordDensity,
	}, nil
}

// Analyze runs the three analyzers over content without a rewrite pass. The
// analyzers share no mutable state and are purely a function of their inputs,
// so repeated calls with identical arguments yield identical results.
func (o *Optimizer) Analyze(content string, keywords []string) *domain.AnalysisResult {
	seoScore := o.seo.Score(content, keywords)
	readabilityScore := o.readability.Score(content)
	density := KeywordDensity(content, keywords)

	return &domain.AnalysisResult{
		SEOScore:         seoScore,
		ReadabilityScore: readabilityScore,
		KeywordDensity:   density,
		Suggestions:      Synthesize(seoScore, readabilityScore, density, keywords),
	}
}
