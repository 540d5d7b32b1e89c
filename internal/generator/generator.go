// Package generator produces first-draft content from a topic brief using the
// same rewrite provider the optimizer uses.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/copyforge/optimizer/internal/domain"
	"github.com/copyforge/optimizer/internal/logger"
	"github.com/copyforge/optimizer/internal/optimizer"
)

const generationTemperature = 0.7

// Token budgets per requested draft length.
const (
	shortMaxTokens  = 250
	mediumMaxTokens = 500
	longMaxTokens   = 1000
)

// Generator turns a generation brief into a draft via the rewrite provider.
type Generator struct {
	rewriter optimizer.Rewriter
	logger   logger.Logger
}

// New creates a draft generator.
func New(log logger.Logger, rewriter optimizer.Rewriter) *Generator {
	return &Generator{rewriter: rewriter, logger: log}
}

// Generate validates the brief, renders the prompt, and asks the provider for
// a draft. Provider failures propagate with rewrite.ErrUnavailable in the
// chain, same as the optimize path.
func (g *Generator) Generate(ctx context.Context, req *domain.GenerationRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	start := time.Now()

	draft, err := g.rewriter.Complete(ctx, BuildPrompt(req), generationTemperature, maxTokensFor(req.Length))
	if err != nil {
		return "", fmt.Errorf("generate draft: %w", err)
	}

	g.logger.Info("Draft generated",
		logger.String("content_type", string(req.ContentType)),
		logger.String("length", string(req.Length)),
		logger.Int("chars", len(draft)),
		logger.Int64("processing_time_ms", time.Since(start).Milliseconds()),
	)

	return draft, nil
}

// BuildPrompt renders the generation instruction for a brief. Pure function.
func BuildPrompt(req *domain.GenerationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %s about %q. ", req.ContentType, req.Topic)
	fmt.Fprintf(&b, "Use a %s tone. ", req.Tone)
	fmt.Fprintf(&b, "The content should be %s in length. ", req.Length)

	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Include the following keywords: %s. ", strings.Join(req.Keywords, ", "))
	}
	if req.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "Additional requirements: %s", req.AdditionalInstructions)
	}

	return b.String()
}

// maxTokensFor maps a draft length to its provider token budget.
func maxTokensFor(length domain.Length) int {
	switch length {
	case domain.LengthShort:
		return shortMaxTokens
	case domain.LengthMedium:
		return mediumMaxTokens
	default:
		return longMaxTokens
	}
}
