package optimizer

import (
	"fmt"
	"strings"

	"github.com/copyforge/optimizer/internal/domain"
)

// promptTemplate asks the rewrite provider for the five fixed deliverables.
// The original content is embedded verbatim, never truncated or escaped.
const promptTemplate = `Optimize the following %s content to be more engaging and effective.
Target keywords: %s
Desired tone: %s

Original content:
%s

Please provide:
1. Optimized content that maintains the core message while incorporating target keywords naturally
2. SEO improvements
3. Readability enhancements
4. Tone adjustments to match %s
5. Keyword placement suggestions`

// BuildPrompt renders the rewrite instruction for a request. Pure function;
// identical requests produce identical prompts.
func BuildPrompt(req *domain.OptimizationRequest) string {
	return fmt.Sprintf(promptTemplate,
		req.ContentType,
		strings.Join(req.TargetKeywords, ", "),
		req.Tone,
		req.Content,
		req.Tone,
	)
}
