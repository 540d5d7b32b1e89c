// Package domain defines the core types for content optimization.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRequest indicates a malformed or incomplete optimization request.
// It is detected before any external call and is not retryable until the
// input is fixed.
var ErrInvalidRequest = errors.New("invalid optimization request")

// ContentType identifies the kind of content being optimized.
type ContentType string

// Supported content types.
const (
	ContentTypeBlog   ContentType = "blog"
	ContentTypeSocial ContentType = "social"
	ContentTypeAd     ContentType = "ad"
)

// Valid reports whether the content type is one of the supported values.
func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeBlog, ContentTypeSocial, ContentTypeAd:
		return true
	}
	return false
}

// Tone identifies the desired writing tone.
type Tone string

// Supported tones.
const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFriendly     Tone = "friendly"
)

// Valid reports whether the tone is one of the supported values.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneFriendly:
		return true
	}
	return false
}

// OptimizationRequest is the immutable input to a single optimization call.
type OptimizationRequest struct {
	Content        string      `json:"content"`
	TargetKeywords []string    `json:"target_keywords"`
	ContentType    ContentType `json:"content_type"`
	Tone           Tone        `json:"tone"`
}

// Validate checks required fields. An empty keyword list is legal; an empty
// keyword string inside the list is not.
func (r *OptimizationRequest) Validate() error {
	if r.Content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidRequest)
	}
	if !r.ContentType.Valid() {
		return fmt.Errorf("%w: unknown content type %q", ErrInvalidRequest, r.ContentType)
	}
	if !r.Tone.Valid() {
		return fmt.Errorf("%w: unknown tone %q", ErrInvalidRequest, r.Tone)
	}
	for _, kw := range r.TargetKeywords {
		if kw == "" {
			return fmt.Errorf("%w: empty keyword in target list", ErrInvalidRequest)
		}
	}
	return nil
}

// OptimizationResult is the value object returned for a single request.
// Scores are integers clamped to [0, 100]; keyword density values are
// percentages rounded to two decimals.
type OptimizationResult struct {
	OptimizedContent string             `json:"optimized_content"`
	Suggestions      []string           `json:"suggestions"`
	SEOScore         int                `json:"seo_score"`
	ReadabilityScore int                `json:"readability_score"`
	KeywordDensity   map[string]float64 `json:"keyword_density"`
}

// AnalysisResult holds the deterministic scoring outputs without a rewrite
// pass. Used by editor-side re-scoring.
type AnalysisResult struct {
	Suggestions      []string           `json:"suggestions"`
	SEOScore         int                `json:"seo_score"`
	ReadabilityScore int                `json:"readability_score"`
	KeywordDensity   map[string]float64 `json:"keyword_density"`
}

// OptimizationRecord is the persisted trace of a completed optimization.
type OptimizationRecord struct {
	ID               string      `db:"id"                 json:"id"`
	UserID           string      `db:"user_id"            json:"user_id"`
	ContentType      ContentType `db:"content_type"       json:"content_type"`
	Tone             Tone        `db:"tone"               json:"tone"`
	Keywords         []string    `db:"keywords"           json:"keywords"`
	SEOScore         int         `db:"seo_score"          json:"seo_score"`
	ReadabilityScore int         `db:"readability_score"  json:"readability_score"`
	SuggestionCount  int         `db:"suggestion_count"   json:"suggestion_count"`
	ProcessingTimeMs int64       `db:"processing_time_ms" json:"processing_time_ms"`
	CreatedAt        time.Time   `db:"created_at"         json:"created_at"`
}
