package api

import (
	"errors"
	"net/http"

	"github.com/copyforge/optimizer/internal/database"
	"github.com/copyforge/optimizer/internal/domain"
	"github.com/copyforge/optimizer/internal/processor"
	"github.com/copyforge/optimizer/internal/rewrite"
)

// OptimizeResponse is the response for a single optimization.
type OptimizeResponse struct {
	Result           *domain.OptimizationResult `json:"result"`
	CreditsRemaining int                        `json:"credits_remaining"`
	Cached           bool                       `json:"cached"`
}

// BatchOptimizeRequest is the request body for batch optimization.
type BatchOptimizeRequest struct {
	Requests []*domain.OptimizationRequest `json:"requests" binding:"required,min=1"`
}

// BatchItemResponse is the outcome for one item of a batch.
type BatchItemResponse struct {
	Index  int                        `json:"index"`
	Result *domain.OptimizationResult `json:"result,omitempty"`
	Error  string                     `json:"error,omitempty"`
}

// BatchOptimizeResponse is the response for a batch optimization.
type BatchOptimizeResponse struct {
	Results          []BatchItemResponse `json:"results"`
	Total            int                 `json:"total"`
	Success          int                 `json:"success"`
	Failed           int                 `json:"failed"`
	CreditsRemaining int                 `json:"credits_remaining"`
}

// AnalyzeRequest is the request body for scoring without a rewrite.
type AnalyzeRequest struct {
	Content  string   `json:"content" binding:"required"`
	Keywords []string `json:"keywords"`
}

// GenerateResponse is the response for draft generation.
type GenerateResponse struct {
	Content          string `json:"content"`
	CreditsRemaining int    `json:"credits_remaining"`
}

// HistoryResponse is the response for the history listing.
type HistoryResponse struct {
	Records []domain.OptimizationRecord `json:"records"`
	Total   int                         `json:"total"`
}

// CreditsResponse reports the caller's current balance.
type CreditsResponse struct {
	Credits int `json:"credits"`
}

// toBatchItemResponses converts processor outcomes to API responses.
func toBatchItemResponses(items []processor.BatchItem) []BatchItemResponse {
	responses := make([]BatchItemResponse, len(items))
	for i, item := range items {
		responses[i] = BatchItemResponse{
			Index:  item.Index,
			Result: item.Result,
		}
		if item.Error != nil {
			responses[i].Error = item.Error.Error()
		}
	}
	return responses
}

// statusForError maps pipeline errors to HTTP status codes. Unknown errors
// are internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, database.ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, database.ErrAccountNotFound):
		return http.StatusPaymentRequired
	case errors.Is(err, rewrite.ErrUnavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// errorCodeForError labels failures for metrics.
func errorCodeForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, database.ErrInsufficientCredits):
		return "insufficient_credits"
	case errors.Is(err, rewrite.ErrUnavailable):
		return "rewrite_unavailable"
	default:
		return "internal"
	}
}
