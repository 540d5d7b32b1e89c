// Package api exposes the optimizer over HTTP: optimization, analysis, draft
// generation, history, stats, and credits endpoints.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/copyforge/optimizer/internal/cache"
	"github.com/copyforge/optimizer/internal/config"
	"github.com/copyforge/optimizer/internal/database"
	"github.com/copyforge/optimizer/internal/domain"
	"github.com/copyforge/optimizer/internal/generator"
	"github.com/copyforge/optimizer/internal/logger"
	"github.com/copyforge/optimizer/internal/optimizer"
	"github.com/copyforge/optimizer/internal/processor"
	"github.com/copyforge/optimizer/internal/telemetry"
	"github.com/copyforge/optimizer/internal/web"
)

// initialCredits is the balance granted to a user on first use.
const initialCredits = 10

// maxHistoryLimit caps the history page size regardless of query parameter.
const maxHistoryLimit = 100

// HistoryStore is the persistence contract for optimization records.
type HistoryStore interface {
	Create(ctx context.Context, record *domain.OptimizationRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.OptimizationRecord, error)
	GetStats(ctx context.Context, userID string) (*database.OptimizationStats, error)
}

// CreditStore is the persistence contract for credit balances.
type CreditStore interface {
	EnsureAccount(ctx context.Context, userID string, initialCredits int) error
	Balance(ctx context.Context, userID string) (int, error)
	Deduct(ctx context.Context, userID string, amount int) (int, error)
}

// Handler handles HTTP requests for the optimizer API.
type Handler struct {
	optimizer   *optimizer.Optimizer
	generator   *generator.Generator
	batch       *processor.BatchProcessor
	history     HistoryStore
	credits     CreditStore
	resultCache *cache.ResultCache
	telemetry   *telemetry.Provider
	cfg         *config.Config
	logger      logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	opt *optimizer.Optimizer,
	gen *generator.Generator,
	batch *processor.BatchProcessor,
	history HistoryStore,
	credits CreditStore,
	resultCache *cache.ResultCache,
	tel *telemetry.Provider,
	cfg *config.Config,
	log logger.Logger,
) *Handler {
	return &Handler{
		optimizer:   opt,
		generator:   gen,
		batch:       batch,
		history:     history,
		credits:     credits,
		resultCache: resultCache,
		telemetry:   tel,
		cfg:         cfg,
		logger:      log,
	}
}

// Optimize handles POST /api/v1/optimize.
func (h *Handler) Optimize(c *gin.Context) {
	userID := web.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req domain.OptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid optimization request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if !h.requireCredits(c, userID, 1) {
		return
	}

	start := time.Now()

	cached := false
	result := h.resultCache.Get(ctx, &req)
	if result != nil {
		cached = true
	} else {
		var err error
		result, err = h.optimizer.Optimize(ctx, &req)
		if err != nil {
			h.telemetry.RecordOptimizationFailure(ctx, string(req.ContentType), errorCodeForError(err))
			h.logger.Error("Optimization failed",
				logger.String("user_id", userID),
				logger.Error(err),
			)
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		h.resultCache.Set(ctx, &req, result)
	}
	h.telemetry.RecordCacheLookup(ctx, cached)

	remaining, err := h.credits.Deduct(ctx, userID, 1)
	if err != nil {
		h.respondCreditError(c, userID, err)
		return
	}
	h.telemetry.RecordCreditDeduction(ctx)

	elapsed := time.Since(start)
	h.recordHistory(ctx, userID, &req, result, elapsed)
	h.telemetry.RecordOptimization(ctx, string(req.ContentType), telemetry.OptimizationOutcome{
		SEOScore:         result.SEOScore,
		ReadabilityScore: result.ReadabilityScore,
		SuggestionCount:  len(result.Suggestions),
	}, elapsed)

	c.JSON(http.StatusOK, OptimizeResponse{
		Result:           result,
		CreditsRemaining: remaining,
		Cached:           cached,
	})
}

// OptimizeBatch handles POST /api/v1/optimize/batch.
func (h *Handler) OptimizeBatch(c *gin.Context) {
	userID := web.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req BatchOptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid batch request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Requests) > h.cfg.Service.BatchMaxItems {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "batch size exceeds limit",
			"limit": h.cfg.Service.BatchMaxItems,
		})
		return
	}

	ctx := c.Request.Context()
	if !h.requireCredits(c, userID, len(req.Requests)) {
		return
	}

	h.telemetry.RecordBatchSize(ctx, len(req.Requests))

	start := time.Now()
	items := h.batch.Process(ctx, req.Requests)
	elapsed := time.Since(start)

	success := 0
	for _, item := range items {
		if item.Error == nil {
			success++
		}
	}

	remaining, err := h.credits.Balance(ctx, userID)
	if success > 0 {
		remaining, err = h.credits.Deduct(ctx, userID, success)
	}
	if err != nil {
		h.respondCreditError(c, userID, err)
		return
	}

	perItem := elapsed / time.Duration(len(items))
	for i, item := range items {
		if item.Error != nil {
			continue
		}
		h.recordHistory(ctx, userID, req.Requests[i], item.Result, perItem)
	}

	c.JSON(http.StatusOK, BatchOptimizeResponse{
		Results:          toBatchItemResponses(items),
		Total:            len(items),
		Success:          success,
		Failed:           len(items) - success,
		CreditsRemaining: remaining,
	})
}

// Analyze handles POST /api/v1/analyze. Scoring only: no rewrite call and no
// credit deduction.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.optimizer.Analyze(req.Content, req.Keywords))
}

// Generate handles POST /api/v1/generate.
func (h *Handler) Generate(c *gin.Context) {
	userID := web.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if !h.requireCredits(c, userID, 1) {
		return
	}

	content, err := h.generator.Generate(ctx, &req)
	if err != nil {
		h.logger.Error("Generation failed",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	remaining, err := h.credits.Deduct(ctx, userID, 1)
	if err != nil {
		h.respondCreditError(c, userID, err)
		return
	}
	h.telemetry.RecordCreditDeduction(ctx)

	c.JSON(http.StatusOK, GenerateResponse{
		Content:          content,
		CreditsRemaining: remaining,
	})
}

// History handles GET /api/v1/history.
func (h *Handler) History(c *gin.Context) {
	userID := web.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limit := h.cfg.Service.HistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := h.history.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("History lookup failed",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{Records: records, Total: len(records)})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(c *gin.Context) {
	userID := web.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	stats, err := h.history.GetStats(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Stats lookup failed",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Credits handles GET /api/v1/credits.
func (h *Handler) Credits(c *gin.Context) {
	userID := web.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	ctx := c.Request.Context()
	if err := h.credits.EnsureAccount(ctx, userID, initialCredits); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load credits"})
		return
	}

	balance, err := h.credits.Balance(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load credits"})
		return
	}

	c.JSON(http.StatusOK, CreditsResponse{Credits: balance})
}

// requireCredits provisions the account on first use and verifies the balance
// covers the operation. Writes the error response and returns false when it
// does not.
func (h *Handler) requireCredits(c *gin.Context, userID string, amount int) bool {
	ctx := c.Request.Context()

	if err := h.credits.EnsureAccount(ctx, userID, initialCredits); err != nil {
		h.logger.Error("Credit account provisioning failed",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "credit check failed"})
		return false
	}

	balance, err := h.credits.Balance(ctx, userID)
	if err != nil {
		h.logger.Error("Credit balance check failed",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "credit check failed"})
		return false
	}

	if balance < amount {
		h.telemetry.RecordCreditDenial(ctx)
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":    "insufficient credits",
			"credits":  balance,
			"required": amount,
		})
		return false
	}

	return true
}

// respondCreditError maps deduction failures to responses.
func (h *Handler) respondCreditError(c *gin.Context, userID string, err error) {
	if errors.Is(err, database.ErrInsufficientCredits) || errors.Is(err, database.ErrAccountNotFound) {
		h.telemetry.RecordCreditDenial(c.Request.Context())
	}
	h.logger.Error("Credit deduction failed",
		logger.String("user_id", userID),
		logger.Error(err),
	)
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

// recordHistory persists an optimization record. History failures are logged
// and never fail the request.
func (h *Handler) recordHistory(
	ctx context.Context,
	userID string,
	req *domain.OptimizationRequest,
	result *domain.OptimizationResult,
	elapsed time.Duration,
) {
	keywords := req.TargetKeywords
	if keywords == nil {
		keywords = []string{}
	}

	record := &domain.OptimizationRecord{
		UserID:           userID,
		ContentType:      req.ContentType,
		Tone:             req.Tone,
		Keywords:         keywords,
		SEOScore:         result.SEOScore,
		ReadabilityScore: result.ReadabilityScore,
		SuggestionCount:  len(result.Suggestions),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}

	if err := h.history.Create(ctx, record); err != nil {
		h.logger.Error("Failed to record optimization history",
			logger.String("user_id", userID),
			logger.Error(err),
		)
	}
}
