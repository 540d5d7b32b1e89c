// Package processor runs batch optimizations through a bounded worker pool
// with shared rate limiting toward the rewrite provider.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/copyforge/optimizer/internal/domain"
	"github.com/copyforge/optimizer/internal/logger"
)

const defaultConcurrency = 5

// Optimizer is the single-item pipeline the batch processor fans out over.
type Optimizer interface {
	Optimize(ctx context.Context, req *domain.OptimizationRequest) (*domain.OptimizationResult, error)
}

// BatchItem holds the outcome for one request in a batch. Index refers to the
// request's position in the submitted slice.
type BatchItem struct {
	Index  int                        `json:"index"`
	Result *domain.OptimizationResult `json:"result,omitempty"`
	Error  error                      `json:"-"`
}

// BatchProcessor processes multiple optimization requests in parallel using a
// worker pool.
type BatchProcessor struct {
	optimizer   Optimizer
	limiter     *RateLimiter
	concurrency int
	logger      logger.Logger
}

// NewBatchProcessor creates a new batch processor. The limiter is shared
// across workers; pass nil to disable throttling.
func NewBatchProcessor(opt Optimizer, limiter *RateLimiter, concurrency int, log logger.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &BatchProcessor{
		optimizer:   opt,
		limiter:     limiter,
		concurrency: concurrency,
		logger:      log,
	}
}

// Process runs all requests through the worker pool and returns one item per
// request, in submission order. Individual failures are carried per item and
// never abort the rest of the batch.
func (b *BatchProcessor) Process(ctx context.Context, requests []*domain.OptimizationRequest) []BatchItem {
	if len(requests) == 0 {
		return []BatchItem{}
	}

	b.logger.Info("Starting batch optimization",
		logger.Int("batch_size", len(requests)),
		logger.Int("concurrency", b.concurrency),
	)

	start := time.Now()

	type job struct {
		index int
		req   *domain.OptimizationRequest
	}

	jobs := make(chan job, len(requests))
	items := make([]BatchItem, len(requests))

	var wg sync.WaitGroup
	for w := 0; w < b.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				items[j.index] = b.processOne(ctx, j.index, j.req)
			}
		}()
	}

	for i, req := range requests {
		jobs <- job{index: i, req: req}
	}
	close(jobs)
	wg.Wait()

	successCount := 0
	for _, item := range items {
		if item.Error == nil {
			successCount++
		}
	}

	b.logger.Info("Batch optimization complete",
		logger.Int("total", len(requests)),
		logger.Int("success", successCount),
		logger.Int("errors", len(requests)-successCount),
		logger.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return items
}

func (b *BatchProcessor) processOne(ctx context.Context, index int, req *domain.OptimizationRequest) BatchItem {
	if ctx.Err() != nil {
		return BatchItem{Index: index, Error: ctx.Err()}
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return BatchItem{Index: index, Error: err}
		}
	}

	result, err := b.optimizer.Optimize(ctx, req)
	if err != nil {
		b.logger.Warn("Batch item failed",
			logger.Int("index", index),
			logger.Error(err),
		)
		return BatchItem{Index: index, Error: err}
	}

	return BatchItem{Index: index, Result: result}
}
