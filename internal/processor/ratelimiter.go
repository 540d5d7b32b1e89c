package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/copyforge/optimizer/internal/logger"
)

const defaultRPS = 10

// RateLimiter throttles calls to the rewrite provider across all workers.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewRateLimiter creates a new rate limiter.
// rps: requests per second
// burst: maximum burst size
func NewRateLimiter(rps, burst int, log logger.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = rps
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  log,
	}
}

// Wait blocks until the rate limit allows the operation or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn("Rate limiter wait failed", logger.Error(err))
		return err
	}
	return nil
}

// Allow reports whether an operation may proceed without waiting.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
