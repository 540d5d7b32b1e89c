package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/copyforge/optimizer/internal/domain"
	"github.com/copyforge/optimizer/internal/logger"
)

// stubOptimizer echoes the request content into the result, failing for
// content that matches failOn.
type stubOptimizer struct {
	failOn string
	err    error

	mu          sync.Mutex
	inFlight    int32
	maxInFlight int32
	calls       int
}

func (s *stubOptimizer) Optimize(_ context.Context, req *domain.OptimizationRequest) (*domain.OptimizationResult, error) {
	current := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)

	s.mu.Lock()
	s.calls++
	if current > s.maxInFlight {
		s.maxInFlight = current
	}
	s.mu.Unlock()

	if s.failOn != "" && req.Content == s.failOn {
		return nil, s.err
	}
	return &domain.OptimizationResult{OptimizedContent: "optimized: " + req.Content}, nil
}

func batchRequests(n int) []*domain.OptimizationRequest {
	reqs := make([]*domain.OptimizationRequest, n)
	for i := range reqs {
		reqs[i] = &domain.OptimizationRequest{
			Content:     fmt.Sprintf("item %d", i),
			ContentType: domain.ContentTypeBlog,
			Tone:        domain.ToneCasual,
		}
	}
	return reqs
}

func TestBatchProcessor_PreservesOrder(t *testing.T) {
	stub := &stubOptimizer{}
	proc := NewBatchProcessor(stub, nil, 4, logger.NewNop())

	items := proc.Process(context.Background(), batchRequests(20))

	if len(items) != 20 {
		t.Fatalf("expected 20 items, got %d", len(items))
	}
	for i, item := range items {
		if item.Index != i {
			t.Errorf("expected index %d at position %d, got %d", i, i, item.Index)
		}
		want := fmt.Sprintf("optimized: item %d", i)
		if item.Result == nil || item.Result.OptimizedContent != want {
			t.Errorf("unexpected result at %d: %+v", i, item.Result)
		}
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	wantErr := errors.New("provider down")
	stub := &stubOptimizer{failOn: "item 3", err: wantErr}
	proc := NewBatchProcessor(stub, nil, 2, logger.NewNop())

	items := proc.Process(context.Background(), batchRequests(6))

	for i, item := range items {
		if i == 3 {
			if !errors.Is(item.Error, wantErr) {
				t.Errorf("expected failure at index 3, got %v", item.Error)
			}
			continue
		}
		if item.Error != nil {
			t.Errorf("unexpected error at index %d: %v", i, item.Error)
		}
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	proc := NewBatchProcessor(&stubOptimizer{}, nil, 2, logger.NewNop())

	items := proc.Process(context.Background(), nil)

	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", items)
	}
}

func TestBatchProcessor_ConcurrencyBound(t *testing.T) {
	stub := &stubOptimizer{}
	proc := NewBatchProcessor(stub, nil, 3, logger.NewNop())

	proc.Process(context.Background(), batchRequests(30))

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.calls != 30 {
		t.Errorf("expected 30 calls, got %d", stub.calls)
	}
	if stub.maxInFlight > 3 {
		t.Errorf("expected at most 3 concurrent calls, saw %d", stub.maxInFlight)
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	stub := &stubOptimizer{}
	proc := NewBatchProcessor(stub, nil, 2, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := proc.Process(ctx, batchRequests(4))

	for _, item := range items {
		if !errors.Is(item.Error, context.Canceled) {
			t.Errorf("expected context.Canceled at index %d, got %v", item.Index, item.Error)
		}
	}
	if stub.calls != 0 {
		t.Errorf("expected no optimize calls after cancel, got %d", stub.calls)
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	limiter := NewRateLimiter(0, 0, logger.NewNop())

	if !limiter.Allow() {
		t.Error("expected first call to be allowed")
	}
	if err := limiter.Wait(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRateLimiter_CancelledContext(t *testing.T) {
	limiter := NewRateLimiter(1, 1, logger.NewNop())
	limiter.Allow() // drain the burst token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}
