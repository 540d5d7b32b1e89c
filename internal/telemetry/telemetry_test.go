package telemetry_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/copyforge/optimizer/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestHandler(t *testing.T) {
	provider := getTestProvider(t)
	if provider.Handler() == nil {
		t.Error("expected non-nil metrics handler")
	}
}

func TestRecordOptimization(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordOptimization(ctx, "blog", telemetry.OptimizationOutcome{
		SEOScore:         90,
		ReadabilityScore: 100,
		SuggestionCount:  1,
	}, 250*time.Millisecond)
	provider.RecordOptimizationFailure(ctx, "social", "rewrite_unavailable")
}

func TestRecordRewrite(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordRewrite(ctx, 500*time.Millisecond, nil)
	provider.RecordRewrite(ctx, time.Second, errors.New("provider down"))
}

type stubRewriter struct {
	response string
	err      error
	calls    int
}

func (s *stubRewriter) Complete(_ context.Context, _ string, _ float64, _ int) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestInstrumentRewriter_PassesThrough(t *testing.T) {
	provider := getTestProvider(t)
	stub := &stubRewriter{response: "rewritten"}

	out, err := provider.InstrumentRewriter(stub).Complete(context.Background(), "prompt", 0.7, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "rewritten" {
		t.Errorf("expected wrapped response, got %q", out)
	}
	if stub.calls != 1 {
		t.Errorf("expected one delegated call, got %d", stub.calls)
	}
}

func TestInstrumentRewriter_CountsFailures(t *testing.T) {
	provider := getTestProvider(t)
	stub := &stubRewriter{err: errors.New("provider down")}
	wrapped := provider.InstrumentRewriter(stub)

	before := testutil.ToFloat64(provider.Metrics.RewriteFailures)

	if _, err := wrapped.Complete(context.Background(), "prompt", 0.7, 1000); err == nil {
		t.Fatal("expected delegated error")
	}

	if got := testutil.ToFloat64(provider.Metrics.RewriteFailures) - before; got != 1 {
		t.Errorf("expected one recorded failure, got %v", got)
	}
}

func TestRecordCacheAndCredits(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordCacheLookup(ctx, true)
	provider.RecordCacheLookup(ctx, false)
	provider.RecordCreditDeduction(ctx)
	provider.RecordCreditDenial(ctx)
	provider.RecordBatchSize(ctx, 5)
}
