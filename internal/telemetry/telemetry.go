// Package telemetry provides OpenTelemetry instrumentation for the optimizer
// service. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "optimizer"

// Metrics holds all optimizer Prometheus metrics
type Metrics struct {
	// Pipeline metrics
	OptimizationsTotal  *prometheus.CounterVec
	OptimizationsFailed *prometheus.CounterVec
	ProcessingDuration  *prometheus.HistogramVec
	BatchSize           prometheus.Histogram

	// Rewrite provider metrics
	RewriteDuration prometheus.Histogram
	RewriteFailures prometheus.Counter

	// Scoring distributions
	SEOScores         prometheus.Histogram
	ReadabilityScores prometheus.Histogram
	SuggestionCount   prometheus.Histogram

	// Result cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Credit metrics
	CreditsDeducted prometheus.Counter
	CreditsDenied   prometheus.Counter

	// Content type distribution (blog vs social vs ad)
	ContentTypeTotal *prometheus.CounterVec
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initPipelineMetrics(m)
	initRewriteMetrics(m)
	initScoreMetrics(m)
	initCacheMetrics(m)
	initCreditMetrics(m)
	initContentTypeMetrics(m)
	return m
}

func initPipelineMetrics(m *Metrics) {
	m.OptimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "optimizer_optimizations_total",
		Help: "Total content optimizations completed",
	}, []string{"content_type"})

	m.OptimizationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "optimizer_optimizations_failed_total",
		Help: "Total optimizations that failed",
	}, []string{"content_type", "error_code"})

	m.ProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optimizer_processing_duration_seconds",
		Help:    "Time to optimize a single piece of content",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	}, []string{"content_type"})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_batch_size",
		Help:    "Number of items per batch request",
		Buckets: []float64{1, 2, 5, 10, 15, 20},
	})
}

func initRewriteMetrics(m *Metrics) {
	m.RewriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_rewrite_duration_seconds",
		Help:    "Time spent in the external rewrite call",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	})

	m.RewriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "optimizer_rewrite_failures_total",
		Help: "Total rewrite provider failures",
	})
}

func initScoreMetrics(m *Metrics) {
	m.SEOScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_seo_score",
		Help:    "Distribution of SEO scores",
		Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	m.ReadabilityScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_readability_score",
		Help:    "Distribution of readability scores",
		Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	m.SuggestionCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_suggestion_count",
		Help:    "Number of suggestions per optimization",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50},
	})
}

func initCacheMetrics(m *Metrics) {
	m.CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "optimizer_result_cache_hits_total",
		Help: "Total optimization requests served from the result cache",
	})

	m.CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "optimizer_result_cache_misses_total",
		Help: "Total optimization requests not found in the result cache",
	})
}

func initCreditMetrics(m *Metrics) {
	m.CreditsDeducted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "optimizer_credits_deducted_total",
		Help: "Total credits deducted for completed operations",
	})

	m.CreditsDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "optimizer_credits_denied_total",
		Help: "Total requests rejected for insufficient credits",
	})
}

func initContentTypeMetrics(m *Metrics) {
	m.ContentTypeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "optimizer_content_type_total",
		Help: "Total optimizations by content type (blog, social, ad)",
	}, []string{"content_type"})
}

// RecordOptimization records metrics for a single completed optimization
func (p *Provider) RecordOptimization(ctx context.Context, contentType string, result OptimizationOutcome, duration time.Duration) {
	p.Metrics.OptimizationsTotal.WithLabelValues(contentType).Inc()
	p.Metrics.ContentTypeTotal.WithLabelValues(contentType).Inc()
	p.Metrics.ProcessingDuration.WithLabelValues(contentType).Observe(duration.Seconds())
	p.Metrics.SEOScores.Observe(float64(result.SEOScore))
	p.Metrics.ReadabilityScores.Observe(float64(result.ReadabilityScore))
	p.Metrics.SuggestionCount.Observe(float64(result.SuggestionCount))
}

// OptimizationOutcome carries the scoring outputs recorded per optimization.
type OptimizationOutcome struct {
	SEOScore         int
	ReadabilityScore int
	SuggestionCount  int
}

// RecordOptimizationFailure records a failed optimization with its error code
func (p *Provider) RecordOptimizationFailure(ctx context.Context, contentType, errorCode string) {
	p.Metrics.OptimizationsFailed.WithLabelValues(contentType, errorCode).Inc()
}

// RecordRewrite records the duration of a rewrite provider call
func (p *Provider) RecordRewrite(ctx context.Context, duration time.Duration, err error) {
	p.Metrics.RewriteDuration.Observe(duration.Seconds())
	if err != nil {
		p.Metrics.RewriteFailures.Inc()
	}
}

// RecordCacheLookup records a result cache hit or miss
func (p *Provider) RecordCacheLookup(ctx context.Context, hit bool) {
	if hit {
		p.Metrics.CacheHits.Inc()
	} else {
		p.Metrics.CacheMisses.Inc()
	}
}

// RecordCreditDeduction records a successful credit deduction
func (p *Provider) RecordCreditDeduction(ctx context.Context) {
	p.Metrics.CreditsDeducted.Inc()
}

// RecordCreditDenial records a request rejected for insufficient credits
func (p *Provider) RecordCreditDenial(ctx context.Context) {
	p.Metrics.CreditsDenied.Inc()
}

// RecordBatchSize records the number of items in a batch request
func (p *Provider) RecordBatchSize(ctx context.Context, size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// Rewriter matches the completion collaborator the optimizer and generator
// depend on, declared here so instrumentation stays decoupled from them.
type Rewriter interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// InstrumentRewriter wraps a rewriter so every completion call feeds the
// rewrite duration histogram and failure counter.
func (p *Provider) InstrumentRewriter(next Rewriter) Rewriter {
	return &instrumentedRewriter{next: next, provider: p}
}

type instrumentedRewriter struct {
	next     Rewriter
	provider *Provider
}

func (r *instrumentedRewriter) Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	start := time.Now()
	out, err := r.next.Complete(ctx, prompt, temperature, maxTokens)
	r.provider.RecordRewrite(ctx, time.Since(start), err)
	return out, err
}
