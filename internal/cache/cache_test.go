package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyforge/optimizer/internal/domain"
	"github.com/copyforge/optimizer/internal/logger"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ResultCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewResultCache(client, ttl, logger.NewNop()), mr
}

func sampleRequest() *domain.OptimizationRequest {
	return &domain.OptimizationRequest{
		Content:        "some content to optimize",
		TargetKeywords: []string{"golang", "testing"},
		ContentType:    domain.ContentTypeBlog,
		Tone:           domain.ToneProfessional,
	}
}

func sampleResult() *domain.OptimizationResult {
	return &domain.OptimizationResult{
		OptimizedContent: "optimized content",
		Suggestions:      []string{"Consider adding more target keywords naturally"},
		SEOScore:         75,
		ReadabilityScore: 95,
		KeywordDensity:   map[string]float64{"golang": 1.25, "testing": 0},
	}
}

func TestResultCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	ctx := context.Background()
	req := sampleRequest()

	assert.Nil(t, cache.Get(ctx, req), "expected miss on empty cache")

	want := sampleResult()
	cache.Set(ctx, req, want)

	got := cache.Get(ctx, req)
	require.NotNil(t, got, "expected hit after Set")
	assert.Equal(t, want.OptimizedContent, got.OptimizedContent)
	assert.Equal(t, want.SEOScore, got.SEOScore)
	assert.Equal(t, want.ReadabilityScore, got.ReadabilityScore)
	assert.InDelta(t, 1.25, got.KeywordDensity["golang"], 0.0001)
}

func TestResultCache_KeyDiscriminates(t *testing.T) {
	base := sampleRequest()

	variants := []*domain.OptimizationRequest{
		{Content: "different", TargetKeywords: base.TargetKeywords, ContentType: base.ContentType, Tone: base.Tone},
		{Content: base.Content, TargetKeywords: []string{"golang"}, ContentType: base.ContentType, Tone: base.Tone},
		{Content: base.Content, TargetKeywords: base.TargetKeywords, ContentType: domain.ContentTypeAd, Tone: base.Tone},
		{Content: base.Content, TargetKeywords: base.TargetKeywords, ContentType: base.ContentType, Tone: domain.ToneCasual},
	}

	baseKey := Key(base)
	for _, v := range variants {
		assert.NotEqual(t, baseKey, Key(v), "expected distinct key for %+v", v)
	}

	assert.Equal(t, baseKey, Key(base), "expected stable key for identical request")
}

func TestResultCache_Expiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	req := sampleRequest()

	cache.Set(ctx, req, sampleResult())
	mr.FastForward(2 * time.Minute)

	assert.Nil(t, cache.Get(ctx, req), "expected miss after TTL")
}

func TestResultCache_NilCacheIsNoOp(t *testing.T) {
	var cache *ResultCache
	ctx := context.Background()
	req := sampleRequest()

	cache.Set(ctx, req, sampleResult())
	assert.Nil(t, cache.Get(ctx, req))
}

func TestResultCache_RedisDownDegradesToMiss(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)
	ctx := context.Background()
	req := sampleRequest()

	cache.Set(ctx, req, sampleResult())
	mr.Close()

	assert.Nil(t, cache.Get(ctx, req), "expected miss when redis is down")
}
