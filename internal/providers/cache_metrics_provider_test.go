package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wedcms/internal/structures"
)

func TestMetricsCacheProvider_CountsHitsAndMisses(t *testing.T) {
	metrics := &recordingMetrics{}
	inner := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), &cacheTestLogger{})
	c := &MetricsCacheProvider{inner: inner, metrics: metrics}

	_, ok := c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, metrics.misses)

	c.Set("key", []byte("value"))
	_, ok = c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, 1, metrics.hits)
}

func TestMetricsCacheProvider_DelPassesThrough(t *testing.T) {
	metrics := &recordingMetrics{}
	inner := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), &cacheTestLogger{})
	c := &MetricsCacheProvider{inner: inner, metrics: metrics}

	c.Set("key", []byte("value"))
	c.Del("key")
	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestNewInstrumentedCacheProvider_DisabledSkipsWrapping(t *testing.T) {
	metrics := &recordingMetrics{}
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: false}}

	c := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, metrics)
	_, _ = c.Get("any")

	assert.IsType(t, &noopCache{}, c)
	assert.Zero(t, metrics.misses)
}

func TestNewInstrumentedCacheProvider_EnabledWraps(t *testing.T) {
	metrics := &recordingMetrics{}
	conf := cacheConfig(true, 1, 5*time.Second)

	c := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, metrics)
	assert.IsType(t, &MetricsCacheProvider{}, c)
}
