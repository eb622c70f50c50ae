package providers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/providers"
	"campusd/internal/structures"
	"campusd/internal/testutil"
)

func cacheConfig(enabled bool, sizeMB int) *structures.Config {
	conf := &structures.Config{}
	conf.Cache.Enabled = enabled
	conf.Cache.Size = sizeMB
	conf.Cache.TTL = time.Minute
	return conf
}

func TestCacheProviderRoundTrip(t *testing.T) {
	cache := providers.NewCacheProvider(cacheConfig(true, 1), &testutil.MockLogger{})

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("dashboard", []byte(`{"users":3}`))
	val, ok := cache.Get("dashboard")
	require.True(t, ok)
	assert.Equal(t, `{"users":3}`, string(val))
}

func TestCacheProviderDisabled(t *testing.T) {
	cache := providers.NewCacheProvider(cacheConfig(false, 1), &testutil.MockLogger{})

	cache.Set("k", []byte("v"))
	_, ok := cache.Get("k")
	assert.False(t, ok, "disabled cache stores nothing")
}

func TestInstrumentedCacheCountsHitsAndMisses(t *testing.T) {
	metrics := testutil.NewMockMetrics()
	cache := providers.NewInstrumentedCacheProvider(cacheConfig(true, 1), &testutil.MockLogger{}, metrics)

	cache.Get("k")
	cache.Set("k", []byte("v"))
	cache.Get("k")

	assert.Equal(t, 1, metrics.CacheMisses)
	assert.Equal(t, 1, metrics.CacheHits)
}

func TestInstrumentedCacheDisabledSkipsCounting(t *testing.T) {
	metrics := testutil.NewMockMetrics()
	cache := providers.NewInstrumentedCacheProvider(cacheConfig(false, 1), &testutil.MockLogger{}, metrics)

	cache.Get("k")
	assert.Zero(t, metrics.CacheMisses, "noop cache is not wrapped with metrics")
}
