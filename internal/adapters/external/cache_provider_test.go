package external

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

var (
	_ ports.CacheProvider = (*MemoryCacheProvider)(nil)
	_ ports.CacheProvider = (*RedisCacheProvider)(nil)
	_ ports.CacheMetrics  = (*MemoryCacheProvider)(nil)
	_ ports.CacheMetrics  = (*RedisCacheProvider)(nil)
	_ ports.WeatherCache  = (*WeatherCacheAdapter)(nil)
)

func setupMockRedis(t *testing.T) (*miniredis.Miniredis, ports.RedisConfig) {
	t.Helper()
	mockRedis := miniredis.RunT(t)
	return mockRedis, ports.RedisConfig{
		Addr:         mockRedis.Addr(),
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}
}

func newRedisProvider(t *testing.T) (*RedisCacheProvider, *miniredis.Miniredis) {
	t.Helper()
	mockRedis, cfg := setupMockRedis(t)
	provider, err := NewRedisCacheProvider(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })
	return provider, mockRedis
}

// cacheContract runs the behaviour every CacheProvider must share.
func cacheContract(t *testing.T, cache ports.CacheProvider) {
	ctx := context.Background()

	_, err := cache.Get(ctx, "forecast:missing")
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, cache.Set(ctx, "forecast:a", []byte(`[1,2]`), time.Minute))
	got, err := cache.Get(ctx, "forecast:a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)

	exists, err := cache.Exists(ctx, "forecast:a")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "forecast:a"))
	exists, err = cache.Exists(ctx, "forecast:a")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.Set(ctx, "current:a", []byte("x"), time.Minute))
	require.NoError(t, cache.Clear(ctx))
	_, err = cache.Get(ctx, "current:a")
	assert.True(t, errors.IsNotFoundError(err))

	tests := []struct {
		name  string
		key   string
		value []byte
		ttl   time.Duration
	}{
		{"empty_key", "", []byte("x"), time.Minute},
		{"nil_value", "k", nil, time.Minute},
		{"zero_ttl", "k", []byte("x"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cache.Set(ctx, tt.key, tt.value, tt.ttl)
			assert.True(t, errors.IsValidationError(err))
		})
	}

	_, err = cache.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))

	stats := cache.(ports.CacheMetrics).GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.InDelta(t, 1.0/3.0, stats.HitRatio, 0.001)
}

func TestMemoryCacheProvider_Contract(t *testing.T) {
	cacheContract(t, NewMemoryCacheProvider())
}

func TestRedisCacheProvider_Contract(t *testing.T) {
	provider, _ := newRedisProvider(t)
	cacheContract(t, provider)
}

func TestMemoryCacheProvider_Expiry(t *testing.T) {
	cache := NewMemoryCacheProvider()
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "stale", []byte("1"), time.Minute))
	now = now.Add(2 * time.Minute)

	_, err := cache.Get(ctx, "stale")
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, cache.Set(ctx, "fresh", []byte("2"), time.Minute))
	assert.Equal(t, 1, cache.Len(), "expired entries are swept on write")
}

func TestMemoryCacheProvider_ReturnsCopies(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()
	value := []byte("abc")

	require.NoError(t, cache.Set(ctx, "k", value, time.Minute))
	value[0] = 'z'

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestRedisCacheProvider_PrefixAndClear(t *testing.T) {
	provider, mockRedis := newRedisProvider(t)
	ctx := context.Background()

	require.NoError(t, mockRedis.Set("other-app:key", "keep"))
	require.NoError(t, provider.Set(ctx, "forecast:1", []byte("v"), time.Minute))

	assert.True(t, mockRedis.Exists("allweather:forecast:1"))
	ttl := mockRedis.TTL("allweather:forecast:1")
	assert.Equal(t, time.Minute, ttl)

	require.NoError(t, provider.Clear(ctx))
	assert.False(t, mockRedis.Exists("allweather:forecast:1"))
	assert.True(t, mockRedis.Exists("other-app:key"))

	mockRedis.FastForward(2 * time.Minute)
	require.NoError(t, provider.Ping(ctx))
}

func TestRedisCacheProvider_ConnectionErrors(t *testing.T) {
	_, err := NewRedisCacheProvider(ports.RedisConfig{})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewRedisCacheProvider(ports.RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 1})
	assert.True(t, errors.IsExternalAPIError(err))

	provider, mockRedis := newRedisProvider(t)
	mockRedis.Close()
	_, err = provider.Get(context.Background(), "k")
	assert.True(t, errors.IsExternalAPIError(err))
}

func TestCacheProviderFactory_CreateCacheProvider(t *testing.T) {
	factory := NewCacheProviderFactory()

	memory, err := factory.CreateCacheProvider(ports.CacheConfig{Type: CacheTypeMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCacheProvider{}, memory)

	_, cfg := setupMockRedis(t)
	redisCache, err := factory.CreateCacheProvider(ports.CacheConfig{Type: CacheTypeRedis, Redis: cfg})
	require.NoError(t, err)
	assert.IsType(t, &RedisCacheProvider{}, redisCache)
	_ = redisCache.(*RedisCacheProvider).Close()

	unreachable, err := factory.CreateCacheProvider(ports.CacheConfig{Type: CacheTypeRedis})
	assert.Error(t, err)
	assert.Nil(t, unreachable)

	_, err = factory.CreateCacheProvider(ports.CacheConfig{Type: "memcached"})
	assert.True(t, errors.IsConfigurationError(err))
}

func TestWeatherCacheAdapter_RoundTrip(t *testing.T) {
	adapter := NewWeatherCacheAdapter(NewMemoryCacheProvider())
	ctx := context.Background()
	ts := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

	readings := []ports.ForecastReading{{Timestamp: ts, TemperatureC: 31.5, Icon: "01d", Description: "clear sky", WindSpeedMs: 4.1}}
	require.NoError(t, adapter.SetForecast(ctx, "forecast:k", readings, time.Minute))

	got, err := adapter.GetForecast(ctx, "forecast:k")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, ts.Equal(got[0].Timestamp))
	assert.Equal(t, 4.1, got[0].WindSpeedMs)

	current := &ports.CurrentConditions{TemperatureC: 30, Humidity: 55, Icon: "02d", WindSpeedMs: 7}
	require.NoError(t, adapter.SetCurrent(ctx, "current:k", current, time.Minute))
	gotCurrent, err := adapter.GetCurrent(ctx, "current:k")
	require.NoError(t, err)
	assert.Equal(t, 55.0, gotCurrent.Humidity)

	assert.True(t, errors.IsValidationError(adapter.SetForecast(ctx, "k", nil, time.Minute)))
	assert.True(t, errors.IsValidationError(adapter.SetCurrent(ctx, "k", nil, time.Minute)))

	_, err = adapter.GetCurrent(ctx, "current:none")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestWeatherCacheAdapter_CorruptEntry(t *testing.T) {
	cache := NewMemoryCacheProvider()
	require.NoError(t, cache.Set(context.Background(), "forecast:bad", []byte("{not json"), time.Minute))

	_, err := NewWeatherCacheAdapter(cache).GetForecast(context.Background(), "forecast:bad")
	assert.True(t, errors.IsExternalAPIError(err))
}
