package infrastructure

import (
	"context"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"allweather.app/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector port with Prometheus
// counters and keeps in-process totals for the JSON summary.
type PrometheusMetrics struct {
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	hitRatio      prometheus.Gauge
	weatherCalls  *prometheus.CounterVec
	notifications *prometheus.CounterVec
	bookings      *prometheus.CounterVec

	mu     sync.Mutex
	counts map[string]int64
}

// NewPrometheusMetrics registers the collectors on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "allweather_cache_hits_total",
			Help: "The total number of weather cache hits",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "allweather_cache_misses_total",
			Help: "The total number of weather cache misses",
		}),
		hitRatio: factory.NewGauge(prometheus.GaugeOpts{
			Name: "allweather_cache_hit_ratio",
			Help: "Cache hit ratio (hits/total requests)",
		}),
		weatherCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "allweather_weather_api_calls_total",
			Help: "Forecast provider calls by provider and outcome",
		}, []string{"provider", "success"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "allweather_notifications_total",
			Help: "Notification deliveries by channel and outcome",
		}, []string{"channel", "success"}),
		bookings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "allweather_bookings_total",
			Help: "Booking submissions by outcome",
		}, []string{"outcome"}),
		counts: make(map[string]int64),
	}
}

func (m *PrometheusMetrics) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Inc()
	m.bump("cache.hits")
	m.updateHitRatio()
}

func (m *PrometheusMetrics) RecordCacheMiss(ctx context.Context) {
	m.cacheMisses.Inc()
	m.bump("cache.misses")
	m.updateHitRatio()
}

func (m *PrometheusMetrics) RecordWeatherAPICall(ctx context.Context, provider string, success bool) {
	m.weatherCalls.WithLabelValues(provider, strconv.FormatBool(success)).Inc()
	m.bump("weather." + outcome(success))
}

func (m *PrometheusMetrics) RecordNotification(ctx context.Context, channel string, success bool) {
	m.notifications.WithLabelValues(channel, strconv.FormatBool(success)).Inc()
	m.bump("notifications." + channel + "." + outcome(success))
}

func (m *PrometheusMetrics) RecordBooking(ctx context.Context, result string) {
	m.bookings.WithLabelValues(result).Inc()
	m.bump("bookings." + result)
}

// Snapshot returns a copy of the in-process totals keyed by dotted name.
func (m *PrometheusMetrics) Snapshot() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out
}

func (m *PrometheusMetrics) bump(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
}

func (m *PrometheusMetrics) updateHitRatio() {
	m.mu.Lock()
	defer m.mu.Unlock()
	hits, misses := m.counts["cache.hits"], m.counts["cache.misses"]
	if total := hits + misses; total > 0 {
		m.hitRatio.Set(float64(hits) / float64(total))
	}
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// MetricsCollectorAdapter builds the JSON metrics summary served by the API.
type MetricsCollectorAdapter struct {
	metrics      *PrometheusMetrics
	cacheMetrics ports.CacheMetrics
	forecast     ForecastStatus
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	Metrics      *PrometheusMetrics
	CacheMetrics ports.CacheMetrics
	Forecast     ForecastStatus
}

func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		metrics:      config.Metrics,
		cacheMetrics: config.CacheMetrics,
		forecast:     config.Forecast,
	}
}

// GetMetrics returns aggregated metrics from all monitored services
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	result := map[string]interface{}{}

	if m.metrics != nil {
		result["counters"] = m.metrics.Snapshot()
	}

	if m.cacheMetrics != nil {
		stats := m.cacheMetrics.GetStats()
		result["cache"] = map[string]interface{}{
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"total_ops": stats.TotalOps,
			"hit_ratio": stats.HitRatio,
			"updated":   stats.LastUpdated,
		}
	}

	if m.forecast != nil {
		f := m.forecast.Forecast()
		result["forecast"] = map[string]interface{}{
			"days":       f.Len(),
			"fetched_at": f.FetchedAt(),
		}
	}

	return result, nil
}
