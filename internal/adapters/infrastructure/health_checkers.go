package infrastructure

import (
	"context"
	"time"

	"allweather.app/internal/core/forecast"
	"allweather.app/internal/ports"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// Pinger is satisfied by the journal repository and the Redis cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker reports a component healthy when its Ping succeeds.
// A nil target reports the component as disabled.
type PingHealthChecker struct {
	component string
	target    Pinger
}

func NewPingHealthChecker(component string, target Pinger) *PingHealthChecker {
	return &PingHealthChecker{component: component, target: target}
}

func (p *PingHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: p.component,
		Details:   make(map[string]interface{}),
	}
	if p.target == nil {
		status.Status = StatusDisabled
		return status
	}

	start := time.Now()
	if err := p.target.Ping(ctx); err != nil {
		status.Status = StatusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = StatusHealthy
	status.Details["connected"] = true
	status.Details["latency_ms"] = time.Since(start).Milliseconds()
	return status
}

// ForecastStatus exposes the latest loaded forecast.
type ForecastStatus interface {
	Forecast() *forecast.Forecast
}

// WeatherAPIHealthChecker reports on the freshness of the cached forecast
// rather than calling the provider.
type WeatherAPIHealthChecker struct {
	status   ForecastStatus
	provider string
	maxAge   time.Duration
	now      func() time.Time
}

func NewWeatherAPIHealthChecker(status ForecastStatus, provider string, maxAge time.Duration) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{status: status, provider: provider, maxAge: maxAge, now: time.Now}
}

func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    StatusHealthy,
		Details: map[string]interface{}{
			"provider": w.provider,
		},
	}

	f := w.status.Forecast()
	status.Details["days"] = f.Len()
	if f.FetchedAt().IsZero() {
		status.Status = StatusDegraded
		status.Error = "no forecast loaded yet"
		return status
	}

	age := w.now().Sub(f.FetchedAt())
	status.Details["fetched_at"] = f.FetchedAt().UTC().Format(time.RFC3339)
	if w.maxAge > 0 && age > w.maxAge {
		status.Status = StatusDegraded
		status.Error = "forecast is stale"
	}
	return status
}

// NotificationHealthChecker reports which staff channels are configured.
type NotificationHealthChecker struct {
	config ports.ConfigProvider
}

func NewNotificationHealthChecker(config ports.ConfigProvider) *NotificationHealthChecker {
	return &NotificationHealthChecker{config: config}
}

func (n *NotificationHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	cfg := n.config.GetNotificationConfig()
	whatsApp := cfg.WhatsAppEnabled && cfg.AdminWhatsApp != ""
	adminEmail := cfg.EmailEnabled && cfg.AdminEmail != ""

	status := ports.HealthStatus{
		Component: "notifications",
		Status:    StatusHealthy,
		Details: map[string]interface{}{
			"whatsapp":       whatsApp,
			"admin_email":    adminEmail,
			"email_provider": cfg.EmailProvider,
			"confirmations":  cfg.EmailEnabled && cfg.ConfirmCustomers,
		},
	}
	if !whatsApp && !adminEmail {
		status.Status = StatusDegraded
		status.Error = "no staff notification channel configured"
	}
	return status
}

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	Checkers       map[string]ports.HealthChecker
	ConfigProvider ports.ConfigProvider
}

func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		checkers:       config.Checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)
	for name, checker := range s.checkers {
		if checker != nil {
			results[name] = checker.Check(ctx)
		}
	}

	if s.configProvider != nil {
		site := s.configProvider.GetSiteConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    StatusHealthy,
			Details: map[string]interface{}{
				"appBaseURL": site.BaseURL,
				"timeZone":   site.Location.String(),
				"cacheType":  s.configProvider.GetCacheConfig().Type,
				"journal":    s.configProvider.GetJournalConfig().Driver,
			},
		}
	}

	return results
}

// Overall folds component statuses: any unhealthy component makes the
// system unhealthy, any degraded one makes it degraded.
func Overall(results map[string]ports.HealthStatus) string {
	overall := StatusHealthy
	for _, r := range results {
		switch r.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}
