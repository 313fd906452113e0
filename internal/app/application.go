package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"

	"allweather.app/internal/adapters/api"
	"allweather.app/internal/adapters/infrastructure"
	"allweather.app/internal/config"
	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/forecast"
	"allweather.app/internal/i18n"
	"allweather.app/internal/ports"
)

const refreshTimeout = 30 * time.Second

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	// Use Cases
	forecastUseCase *forecast.UseCase
	bookingUseCase  *booking.UseCase

	// Adapters
	server    *api.HTTPServerAdapter
	scheduler *gocron.Scheduler

	// Infrastructure
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg, DependencyOptions{})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		_ = deps.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies builds the application on an existing
// container. Tests use it to point the adapters at fakes.
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	if err := i18n.Validate(); err != nil {
		return nil, fmt.Errorf("validate translations: %w", err)
	}

	app := &Application{
		config:    cfg,
		deps:      deps,
		ports:     deps.ApplicationPorts(),
		scheduler: gocron.NewScheduler(time.UTC),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	forecastUseCase, err := forecast.NewUseCase(forecast.UseCaseDependencies{
		Provider: a.ports.ForecastProvider,
		Cache:    a.ports.WeatherCache,
		Config:   a.ports.ConfigProvider,
		Logger:   a.ports.Logger,
		Metrics:  a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create forecast use case: %w", err)
	}
	a.forecastUseCase = forecastUseCase

	bookingUseCase, err := booking.NewUseCase(booking.UseCaseDependencies{
		Chat:     a.ports.ChatSender,
		Email:    a.ports.EmailProvider,
		Journal:  a.ports.BookingJournal,
		Forecast: a.forecastUseCase,
		Config:   a.ports.ConfigProvider,
		Logger:   a.ports.Logger,
		Metrics:  a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create booking use case: %w", err)
	}
	a.bookingUseCase = bookingUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	metricsCollector := infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		Metrics:      a.deps.Metrics(),
		CacheMetrics: a.ports.CacheMetrics,
		Forecast:     a.forecastUseCase,
	})

	weatherConfig := a.ports.ConfigProvider.GetWeatherConfig()
	checkers := map[string]ports.HealthChecker{
		"cache":         infrastructure.NewPingHealthChecker("cache", a.cachePinger()),
		"journal":       infrastructure.NewPingHealthChecker("journal", a.journalPinger()),
		"weatherAPI":    infrastructure.NewWeatherAPIHealthChecker(a.forecastUseCase, a.ports.ForecastProvider.GetProviderName(), 2*weatherConfig.RefreshInterval),
		"notifications": infrastructure.NewNotificationHealthChecker(a.ports.ConfigProvider),
	}
	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		Checkers:       checkers,
		ConfigProvider: a.ports.ConfigProvider,
	})

	serverConfig := a.ports.ConfigProvider.GetServerConfig()
	server, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port:           serverConfig.Port,
			AllowedOrigins: serverConfig.AllowedOrigins,
		},
		Site:             a.ports.ConfigProvider.GetSiteConfig(),
		ForecastService:  a.forecastUseCase,
		BookingService:   a.bookingUseCase,
		MetricsCollector: metricsCollector,
		HealthChecker:    systemHealthChecker,
		Logger:           a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.server = server

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) cachePinger() infrastructure.Pinger {
	if p, ok := a.deps.Cache().(infrastructure.Pinger); ok {
		return p
	}
	return nil
}

func (a *Application) journalPinger() infrastructure.Pinger {
	if j := a.deps.Journal(); j != nil {
		return j
	}
	return nil
}

// Start runs the forecast refresh job and serves HTTP until ctx is done.
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if err := a.startScheduler(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	return a.server.Start(ctx)
}

// startScheduler refreshes the site forecast right away and then on the
// configured interval. Runs never overlap.
func (a *Application) startScheduler(ctx context.Context) error {
	interval := a.ports.ConfigProvider.GetWeatherConfig().RefreshInterval
	slog.Info("Starting forecast scheduler...", "interval", interval.String())

	_, err := a.scheduler.Every(interval).SingletonMode().Do(func() {
		a.RefreshForecast(ctx)
	})
	if err != nil {
		return err
	}

	a.scheduler.StartAsync()
	return nil
}

// RefreshForecast runs one bounded forecast refresh.
func (a *Application) RefreshForecast(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()
	a.forecastUseCase.Refresh(refreshCtx)
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	a.scheduler.Stop()

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
		return fmt.Errorf("release resources: %w", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.server.GetRouter()
}

// GetForecastUseCase returns the forecast use case for testing
func (a *Application) GetForecastUseCase() *forecast.UseCase {
	return a.forecastUseCase
}

// GetBookingUseCase returns the booking use case for testing
func (a *Application) GetBookingUseCase() *booking.UseCase {
	return a.bookingUseCase
}
