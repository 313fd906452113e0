package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"allweather.app/internal/adapters/database"
	"allweather.app/internal/adapters/external"
	"allweather.app/internal/adapters/infrastructure"
	"allweather.app/internal/config"
	"allweather.app/internal/ports"
)

type DependencyContainer struct {
	config     *config.Config
	options    DependencyOptions
	db         *gorm.DB
	journal    *database.BookingJournalRepository
	cache      ports.CacheProvider
	fileLogger *infrastructure.FileLoggerAdapter
	metrics    *infrastructure.PrometheusMetrics
	ports      *ports.ApplicationPorts
}

// DependencyOptions overrides process-wide defaults. The zero value is the
// production setup.
type DependencyOptions struct {
	// Registerer receives the Prometheus collectors. Defaults to
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// HTTPClient is shared by the outbound adapters when set.
	HTTPClient external.HTTPClient
	// Logger is the base structured logger. Defaults to slog.Default().
	Logger *slog.Logger
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	container := &DependencyContainer{
		config:  cfg,
		options: opts,
	}

	if err := container.initializeDatabase(); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() error {
	driver := c.config.Journal.Driver
	if driver == database.DriverNone {
		slog.Info("Booking journal disabled")
		return nil
	}

	slog.Info("Initializing booking journal...", "driver", driver)
	db, err := database.Open(driver, c.config.Journal.GetDSN())
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	c.db = db
	c.journal = database.NewBookingJournalRepository(db)
	slog.Info("Booking journal ready", "driver", driver)
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	logger := c.initializeLogger()

	cacheFactory := external.NewCacheProviderFactory()
	cacheProvider, err := cacheFactory.CreateCacheProvider(configProvider.GetCacheConfig())
	if err != nil {
		slog.Error("Failed to create cache provider", "error", err)
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = cacheProvider
	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)

	var forecastProvider ports.ForecastProvider = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:  c.config.Weather.OpenWeatherMapKey,
		BaseURL: c.config.Weather.OpenWeatherMapBaseURL,
		Client:  c.options.HTTPClient,
		Logger:  logger,
	})
	if c.config.Weather.EnableLogging {
		forecastProvider = external.NewForecastProviderLoggingDecorator(forecastProvider, logger)
		slog.Info("Forecast provider logging enabled")
	}

	chatSender, err := c.initializeChatSender(logger)
	if err != nil {
		return fmt.Errorf("create chat sender: %w", err)
	}

	emailProvider, err := c.initializeEmailProvider(logger)
	if err != nil {
		return fmt.Errorf("create email provider: %w", err)
	}

	c.metrics = infrastructure.NewPrometheusMetrics(c.options.Registerer)

	applicationPorts := &ports.ApplicationPorts{
		ForecastProvider: forecastProvider,
		WeatherCache:     external.NewWeatherCacheAdapter(cacheProvider),
		ChatSender:       chatSender,
		EmailProvider:    emailProvider,
		CacheProvider:    cacheProvider,
		ConfigProvider:   configProvider,
		Logger:           logger,
		Metrics:          c.metrics,
	}
	if cacheMetrics, ok := cacheProvider.(ports.CacheMetrics); ok {
		applicationPorts.CacheMetrics = cacheMetrics
	}
	// A nil repository must stay an untyped nil so the use case sees the
	// journal as disabled.
	if c.journal != nil {
		applicationPorts.BookingJournal = c.journal
		applicationPorts.Database = c.db
	}
	c.ports = applicationPorts

	slog.Info("Ports initialized successfully")
	return nil
}

// initializeLogger returns the slog adapter, fanned out to the traffic log
// file when one is configured.
func (c *DependencyContainer) initializeLogger() ports.Logger {
	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(c.options.Logger)

	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
			return logger
		}
		c.fileLogger = fileLogger
		slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		return infrastructure.MultiLogger{logger, fileLogger}
	}
	return logger
}

func (c *DependencyContainer) initializeChatSender(logger ports.Logger) (ports.ChatSender, error) {
	cfg := c.config.Notification.WhatsApp
	if !cfg.Enabled() {
		slog.Info("WhatsApp notifications disabled")
		return nil, nil
	}

	sender, err := external.NewWhatsAppSender(external.WhatsAppSenderParams{
		Token:         cfg.Token,
		PhoneNumberID: cfg.PhoneNumberID,
		BaseURL:       cfg.BaseURL,
		Client:        c.options.HTTPClient,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("WhatsApp notifications enabled")
	return external.NewChatSenderLoggingDecorator(sender, logger), nil
}

func (c *DependencyContainer) initializeEmailProvider(logger ports.Logger) (ports.EmailProvider, error) {
	cfg := c.config.Notification.Email
	if !cfg.Enabled() {
		slog.Info("Email notifications disabled", "provider", cfg.Provider)
		return nil, nil
	}

	switch cfg.Provider {
	case external.EmailProviderResend:
		provider, err := external.NewResendEmailProvider(external.ResendEmailProviderParams{
			APIKey:   cfg.ResendAPIKey,
			From:     fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
			Endpoint: cfg.ResendURL,
			Client:   c.options.HTTPClient,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("Email notifications enabled", "provider", cfg.Provider)
		return provider, nil
	default:
		slog.Info("Email notifications enabled", "provider", cfg.Provider, "host", cfg.SMTPHost)
		return external.NewSMTPEmailProviderAdapter(external.EmailProviderConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			FromName: cfg.FromName,
			FromAddr: cfg.FromAddress,
		}), nil
	}
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Metrics returns the Prometheus-backed collector shared by the use cases.
func (c *DependencyContainer) Metrics() *infrastructure.PrometheusMetrics {
	return c.metrics
}

// Cache returns the generic cache backend for health checks.
func (c *DependencyContainer) Cache() ports.CacheProvider {
	return c.cache
}

// Journal returns the booking journal, or nil when it is disabled.
func (c *DependencyContainer) Journal() *database.BookingJournalRepository {
	return c.journal
}

// Cleanup releases the database, the cache connection and the log file.
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.db != nil {
		keep(database.Close(c.db))
	}
	if closer, ok := c.cache.(io.Closer); ok {
		keep(closer.Close())
	}
	if c.fileLogger != nil {
		keep(c.fileLogger.Close())
	}
	return firstErr
}
