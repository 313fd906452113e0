// Package api exposes the booking service over HTTP with gin.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/forecast"
	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	server           *http.Server
	config           ServerConfig
	site             ports.SiteConfig
	forecastService  ForecastService
	bookingService   BookingService
	metricsCollector MetricsCollector
	healthChecker    ports.SystemHealthChecker
	metricsHandler   http.Handler
	logger           ports.Logger
	now              func() time.Time
}

// Use case interfaces that the HTTP adapter depends on
type ForecastService interface {
	Forecast() *forecast.Forecast
	Current() (forecast.CurrentWeather, bool)
}

type BookingService interface {
	Submit(ctx context.Context, req booking.SubmitRequest) (*booking.Result, error)
	Recent(ctx context.Context, limit int) ([]*ports.BookingRecord, error)
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config           ServerConfig
	Site             ports.SiteConfig
	ForecastService  ForecastService
	BookingService   BookingService
	MetricsCollector MetricsCollector
	HealthChecker    ports.SystemHealthChecker
	// MetricsHandler serves /metrics. Defaults to promhttp.Handler().
	MetricsHandler http.Handler
	Logger         ports.Logger
	Now            func() time.Time
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if opts.MetricsHandler == nil {
		opts.MetricsHandler = promhttp.Handler()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Site.Location == nil {
		opts.Site.Location = time.UTC
	}
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger), corsMiddleware(opts.Config.AllowedOrigins))

	server := &HTTPServerAdapter{
		router:           router,
		config:           opts.Config,
		site:             opts.Site,
		forecastService:  opts.ForecastService,
		bookingService:   opts.BookingService,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.HealthChecker,
		metricsHandler:   opts.MetricsHandler,
		logger:           opts.Logger,
		now:              opts.Now,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.ForecastService == nil {
		return errors.NewValidationError("forecast service is required")
	}
	if opts.BookingService == nil {
		return errors.NewValidationError("booking service is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/forecast", s.getForecast)
		api.GET("/weather/current", s.getCurrentWeather)
		api.GET("/calendar", s.getCalendar)
		api.POST("/booking", s.postBooking)
		api.GET("/bookings/recent", s.getRecentBookings)
		api.GET("/contact/whatsapp", s.getWhatsAppContact)
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
	s.router.GET("/sitemap.xml", s.getSitemap)
	s.router.GET("/robots.txt", s.getRobots)
	s.router.GET("/manifest.webmanifest", s.getManifest)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", ports.F("port", s.config.Port))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down HTTP server")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
