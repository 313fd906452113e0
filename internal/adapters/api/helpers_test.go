package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/forecast"
	"allweather.app/internal/mocks"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
)

var (
	bahrain = time.FixedZone("AST", 3*60*60)
	testNow = time.Date(2026, time.October, 14, 10, 30, 0, 0, bahrain)
	today   = dates.New(2026, time.October, 14)
)

var testSite = ports.SiteConfig{
	BaseURL:        "https://allweather.bh",
	Location:       bahrain,
	ContactNumber:  "97339939053",
	DisplayContact: "+973 3993 9053",
}

func setupLoggerMock(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)
	args := []interface{}{}
	for i := 0; i <= 6; i++ {
		mockLogger.EXPECT().Debug(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Info(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Warn(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Error(mock.Anything, args...).Maybe()
		args = append(args, mock.Anything)
	}
	return mockLogger
}

type stubForecast struct {
	forecast *forecast.Forecast
	current  *forecast.CurrentWeather
}

func (s stubForecast) Forecast() *forecast.Forecast { return s.forecast }

func (s stubForecast) Current() (forecast.CurrentWeather, bool) {
	if s.current == nil {
		return forecast.CurrentWeather{}, false
	}
	return *s.current, true
}

type stubBookings struct {
	result  *booking.Result
	err     error
	records []*ports.BookingRecord
	limit   int
	got     *booking.SubmitRequest
}

func (s *stubBookings) Submit(ctx context.Context, req booking.SubmitRequest) (*booking.Result, error) {
	s.got = &req
	return s.result, s.err
}

func (s *stubBookings) Recent(ctx context.Context, limit int) ([]*ports.BookingRecord, error) {
	s.limit = limit
	return s.records, s.err
}

type stubMetrics map[string]interface{}

func (m stubMetrics) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	return m, nil
}

type stubHealth map[string]ports.HealthStatus

func (h stubHealth) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	return h
}

func sampleForecast() *forecast.Forecast {
	return forecast.NewForecast([]forecast.ForecastSample{
		{Date: today, TemperatureC: 31, ConditionIcon: "01d", Description: "clear sky", WindSpeedMs: 4},
		{Date: today.AddDays(1), TemperatureC: 30, ConditionIcon: "50d", Description: "haze", WindSpeedMs: 8.5},
		{Date: today.AddDays(2), TemperatureC: 29, ConditionIcon: "04d", Description: "broken clouds", WindSpeedMs: 13},
	}, testNow)
}

func newTestServer(t *testing.T, opts ServerOptions) *HTTPServerAdapter {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.ForecastService == nil {
		opts.ForecastService = stubForecast{forecast: sampleForecast()}
	}
	if opts.BookingService == nil {
		opts.BookingService = &stubBookings{}
	}
	if opts.MetricsCollector == nil {
		opts.MetricsCollector = stubMetrics{}
	}
	if opts.HealthChecker == nil {
		opts.HealthChecker = stubHealth{}
	}
	if opts.Logger == nil {
		opts.Logger = setupLoggerMock(t)
	}
	if opts.MetricsHandler == nil {
		opts.MetricsHandler = http.NotFoundHandler()
	}
	if opts.Site.BaseURL == "" {
		opts.Site = testSite
	}
	opts.Now = func() time.Time { return testNow }

	server, err := NewHTTPServerAdapter(opts)
	require.NoError(t, err)
	return server
}
