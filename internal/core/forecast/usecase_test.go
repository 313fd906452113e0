package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/mocks"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

var testSite = ports.SiteConfig{
	Location:  bahrain,
	Latitude:  26.5,
	Longitude: 50.5,
}

const testForecastKey = "forecast:26.5000:50.5000"

// setupLoggerMock allows any log call with up to five fields
func setupLoggerMock(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)
	args := []interface{}{}
	for i := 0; i <= 5; i++ {
		mockLogger.EXPECT().Debug(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Info(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Warn(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Error(mock.Anything, args...).Maybe()
		args = append(args, mock.Anything)
	}
	return mockLogger
}

type useCaseMocks struct {
	provider *mocks.ForecastProvider
	cache    *mocks.WeatherCache
	config   *mocks.ConfigProvider
	metrics  *mocks.MetricsCollector
}

func newTestUseCase(t *testing.T, enableCache bool) (*UseCase, useCaseMocks) {
	m := useCaseMocks{
		provider: mocks.NewForecastProvider(t),
		cache:    mocks.NewWeatherCache(t),
		config:   mocks.NewConfigProvider(t),
		metrics:  mocks.NewMetricsCollector(t),
	}

	m.config.EXPECT().GetWeatherConfig().Return(ports.WeatherConfig{
		EnableCache: enableCache,
		CacheTTL:    10 * time.Minute,
	}).Maybe()
	m.config.EXPECT().GetSiteConfig().Return(testSite).Maybe()
	m.provider.EXPECT().GetProviderName().Return("openweathermap").Maybe()

	uc, err := NewUseCase(UseCaseDependencies{
		Provider: m.provider,
		Cache:    m.cache,
		Config:   m.config,
		Logger:   setupLoggerMock(t),
		Metrics:  m.metrics,
		Now:      func() time.Time { return time.Date(2026, time.October, 14, 9, 0, 0, 0, bahrain) },
	})
	require.NoError(t, err)
	return uc, m
}

func sampleReadings() []ports.ForecastReading {
	return []ports.ForecastReading{
		{Timestamp: time.Date(2026, time.October, 15, 9, 0, 0, 0, bahrain), TemperatureC: 31.6, Icon: "01d", Description: "clear sky", WindSpeedMs: 5},
		{Timestamp: time.Date(2026, time.October, 15, 15, 0, 0, 0, bahrain), TemperatureC: 35, Icon: "02d", Description: "few clouds", WindSpeedMs: 13},
		{Timestamp: time.Date(2026, time.October, 16, 9, 0, 0, 0, bahrain), TemperatureC: 30.2, Icon: "50d", Description: "haze", WindSpeedMs: 9.5},
	}
}

func TestUseCase_LoadForecast_CacheMiss(t *testing.T) {
	uc, m := newTestUseCase(t, true)
	readings := sampleReadings()

	m.cache.EXPECT().GetForecast(mock.Anything, testForecastKey).Return(nil, errors.NewNotFoundError("cache miss"))
	m.metrics.EXPECT().RecordCacheMiss(mock.Anything).Return()
	m.provider.EXPECT().GetForecast(mock.Anything, 26.5, 50.5).Return(readings, nil)
	m.metrics.EXPECT().RecordWeatherAPICall(mock.Anything, "openweathermap", true).Return()
	m.cache.EXPECT().SetForecast(mock.Anything, testForecastKey, readings, 10*time.Minute).Return(nil)

	samples := uc.LoadForecast(context.Background(), 26.5, 50.5)

	require.Len(t, samples, 2)
	assert.Equal(t, dates.New(2026, time.October, 15), samples[0].Date)
	assert.Equal(t, 32, samples[0].TemperatureC)
	assert.Equal(t, WindSafe, samples[0].Risk())
	assert.Equal(t, "haze", samples[1].Description)
}

func TestUseCase_LoadForecast_CacheHit(t *testing.T) {
	uc, m := newTestUseCase(t, true)

	m.cache.EXPECT().GetForecast(mock.Anything, testForecastKey).Return(sampleReadings(), nil)
	m.metrics.EXPECT().RecordCacheHit(mock.Anything).Return()

	samples := uc.LoadForecast(context.Background(), 26.5, 50.5)

	assert.Len(t, samples, 2)
	m.provider.AssertNotCalled(t, "GetForecast", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_LoadForecast_ProviderFailureYieldsEmpty(t *testing.T) {
	uc, m := newTestUseCase(t, false)

	m.provider.EXPECT().GetForecast(mock.Anything, 26.5, 50.5).Return(nil, errors.NewExternalAPIError("missing API key", nil))
	m.metrics.EXPECT().RecordWeatherAPICall(mock.Anything, "openweathermap", false).Return()

	samples := uc.LoadForecast(context.Background(), 26.5, 50.5)

	assert.Empty(t, samples)
	m.cache.AssertNotCalled(t, "SetForecast", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Refresh_ReplacesAndKeepsOnFailure(t *testing.T) {
	uc, m := newTestUseCase(t, false)
	ctx := context.Background()

	assert.Zero(t, uc.Forecast().Len())
	_, ok := uc.Current()
	assert.False(t, ok)

	m.provider.EXPECT().GetForecast(mock.Anything, 26.5, 50.5).Return(sampleReadings(), nil).Once()
	m.provider.EXPECT().GetCurrent(mock.Anything, 26.5, 50.5).Return(&ports.CurrentConditions{
		TemperatureC: 30.5,
		Humidity:     61.4,
		Icon:         "01d",
		Description:  "clear sky",
		WindSpeedMs:  7.2,
	}, nil).Once()
	m.metrics.EXPECT().RecordWeatherAPICall(mock.Anything, "openweathermap", true).Return()

	uc.Refresh(ctx)

	sample, ok := uc.Lookup(dates.New(2026, time.October, 16))
	require.True(t, ok)
	assert.Equal(t, 30, sample.TemperatureC)
	assert.Equal(t, time.Date(2026, time.October, 14, 9, 0, 0, 0, bahrain), uc.Forecast().FetchedAt())

	current, ok := uc.Current()
	require.True(t, ok)
	assert.Equal(t, 31, current.TemperatureC)
	assert.Equal(t, 61, current.Humidity)
	assert.Equal(t, WindCaution, current.Risk())

	m.provider.EXPECT().GetForecast(mock.Anything, 26.5, 50.5).Return(nil, errors.NewExternalAPIError("timeout", nil)).Once()
	m.provider.EXPECT().GetCurrent(mock.Anything, 26.5, 50.5).Return(nil, errors.NewExternalAPIError("timeout", nil)).Once()
	m.metrics.EXPECT().RecordWeatherAPICall(mock.Anything, "openweathermap", false).Return()

	uc.Refresh(ctx)

	assert.Equal(t, 2, uc.Forecast().Len())
	_, ok = uc.Current()
	assert.True(t, ok)
}

func TestUseCase_Constructor_Validation(t *testing.T) {
	tests := []struct {
		name    string
		deps    UseCaseDependencies
		wantErr bool
		errMsg  string
	}{
		{
			name: "missing_provider",
			deps: UseCaseDependencies{
				Cache:   mocks.NewWeatherCache(t),
				Config:  mocks.NewConfigProvider(t),
				Logger:  mocks.NewLogger(t),
				Metrics: mocks.NewMetricsCollector(t),
			},
			wantErr: true,
			errMsg:  "forecast provider is required",
		},
		{
			name: "missing_metrics",
			deps: UseCaseDependencies{
				Provider: mocks.NewForecastProvider(t),
				Cache:    mocks.NewWeatherCache(t),
				Config:   mocks.NewConfigProvider(t),
				Logger:   mocks.NewLogger(t),
			},
			wantErr: true,
			errMsg:  "metrics is required",
		},
		{
			name: "valid_dependencies",
			deps: UseCaseDependencies{
				Provider: mocks.NewForecastProvider(t),
				Cache:    mocks.NewWeatherCache(t),
				Config:   mocks.NewConfigProvider(t),
				Logger:   mocks.NewLogger(t),
				Metrics:  mocks.NewMetricsCollector(t),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, err := NewUseCase(tt.deps)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, uc)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, uc)
		})
	}
}
