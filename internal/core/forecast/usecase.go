package forecast

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

type UseCase struct {
	provider ports.ForecastProvider
	cache    ports.WeatherCache
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
	now      func() time.Time

	forecast atomic.Pointer[Forecast]
	current  atomic.Pointer[CurrentWeather]
}

type UseCaseDependencies struct {
	Provider ports.ForecastProvider
	Cache    ports.WeatherCache
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
	Now      func() time.Time
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("forecast provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &UseCase{
		provider: deps.Provider,
		cache:    deps.Cache,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		now:      deps.Now,
	}, nil
}

// LoadForecast fetches and collapses the forecast for a point. Failures are
// logged and yield an empty result.
func (uc *UseCase) LoadForecast(ctx context.Context, lat, lon float64) []ForecastSample {
	samples, err := uc.fetchSamples(ctx, lat, lon)
	if err != nil {
		uc.logger.Warn("Forecast unavailable",
			ports.F("lat", lat),
			ports.F("lon", lon),
			ports.F("error", err))
		return nil
	}
	return samples
}

// Refresh reloads the site forecast and current conditions. Each collection
// is swapped in whole. A failed fetch keeps the previous collection.
func (uc *UseCase) Refresh(ctx context.Context) {
	site := uc.config.GetSiteConfig()

	samples, err := uc.fetchSamples(ctx, site.Latitude, site.Longitude)
	if err != nil {
		uc.logger.Warn("Forecast refresh failed, keeping previous forecast",
			ports.F("error", err),
			ports.F("cached_days", uc.Forecast().Len()))
	} else {
		uc.forecast.Store(NewForecast(samples, uc.now()))
		uc.logger.Info("Forecast refreshed", ports.F("days", len(samples)))
	}

	current, err := uc.fetchCurrent(ctx, site.Latitude, site.Longitude)
	if err != nil {
		uc.logger.Warn("Current conditions refresh failed", ports.F("error", err))
		return
	}
	uc.current.Store(current)
}

// Forecast returns the latest site forecast; it is empty before the first
// successful refresh.
func (uc *UseCase) Forecast() *Forecast {
	if f := uc.forecast.Load(); f != nil {
		return f
	}
	return NewForecast(nil, time.Time{})
}

// Lookup finds the site forecast sample for a calendar day.
func (uc *UseCase) Lookup(day dates.Date) (ForecastSample, bool) {
	return uc.Forecast().Lookup(day)
}

// Current returns the latest current conditions, if any were fetched.
func (uc *UseCase) Current() (CurrentWeather, bool) {
	c := uc.current.Load()
	if c == nil {
		return CurrentWeather{}, false
	}
	return *c, true
}

func (uc *UseCase) fetchSamples(ctx context.Context, lat, lon float64) ([]ForecastSample, error) {
	readings, err := uc.readingsWithCache(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	loc := uc.config.GetSiteConfig().Location
	if loc == nil {
		loc = time.UTC
	}
	return CollapseDaily(readings, loc), nil
}

func (uc *UseCase) readingsWithCache(ctx context.Context, lat, lon float64) ([]ports.ForecastReading, error) {
	weatherConfig := uc.config.GetWeatherConfig()
	if !weatherConfig.EnableCache {
		return uc.readingsFromProvider(ctx, lat, lon)
	}

	cacheKey := fmt.Sprintf("forecast:%.4f:%.4f", lat, lon)
	cached, err := uc.cache.GetForecast(ctx, cacheKey)
	if err == nil && cached != nil {
		uc.metrics.RecordCacheHit(ctx)
		uc.logger.Debug("Forecast found in cache", ports.F("key", cacheKey))
		return cached, nil
	}
	uc.metrics.RecordCacheMiss(ctx)

	readings, err := uc.readingsFromProvider(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if cacheErr := uc.cache.SetForecast(ctx, cacheKey, readings, weatherConfig.CacheTTL); cacheErr != nil {
		uc.logger.Warn("Failed to cache forecast",
			ports.F("key", cacheKey),
			ports.F("error", cacheErr))
	}
	return readings, nil
}

func (uc *UseCase) readingsFromProvider(ctx context.Context, lat, lon float64) ([]ports.ForecastReading, error) {
	readings, err := uc.provider.GetForecast(ctx, lat, lon)
	uc.metrics.RecordWeatherAPICall(ctx, uc.provider.GetProviderName(), err == nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("forecast provider failed", err)
	}
	return readings, nil
}

func (uc *UseCase) fetchCurrent(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	weatherConfig := uc.config.GetWeatherConfig()
	cacheKey := fmt.Sprintf("current:%.4f:%.4f", lat, lon)

	var conditions *ports.CurrentConditions
	if weatherConfig.EnableCache {
		if cached, err := uc.cache.GetCurrent(ctx, cacheKey); err == nil && cached != nil {
			uc.metrics.RecordCacheHit(ctx)
			conditions = cached
		} else {
			uc.metrics.RecordCacheMiss(ctx)
		}
	}

	if conditions == nil {
		fetched, err := uc.provider.GetCurrent(ctx, lat, lon)
		uc.metrics.RecordWeatherAPICall(ctx, uc.provider.GetProviderName(), err == nil)
		if err != nil {
			return nil, errors.NewExternalAPIError("current conditions provider failed", err)
		}
		if fetched == nil {
			return nil, errors.NewExternalAPIError("current conditions provider returned no data", nil)
		}
		conditions = fetched
		if weatherConfig.EnableCache {
			if cacheErr := uc.cache.SetCurrent(ctx, cacheKey, conditions, weatherConfig.CacheTTL); cacheErr != nil {
				uc.logger.Warn("Failed to cache current conditions",
					ports.F("key", cacheKey),
					ports.F("error", cacheErr))
			}
		}
	}

	return &CurrentWeather{
		TemperatureC:  RoundTemperature(conditions.TemperatureC),
		Humidity:      int(math.Round(conditions.Humidity)),
		ConditionIcon: conditions.Icon,
		Description:   conditions.Description,
		WindSpeedMs:   conditions.WindSpeedMs,
		ObservedAt:    conditions.ObservedAt,
	}, nil
}
