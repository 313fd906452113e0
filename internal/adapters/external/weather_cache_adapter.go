package external

import (
	"context"
	"encoding/json"
	"time"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

// WeatherCacheAdapter stores forecast readings and current conditions as
// JSON in a generic CacheProvider.
type WeatherCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

func NewWeatherCacheAdapter(cacheProvider ports.CacheProvider) *WeatherCacheAdapter {
	return &WeatherCacheAdapter{cacheProvider: cacheProvider}
}

func (w *WeatherCacheAdapter) GetForecast(ctx context.Context, key string) ([]ports.ForecastReading, error) {
	var readings []ports.ForecastReading
	if err := w.get(ctx, key, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (w *WeatherCacheAdapter) SetForecast(ctx context.Context, key string, readings []ports.ForecastReading, ttl time.Duration) error {
	if readings == nil {
		return errors.NewValidationError("forecast readings cannot be nil")
	}
	return w.set(ctx, key, readings, ttl)
}

func (w *WeatherCacheAdapter) GetCurrent(ctx context.Context, key string) (*ports.CurrentConditions, error) {
	var current ports.CurrentConditions
	if err := w.get(ctx, key, &current); err != nil {
		return nil, err
	}
	return &current, nil
}

func (w *WeatherCacheAdapter) SetCurrent(ctx context.Context, key string, current *ports.CurrentConditions, ttl time.Duration) error {
	if current == nil {
		return errors.NewValidationError("current conditions cannot be nil")
	}
	return w.set(ctx, key, current, ttl)
}

func (w *WeatherCacheAdapter) get(ctx context.Context, key string, dst interface{}) error {
	data, err := w.cacheProvider.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.NewExternalAPIError("failed to deserialize cached weather", err)
	}
	return nil
}

func (w *WeatherCacheAdapter) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewExternalAPIError("failed to serialize weather", err)
	}
	return w.cacheProvider.Set(ctx, key, data, ttl)
}
