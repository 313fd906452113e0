package ports

import (
	"context"
	"time"
)

// ForecastReading is one raw, timestamped reading from a forecast provider.
type ForecastReading struct {
	Timestamp    time.Time `json:"timestamp"`
	TemperatureC float64   `json:"temperature_c"`
	Icon         string    `json:"icon"`
	Description  string    `json:"description"`
	WindSpeedMs  float64   `json:"wind_speed_ms"`
}

// CurrentConditions is the provider's latest observation for a point.
type CurrentConditions struct {
	TemperatureC float64   `json:"temperature_c"`
	Humidity     float64   `json:"humidity"`
	Icon         string    `json:"icon"`
	Description  string    `json:"description"`
	WindSpeedMs  float64   `json:"wind_speed_ms"`
	ObservedAt   time.Time `json:"observed_at"`
}

// ForecastProvider defines the contract for weather data providers
type ForecastProvider interface {
	GetForecast(ctx context.Context, lat, lon float64) ([]ForecastReading, error)
	GetCurrent(ctx context.Context, lat, lon float64) (*CurrentConditions, error)
	GetProviderName() string
}

// WeatherCache defines the contract for caching provider responses
type WeatherCache interface {
	GetForecast(ctx context.Context, key string) ([]ForecastReading, error)
	SetForecast(ctx context.Context, key string, readings []ForecastReading, ttl time.Duration) error
	GetCurrent(ctx context.Context, key string) (*CurrentConditions, error)
	SetCurrent(ctx context.Context, key string, current *CurrentConditions, ttl time.Duration) error
}
