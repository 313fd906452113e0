package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

const openWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherMapProviderAdapter implements ForecastProvider for the
// OpenWeatherMap 5 day / 3 hour forecast and current weather endpoints.
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Client  HTTPClient
	Logger  ports.Logger
}

type owmCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
}

type owmForecastItem struct {
	Dt      int64          `json:"dt"`
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
	Wind    owmWind        `json:"wind"`
}

type owmForecastResponse struct {
	List []owmForecastItem `json:"list"`
}

type owmCurrentResponse = owmForecastItem

func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = openWeatherMapBaseURL
	}
	client := params.Client
	if client == nil {
		client = newHTTPClient()
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  client,
		breaker: newBreaker("openweathermap"),
		logger:  params.Logger,
	}
}

func (p *OpenWeatherMapProviderAdapter) GetForecast(ctx context.Context, lat, lon float64) ([]ports.ForecastReading, error) {
	var payload owmForecastResponse
	if err := p.fetch(ctx, "forecast", lat, lon, &payload); err != nil {
		return nil, err
	}

	readings := make([]ports.ForecastReading, 0, len(payload.List))
	for _, item := range payload.List {
		readings = append(readings, item.reading())
	}
	return readings, nil
}

func (p *OpenWeatherMapProviderAdapter) GetCurrent(ctx context.Context, lat, lon float64) (*ports.CurrentConditions, error) {
	var payload owmCurrentResponse
	if err := p.fetch(ctx, "weather", lat, lon, &payload); err != nil {
		return nil, err
	}

	reading := payload.reading()
	return &ports.CurrentConditions{
		TemperatureC: reading.TemperatureC,
		Humidity:     payload.Main.Humidity,
		Icon:         reading.Icon,
		Description:  reading.Description,
		WindSpeedMs:  reading.WindSpeedMs,
		ObservedAt:   reading.Timestamp,
	}, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

func (item owmForecastItem) reading() ports.ForecastReading {
	r := ports.ForecastReading{
		Timestamp:    time.Unix(item.Dt, 0).UTC(),
		TemperatureC: item.Main.Temp,
		WindSpeedMs:  item.Wind.Speed,
	}
	if len(item.Weather) > 0 {
		r.Icon = item.Weather[0].Icon
		r.Description = item.Weather[0].Description
	}
	return r
}

func (p *OpenWeatherMapProviderAdapter) fetch(ctx context.Context, endpoint string, lat, lon float64, dst interface{}) error {
	if p.apiKey == "" {
		return errors.NewExternalAPIError("OpenWeatherMap API key missing", nil)
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("appid", p.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, query.Encode()), nil)
	if err != nil {
		return errors.NewExternalAPIError("failed to build OpenWeatherMap request", err)
	}

	resp, err := doWithBreaker(p.client, p.breaker, req, p.logger)
	if err != nil {
		return err
	}
	defer closeBody(resp, p.logger)

	if resp.StatusCode != http.StatusOK {
		p.logger.Debug("OpenWeatherMap error response",
			ports.F("status", resp.StatusCode),
			ports.F("body", readErrorBody(resp)))
		return errors.NewExternalAPIError(fmt.Sprintf("OpenWeatherMap returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return errors.NewExternalAPIError("failed to decode OpenWeatherMap response", err)
	}
	return nil
}
