package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

func newTestOpenWeatherMap(t *testing.T, handler http.HandlerFunc) *OpenWeatherMapProviderAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: server.URL,
		Logger:  setupLoggerMock(t),
	})
}

func TestOpenWeatherMapProvider_GetForecast_Success(t *testing.T) {
	provider := newTestOpenWeatherMap(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "26.0275", r.URL.Query().Get("lat"))
		assert.Equal(t, "50.55", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"list": [
				{"dt": 1792054800, "main": {"temp": 31.4}, "weather": [{"icon": "01d", "description": "clear sky"}], "wind": {"speed": 5.2}},
				{"dt": 1792065600, "main": {"temp": 29.9}, "weather": [], "wind": {"speed": 10.1}}
			]
		}`))
		assert.NoError(t, err)
	})

	readings, err := provider.GetForecast(context.Background(), 26.0275, 50.55)

	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, time.Unix(1792054800, 0).UTC(), readings[0].Timestamp)
	assert.Equal(t, 31.4, readings[0].TemperatureC)
	assert.Equal(t, "01d", readings[0].Icon)
	assert.Equal(t, "clear sky", readings[0].Description)
	assert.Equal(t, 5.2, readings[0].WindSpeedMs)
	assert.Empty(t, readings[1].Icon)
	assert.Equal(t, 10.1, readings[1].WindSpeedMs)
}

func TestOpenWeatherMapProvider_GetCurrent_Success(t *testing.T) {
	provider := newTestOpenWeatherMap(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		_, err := w.Write([]byte(`{
			"dt": 1792054800,
			"main": {"temp": 33.2, "humidity": 64},
			"weather": [{"icon": "50d", "description": "haze"}],
			"wind": {"speed": 4.6}
		}`))
		assert.NoError(t, err)
	})

	current, err := provider.GetCurrent(context.Background(), 26.0275, 50.55)

	require.NoError(t, err)
	assert.Equal(t, &ports.CurrentConditions{
		TemperatureC: 33.2,
		Humidity:     64,
		Icon:         "50d",
		Description:  "haze",
		WindSpeedMs:  4.6,
		ObservedAt:   time.Unix(1792054800, 0).UTC(),
	}, current)
}

func TestOpenWeatherMapProvider_MissingAPIKey(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		BaseURL: server.URL,
		Logger:  setupLoggerMock(t),
	})

	_, err := provider.GetForecast(context.Background(), 26.0275, 50.55)

	assert.True(t, errors.IsExternalAPIError(err))
	assert.Zero(t, calls.Load())
}

func TestOpenWeatherMapProvider_ErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"cod":401,"message":"Invalid API key"}`},
		{name: "server error", status: http.StatusBadGateway, body: `bad gateway`},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`},
		{name: "malformed body", status: http.StatusOK, body: `{"list": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestOpenWeatherMap(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			readings, err := provider.GetForecast(context.Background(), 26.0275, 50.55)

			assert.Nil(t, readings)
			assert.True(t, errors.IsExternalAPIError(err))
		})
	}
}

func TestOpenWeatherMapProvider_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	provider := newTestOpenWeatherMap(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 5; i++ {
		_, err := provider.GetForecast(context.Background(), 26.0275, 50.55)
		require.Error(t, err)
	}
	_, err := provider.GetForecast(context.Background(), 26.0275, 50.55)

	assert.True(t, errors.IsExternalAPIError(err))
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, int32(5), calls.Load())
}

func TestOpenWeatherMapProvider_GetProviderName(t *testing.T) {
	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{APIKey: "k", Logger: setupLoggerMock(t)})
	assert.Equal(t, "openweathermap", provider.GetProviderName())
}
