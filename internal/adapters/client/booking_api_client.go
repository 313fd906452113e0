// Package client talks to the booking API on behalf of the kiosk.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/forecast"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// BookingAPIClient implements the scheduler's ForecastSource and Submitter
// over HTTP.
type BookingAPIClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  ports.Logger
}

type BookingAPIClientParams struct {
	BaseURL string
	// Client defaults to an http.Client with a 15s timeout.
	Client *http.Client
	Logger ports.Logger
}

func NewBookingAPIClient(params BookingAPIClientParams) (*BookingAPIClient, error) {
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	base, err := url.Parse(strings.TrimRight(params.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.NewConfigurationError(fmt.Sprintf("invalid booking API URL %q", params.BaseURL), err)
	}
	if params.Client == nil {
		params.Client = &http.Client{Timeout: defaultTimeout}
	}
	return &BookingAPIClient{baseURL: base, http: params.Client, logger: params.Logger}, nil
}

type forecastPayload struct {
	Days []struct {
		Date        dates.Date `json:"date"`
		Temp        int        `json:"temp"`
		Icon        string     `json:"icon"`
		Description string     `json:"description"`
		WindSpeed   float64    `json:"windSpeed"`
	} `json:"days"`
}

// Forecast fetches the daily forecast. Any failure is logged and yields an
// empty slice.
func (c *BookingAPIClient) Forecast(ctx context.Context) []forecast.ForecastSample {
	var payload forecastPayload
	if err := c.getJSON(ctx, "/api/forecast", &payload); err != nil {
		c.logger.Warn("Kiosk forecast unavailable", ports.F("error", err))
		return []forecast.ForecastSample{}
	}

	samples := make([]forecast.ForecastSample, 0, len(payload.Days))
	for _, d := range payload.Days {
		samples = append(samples, forecast.ForecastSample{
			Date:          d.Date,
			TemperatureC:  d.Temp,
			ConditionIcon: d.Icon,
			Description:   d.Description,
			WindSpeedMs:   d.WindSpeed,
		})
	}
	return samples
}

type currentPayload struct {
	Available   bool      `json:"available"`
	Temp        int       `json:"temp"`
	Humidity    int       `json:"humidity"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	WindSpeed   float64   `json:"windSpeed"`
	ObservedAt  time.Time `json:"observedAt"`
}

// Current fetches current conditions; ok is false when the server has none
// or cannot be reached.
func (c *BookingAPIClient) Current(ctx context.Context) (forecast.CurrentWeather, bool) {
	var payload currentPayload
	if err := c.getJSON(ctx, "/api/weather/current", &payload); err != nil {
		c.logger.Warn("Kiosk current conditions unavailable", ports.F("error", err))
		return forecast.CurrentWeather{}, false
	}
	if !payload.Available {
		return forecast.CurrentWeather{}, false
	}
	return forecast.CurrentWeather{
		TemperatureC:  payload.Temp,
		Humidity:      payload.Humidity,
		ConditionIcon: payload.Icon,
		Description:   payload.Description,
		WindSpeedMs:   payload.WindSpeed,
		ObservedAt:    payload.ObservedAt,
	}, true
}

type submitPayload struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address string          `json:"address,omitempty"`
	Email   string          `json:"email,omitempty"`
	Date    string          `json:"date"`
	Weather *weatherPayload `json:"weather,omitempty"`
	Locale  string          `json:"locale"`
}

type weatherPayload struct {
	Temp        int     `json:"temp"`
	Icon        string  `json:"icon,omitempty"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"windSpeed"`
}

type submitResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	BookingID string            `json:"bookingId"`
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields"`
}

// Submit posts a booking. A 400 comes back as a field validation error; any
// other failure is an external API error the kiosk may retry.
func (c *BookingAPIClient) Submit(ctx context.Context, req booking.SubmitRequest) (*booking.Result, error) {
	payload := submitPayload{
		Name:    req.Form.Name,
		Phone:   req.Form.Phone,
		Address: req.Form.Address,
		Email:   req.Form.Email,
		Date:    req.Date.String(),
		Locale:  req.Locale.String(),
	}
	if w := req.Weather; w != nil {
		payload.Weather = &weatherPayload{
			Temp:        w.TemperatureC,
			Icon:        w.ConditionIcon,
			Description: w.Description,
			WindSpeed:   w.WindSpeedMs,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode booking: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/booking"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.NewExternalAPIError("booking API unreachable", err)
	}
	defer c.closeBody(resp)

	var decoded submitResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&decoded); err != nil {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("booking API returned status %d", resp.StatusCode), err)
	}

	switch {
	case resp.StatusCode == http.StatusOK && decoded.Success:
		c.logger.Info("Booking submitted", ports.F("booking_id", decoded.BookingID))
		return &booking.Result{Success: true, Message: decoded.Message, BookingID: decoded.BookingID}, nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil, errors.NewFieldValidationError(decoded.Error, decoded.Fields)
	default:
		return nil, errors.NewExternalAPIError(fmt.Sprintf("booking API returned status %d: %s", resp.StatusCode, decoded.Error), nil)
	}
}

func (c *BookingAPIClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewExternalAPIError("booking API unreachable", err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return errors.NewExternalAPIError(fmt.Sprintf("%s returned status %d", path, resp.StatusCode), nil)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return errors.NewExternalAPIError(fmt.Sprintf("decode %s", path), err)
	}
	return nil
}

func (c *BookingAPIClient) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *BookingAPIClient) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn("Failed to close response body", ports.F("error", err))
	}
}
