package api

import (
	"time"

	"allweather.app/internal/core/forecast"
	"allweather.app/internal/core/scheduler"
	"allweather.app/internal/i18n"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
)

type forecastSampleDTO struct {
	Date        dates.Date        `json:"date"`
	Temp        int               `json:"temp"`
	Icon        string            `json:"icon"`
	IconPath    string            `json:"iconPath"`
	Description string            `json:"description"`
	WindSpeed   float64           `json:"windSpeed"`
	Risk        forecast.WindRisk `json:"risk"`
	Advisory    string            `json:"advisory"`
}

type forecastResponse struct {
	FetchedAt *time.Time          `json:"fetchedAt,omitempty"`
	Days      []forecastSampleDTO `json:"days"`
}

func newForecastResponse(f *forecast.Forecast, locale i18n.Locale) forecastResponse {
	samples := f.Samples()
	resp := forecastResponse{Days: make([]forecastSampleDTO, 0, len(samples))}
	if fetched := f.FetchedAt(); !fetched.IsZero() {
		resp.FetchedAt = &fetched
	}
	for _, s := range samples {
		resp.Days = append(resp.Days, forecastSampleDTO{
			Date:        s.Date,
			Temp:        s.TemperatureC,
			Icon:        s.ConditionIcon,
			IconPath:    s.IconPath(),
			Description: s.Description,
			WindSpeed:   s.WindSpeedMs,
			Risk:        s.Risk(),
			Advisory:    s.Risk().Advisory(locale),
		})
	}
	return resp
}

type currentWeatherResponse struct {
	Available   bool               `json:"available"`
	Message     string             `json:"message,omitempty"`
	Temp        *int               `json:"temp,omitempty"`
	Humidity    *int               `json:"humidity,omitempty"`
	Icon        string             `json:"icon,omitempty"`
	IconPath    string             `json:"iconPath,omitempty"`
	Description string             `json:"description,omitempty"`
	WindSpeed   *float64           `json:"windSpeed,omitempty"`
	Risk        *forecast.WindRisk `json:"risk,omitempty"`
	WindStatus  string             `json:"windStatus,omitempty"`
	ObservedAt  *time.Time         `json:"observedAt,omitempty"`
}

func newCurrentWeatherResponse(current forecast.CurrentWeather, locale i18n.Locale) currentWeatherResponse {
	risk := current.Risk()
	return currentWeatherResponse{
		Available:   true,
		Temp:        &current.TemperatureC,
		Humidity:    &current.Humidity,
		Icon:        current.ConditionIcon,
		IconPath:    forecast.IconPath(current.ConditionIcon),
		Description: current.Description,
		WindSpeed:   &current.WindSpeedMs,
		Risk:        &risk,
		WindStatus:  risk.Advisory(locale),
		ObservedAt:  &current.ObservedAt,
	}
}

type calendarCellDTO struct {
	Date     dates.Date         `json:"date"`
	Label    string             `json:"label"`
	Disabled bool               `json:"disabled"`
	Today    bool               `json:"today"`
	Risk     *forecast.WindRisk `json:"risk,omitempty"`
}

type calendarResponse struct {
	Month   string            `json:"month"`
	Title   string            `json:"title"`
	Headers [7]string         `json:"headers"`
	Leading int               `json:"leading"`
	Cells   []calendarCellDTO `json:"cells"`
}

func newCalendarResponse(grid scheduler.Grid) calendarResponse {
	resp := calendarResponse{
		Month:   grid.Month.String(),
		Title:   grid.Title,
		Headers: grid.Headers,
		Leading: grid.Leading,
		Cells:   make([]calendarCellDTO, 0, len(grid.Cells)),
	}
	for _, cell := range grid.Cells {
		dto := calendarCellDTO{
			Date:     cell.Date,
			Label:    cell.Label,
			Disabled: cell.Disabled,
			Today:    cell.Today,
		}
		if cell.HasRisk {
			risk := cell.Risk
			dto.Risk = &risk
		}
		resp.Cells = append(resp.Cells, dto)
	}
	return resp
}

// bookingRequest is the payload posted by the booking form.
type bookingRequest struct {
	Name    string          `json:"name" binding:"required"`
	Phone   string          `json:"phone" binding:"required"`
	Address string          `json:"address"`
	Email   string          `json:"email"`
	Date    string          `json:"date" binding:"required,calendar_date"`
	Weather *weatherPayload `json:"weather"`
	Locale  string          `json:"locale"`
}

type weatherPayload struct {
	Temp        float64 `json:"temp"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"windSpeed" binding:"gte=0"`
}

type bookingResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
}

type bookingRecordDTO struct {
	BookingID   string    `json:"bookingId"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address,omitempty"`
	Email       string    `json:"email,omitempty"`
	Date        string    `json:"date"`
	Locale      string    `json:"locale"`
	Temp        *float64  `json:"temp,omitempty"`
	Description string    `json:"description,omitempty"`
	WindSpeed   *float64  `json:"windSpeed,omitempty"`
	WindRisk    string    `json:"windRisk,omitempty"`
	Notified    []string  `json:"notified"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newBookingRecordDTOs(records []*ports.BookingRecord) []bookingRecordDTO {
	out := make([]bookingRecordDTO, 0, len(records))
	for _, r := range records {
		notified := r.Notified
		if notified == nil {
			notified = []string{}
		}
		out = append(out, bookingRecordDTO{
			BookingID:   r.BookingID,
			Name:        r.Name,
			Phone:       r.Phone,
			Address:     r.Address,
			Email:       r.Email,
			Date:        r.Date,
			Locale:      r.Locale,
			Temp:        r.TemperatureC,
			Description: r.Description,
			WindSpeed:   r.WindSpeedMs,
			WindRisk:    r.WindRisk,
			Notified:    notified,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}

type contactResponse struct {
	URL    string `json:"url"`
	Number string `json:"number"`
}
