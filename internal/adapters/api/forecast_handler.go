package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"allweather.app/internal/core/scheduler"
	"allweather.app/internal/i18n"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

func localeOf(c *gin.Context) i18n.Locale {
	return i18n.ParseLocale(c.Query("locale"))
}

// getForecast handles GET /api/forecast requests
func (s *HTTPServerAdapter) getForecast(c *gin.Context) {
	f := s.forecastService.Forecast()
	s.logger.Debug("Forecast requested", ports.F("days", f.Len()))
	c.JSON(http.StatusOK, newForecastResponse(f, localeOf(c)))
}

// getCurrentWeather handles GET /api/weather/current requests. Missing data
// is reported in the body rather than as an error status.
func (s *HTTPServerAdapter) getCurrentWeather(c *gin.Context) {
	locale := localeOf(c)
	current, ok := s.forecastService.Current()
	if !ok {
		c.JSON(http.StatusOK, currentWeatherResponse{
			Available: false,
			Message:   i18n.T(locale, i18n.KeyWeatherUnavailable),
		})
		return
	}
	c.JSON(http.StatusOK, newCurrentWeatherResponse(current, locale))
}

// getCalendar handles GET /api/calendar requests
func (s *HTTPServerAdapter) getCalendar(c *gin.Context) {
	today := dates.Today(s.now, s.site.Location)
	month := today.MonthOf()
	if raw := c.Query("month"); raw != "" {
		parsed, err := dates.ParseMonth(raw)
		if err != nil {
			s.handleError(c, errors.NewValidationError("month must be formatted as YYYY-MM"))
			return
		}
		month = parsed
	}

	grid := scheduler.BuildGrid(month, today, dates.Date{}, s.forecastService.Forecast(), localeOf(c))
	c.JSON(http.StatusOK, newCalendarResponse(grid))
}
