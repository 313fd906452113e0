package api

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/forecast"
	"allweather.app/internal/i18n"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

// requiredMessages localizes missing-field binding failures. An unusable
// date is always reported as missing.
var requiredMessages = map[string]i18n.Key{
	booking.FieldName:  i18n.KeyNameRequired,
	booking.FieldPhone: i18n.KeyPhoneRequired,
}

// postBooking handles POST /api/booking requests
func (s *HTTPServerAdapter) postBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Booking request rejected by binding", ports.F("error", err))
		s.handleError(c, bindingError(err, i18n.ParseLocale(req.Locale)))
		return
	}

	locale := i18n.ParseLocale(req.Locale)
	var day dates.Date
	if err := day.UnmarshalTextIn([]byte(strings.TrimSpace(req.Date)), s.site.Location); err != nil {
		s.handleError(c, errors.NewFieldValidationError("invalid booking", map[string]string{
			booking.FieldDate: i18n.T(locale, i18n.KeyDateRequired),
		}))
		return
	}

	submit := booking.SubmitRequest{
		Form: booking.Form{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
			Email:   req.Email,
		},
		Date:   day,
		Locale: locale,
	}
	if req.Weather != nil {
		submit.Weather = &forecast.ForecastSample{
			Date:          day,
			TemperatureC:  forecast.RoundTemperature(req.Weather.Temp),
			ConditionIcon: req.Weather.Icon,
			Description:   req.Weather.Description,
			WindSpeedMs:   req.Weather.WindSpeed,
		}
	}

	result, err := s.bookingService.Submit(c.Request.Context(), submit)
	if err != nil {
		status, body := statusFor(err)
		if status == http.StatusServiceUnavailable {
			body.Error = i18n.T(locale, i18n.KeyBookingFailed)
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("Booking failed", ports.F("error", err))
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, bookingResponse{
		Success:   result.Success,
		Message:   result.Message,
		BookingID: result.BookingID,
	})
}

// bindingError turns a gin binding failure into a validation error. Missing
// required fields are reported per field.
func bindingError(err error, locale i18n.Locale) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.NewValidationError("Invalid request format")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if field == booking.FieldDate {
			fields[field] = i18n.T(locale, i18n.KeyDateRequired)
			continue
		}
		if key, ok := requiredMessages[field]; ok && fe.Tag() == "required" {
			fields[field] = i18n.T(locale, key)
			continue
		}
		fields[field] = fe.Error()
	}
	return errors.NewFieldValidationError("Missing required fields", fields)
}

// getRecentBookings handles GET /api/bookings/recent requests
func (s *HTTPServerAdapter) getRecentBookings(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.handleError(c, errors.NewValidationError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	records, err := s.bookingService.Recent(c.Request.Context(), limit)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": newBookingRecordDTOs(records)})
}
