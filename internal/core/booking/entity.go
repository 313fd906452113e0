package booking

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"allweather.app/internal/core/forecast"
	"allweather.app/internal/i18n"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
	"allweather.app/pkg/validation"
)

// Form field identifiers used as keys in ValidationErrors.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldEmail   = "email"
	FieldDate    = "date"
)

// Form holds the customer's contact details as entered.
type Form struct {
	Name    string
	Phone   string
	Address string
	Email   string
}

// Normalize returns a copy with surrounding whitespace removed.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
		Email:   strings.TrimSpace(f.Email),
	}
}

// Validate checks every field and reports all failures, localized. The
// result is nil when the form is acceptable.
func (f Form) Validate(locale i18n.Locale) ValidationErrors {
	errs := ValidationErrors{}

	if !validation.IsNotEmpty(f.Name) {
		errs[FieldName] = i18n.T(locale, i18n.KeyNameRequired)
	}

	switch {
	case !validation.IsNotEmpty(f.Phone):
		errs[FieldPhone] = i18n.T(locale, i18n.KeyPhoneRequired)
	case !validation.IsValidPhone(f.Phone):
		errs[FieldPhone] = i18n.T(locale, i18n.KeyPhoneInvalid)
	}

	if validation.IsNotEmpty(f.Email) && !validation.IsValidEmail(f.Email) {
		errs[FieldEmail] = i18n.T(locale, i18n.KeyEmailInvalid)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidationErrors maps a field identifier to its localized message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "invalid booking: " + strings.Join(parts, "; ")
}

// AppError wraps the field failures in a validation error for transport.
func (v ValidationErrors) AppError() *errors.AppError {
	fields := make(map[string]string, len(v))
	for k, msg := range v {
		fields[k] = msg
	}
	return errors.NewFieldValidationError("invalid booking", fields)
}

// Submission is a booking that has passed validation. It can only be built
// through NewSubmission.
type Submission struct {
	form    Form
	date    dates.Date
	weather *forecast.ForecastSample
	locale  i18n.Locale
}

// NewSubmission validates the form and the date against today and returns
// a submission ready to dispatch. Validation failures come back as an
// *errors.AppError of type ValidationError carrying every failing field.
func NewSubmission(form Form, date dates.Date, weather *forecast.ForecastSample, locale i18n.Locale, today dates.Date) (*Submission, error) {
	form = form.Normalize()

	errs := form.Validate(locale)
	if errs == nil {
		errs = ValidationErrors{}
	}
	switch {
	case date.IsZero():
		errs[FieldDate] = i18n.T(locale, i18n.KeyDateRequired)
	case date.Before(today):
		errs[FieldDate] = i18n.T(locale, i18n.KeyDateInPast)
	}
	if len(errs) > 0 {
		return nil, errs.AppError()
	}

	var snapshot *forecast.ForecastSample
	if weather != nil {
		w := *weather
		snapshot = &w
	}

	return &Submission{
		form:    form,
		date:    date,
		weather: snapshot,
		locale:  locale,
	}, nil
}

func (s *Submission) Form() Form          { return s.form }
func (s *Submission) Date() dates.Date    { return s.date }
func (s *Submission) Locale() i18n.Locale { return s.locale }

// Weather returns the forecast for the booked day, if one was known.
func (s *Submission) Weather() (forecast.ForecastSample, bool) {
	if s.weather == nil {
		return forecast.ForecastSample{}, false
	}
	return *s.weather, true
}

// HighWind reports whether the booked day's wind is above the safe limit.
func (s *Submission) HighWind() bool {
	w, ok := s.Weather()
	return ok && w.Risk().MayBeRescheduled()
}

// Result is returned to the client for an accepted booking.
type Result struct {
	Success   bool
	Message   string
	BookingID string
}

// NewBookingID returns an opaque identifier such as "BK-1F3A9C2E".
func NewBookingID() string {
	id := uuid.New().String()
	return "BK-" + strings.ToUpper(id[:strings.IndexByte(id, '-')])
}
