package api

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"allweather.app/pkg/dates"
)

var registerValidatorsOnce sync.Once

// validateCalendarDate accepts YYYY-MM-DD and RFC 3339 timestamps.
func validateCalendarDate(fl validator.FieldLevel) bool {
	var day dates.Date
	return day.UnmarshalText([]byte(strings.TrimSpace(fl.Field().String()))) == nil
}

// registerValidators installs the custom binding tags on gin's validator.
// The engine is process wide, so registration happens once.
func registerValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			err = v.RegisterValidation("calendar_date", validateCalendarDate)
		}
	})
	return err
}
