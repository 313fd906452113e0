package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCalendarDate(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("calendar_date", validateCalendarDate))

	tests := []struct {
		value string
		valid bool
	}{
		{"2026-10-15", true},
		{"2026-10-15T00:00:00.000Z", true},
		{" 2026-10-15 ", true},
		{"tomorrow", false},
		{"2026-02-30", false},
		{"15/10/2026", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := v.Var(tt.value, "calendar_date")
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func TestRegisterValidators_Idempotent(t *testing.T) {
	assert.NoError(t, registerValidators())
	assert.NoError(t, registerValidators())
}
