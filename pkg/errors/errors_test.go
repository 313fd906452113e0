package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "test validation error")
			},
			expected: "VALIDATION_ERROR: test validation error",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("original error")
				return Wrap(NotificationError, "whatsapp send failed", cause)
			},
			expected: "NOTIFICATION_ERROR: whatsapp send failed (caused by: original error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ExternalAPIError, "forecast call failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Nil(t, New(NotFoundError, "no sample").Unwrap())
}

func TestNewFieldValidationError(t *testing.T) {
	fields := map[string]string{"name": "Name is required", "email": "Invalid email"}
	err := NewFieldValidationError("invalid booking form", fields)

	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, fields, err.Fields)
	assert.True(t, IsValidationError(err))
}

func TestTypeOf_WrappedChain(t *testing.T) {
	inner := NewExternalAPIError("all staff channels failed", nil)
	wrapped := fmt.Errorf("submit booking: %w", inner)

	assert.Equal(t, ExternalAPIError, TypeOf(wrapped))
	assert.True(t, IsExternalAPIError(wrapped))
	assert.False(t, IsDatabaseError(wrapped))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "VALIDATION_ERROR"},
		{ErrorTypeNotFound, "NOT_FOUND_ERROR"},
		{ErrorTypeConflict, "CONFLICT_ERROR"},
		{ErrorTypeDatabase, "DATABASE_ERROR"},
		{ErrorTypeExternalAPI, "EXTERNAL_API_ERROR"},
		{ErrorTypeEmail, "EMAIL_ERROR"},
		{ErrorTypeNotification, "NOTIFICATION_ERROR"},
		{ErrorTypeConfiguration, "CONFIGURATION_ERROR"},
		{ErrorTypeUnknown, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsNotFoundError(NewNotFoundError("cache miss")))
	assert.True(t, IsEmailError(NewEmailError("smtp down", nil)))
	assert.True(t, IsConfigurationError(NewConfigurationError("bad port", nil)))
	assert.True(t, IsDatabaseError(NewDatabaseError("insert failed", nil)))
	assert.True(t, IsNotificationError(NewNotificationError("whatsapp down", nil)))
	assert.True(t, IsConflictError(NewConflictError("busy")))
	assert.False(t, IsNotFoundError(nil))
}

func TestFieldsOf(t *testing.T) {
	fields := map[string]string{"phone": "Invalid phone number"}
	wrapped := fmt.Errorf("submit: %w", NewFieldValidationError("invalid booking", fields))

	assert.Equal(t, fields, FieldsOf(wrapped))
	assert.Nil(t, FieldsOf(NewValidationError("plain")))
	assert.Nil(t, FieldsOf(fmt.Errorf("not an app error")))
}
