package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"12345678", true},
		{"+973 3993 9053", true},
		{"(973) 3993-9053", true},
		{"123", false},
		{"1234567", false},
		{"3993-90x3", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPhone(tt.phone))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ali@example.com", true},
		{"ops@allweather.bh", true},
		{" ali@example.com ", true},
		{"not-an-email", false},
		{"ali@example", false},
		{"ali @example.com", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestTrimAndValidate(t *testing.T) {
	value, ok := TrimAndValidate("  Ali  ")
	assert.True(t, ok)
	assert.Equal(t, "Ali", value)

	_, ok = TrimAndValidate("   ")
	assert.False(t, ok)
	assert.False(t, IsNotEmpty("\t"))
}
