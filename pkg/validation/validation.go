package validation

import (
	"regexp"
	"strings"
)

var (
	// Local and international formats.
	phoneRegex = regexp.MustCompile(`^[\d\s+()\-]{8,}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsValidPhone reports whether s looks like a phone number: digits, spaces,
// '+', parentheses and hyphens, at least 8 characters.
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(s))
}

// IsValidEmail validates the basic local@domain.tld shape
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
