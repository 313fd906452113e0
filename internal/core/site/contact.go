// Package site holds the public site's contact link and crawler metadata.
package site

import (
	"net/url"
	"strings"

	"allweather.app/internal/i18n"
)

// ContactLink returns a wa.me deep link opening a chat with number
// prefilled with the localized greeting. Non-digits in number are dropped.
func ContactLink(number string, locale i18n.Locale) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String() + "?text=" + encodeURIComponent(i18n.T(locale, i18n.KeyWhatsAppGreeting))
}

// encodeURIComponent percent-encodes s with %20 for spaces.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
