// Package i18n holds the typed translation catalogs for the booking flow.
// Every supported locale must define every Key; Validate is called at startup.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"allweather.app/pkg/errors"
)

// Locale is a supported language tag.
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
)

// DefaultLocale is used for unknown or empty tags.
const DefaultLocale = English

// Supported lists the locales in display order.
var Supported = []Locale{English, Arabic}

// ParseLocale maps a tag such as "ar", "ar-BH" or "en_US" to a supported
// locale, falling back to English.
func ParseLocale(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	switch Locale(tag) {
	case Arabic:
		return Arabic
	default:
		return English
	}
}

func (l Locale) String() string {
	return string(l)
}

// IsRTL reports whether the locale is written right to left.
func (l Locale) IsRTL() bool {
	return l == Arabic
}

// Key identifies a translatable string.
type Key string

const (
	KeyNameRequired  Key = "validation.name_required"
	KeyPhoneRequired Key = "validation.phone_required"
	KeyPhoneInvalid  Key = "validation.phone_invalid"
	KeyEmailInvalid  Key = "validation.email_invalid"
	KeyDateRequired  Key = "validation.date_required"
	KeyDateInPast    Key = "validation.date_in_past"

	KeyWindSafe          Key = "wind.safe"
	KeyWindCaution       Key = "wind.caution"
	KeyWindDanger        Key = "wind.danger"
	KeyMayBeRescheduled  Key = "wind.may_be_rescheduled"
	KeyWindWarning       Key = "wind.warning"
	KeyWindWarningDetail Key = "wind.warning_detail"

	KeyBookingConfirmed Key = "booking.confirmed"
	KeyBookingFailed    Key = "booking.failed"
	KeyBookingSubmitted Key = "booking.submitted"
	KeyConfirmBooking   Key = "booking.confirm"
	KeySubmitting       Key = "booking.submitting"
	KeySelectDate       Key = "booking.select_date"

	KeyNotProvided  Key = "common.not_provided"
	KeyNotAvailable Key = "common.not_available"

	KeyFieldName    Key = "field.name"
	KeyFieldPhone   Key = "field.phone"
	KeyFieldAddress Key = "field.address"
	KeyFieldEmail   Key = "field.email"
	KeyFieldDate    Key = "field.date"

	KeyMessageTitle       Key = "message.title"
	KeyMessageClient      Key = "message.client"
	KeyMessagePhone       Key = "message.phone"
	KeyMessageAddress     Key = "message.address"
	KeyMessageEmail       Key = "message.email"
	KeyMessageDate        Key = "message.date"
	KeyMessageWeather     Key = "message.weather"
	KeyMessageWind        Key = "message.wind"
	KeyMessageDegree      Key = "message.degree"
	KeyMessageSpeedUnit   Key = "message.speed_unit"
	KeyMessageAutomated   Key = "message.automated"
	KeyAdminEmailSubject  Key = "email.admin_subject"
	KeyCustomerSubject    Key = "email.customer_subject"
	KeyCustomerHeading    Key = "email.customer_heading"
	KeyCustomerGreeting   Key = "email.customer_greeting"
	KeyCustomerThanks     Key = "email.customer_thanks"
	KeyCustomerService    Key = "email.customer_service"
	KeyCustomerServiceVal Key = "email.customer_service_value"
	KeyCustomerFollowUp   Key = "email.customer_follow_up"
	KeyCustomerInquiries  Key = "email.customer_inquiries"

	KeyWhatsAppGreeting Key = "contact.whatsapp_greeting"

	KeyWeatherUnavailable Key = "weather.unavailable"
	KeyHumidity           Key = "weather.humidity"
)

// Keys is the complete key set every catalog must cover.
var Keys = []Key{
	KeyNameRequired, KeyPhoneRequired, KeyPhoneInvalid, KeyEmailInvalid, KeyDateRequired, KeyDateInPast,
	KeyWindSafe, KeyWindCaution, KeyWindDanger, KeyMayBeRescheduled, KeyWindWarning, KeyWindWarningDetail,
	KeyBookingConfirmed, KeyBookingFailed, KeyBookingSubmitted, KeyConfirmBooking, KeySubmitting, KeySelectDate,
	KeyNotProvided, KeyNotAvailable,
	KeyFieldName, KeyFieldPhone, KeyFieldAddress, KeyFieldEmail, KeyFieldDate,
	KeyMessageTitle, KeyMessageClient, KeyMessagePhone, KeyMessageAddress, KeyMessageEmail,
	KeyMessageDate, KeyMessageWeather, KeyMessageWind, KeyMessageDegree, KeyMessageSpeedUnit, KeyMessageAutomated,
	KeyAdminEmailSubject, KeyCustomerSubject, KeyCustomerHeading, KeyCustomerGreeting, KeyCustomerThanks,
	KeyCustomerService, KeyCustomerServiceVal, KeyCustomerFollowUp, KeyCustomerInquiries,
	KeyWhatsAppGreeting,
	KeyWeatherUnavailable, KeyHumidity,
}

// Catalog maps keys to strings for one locale.
type Catalog map[Key]string

var catalogs = map[Locale]Catalog{
	English: english,
	Arabic:  arabic,
}

// Validate checks that every supported locale defines every key.
func Validate() error {
	return validateCatalogs(catalogs)
}

func validateCatalogs(all map[Locale]Catalog) error {
	var problems []string
	for _, locale := range Supported {
		catalog, ok := all[locale]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: catalog missing", locale))
			continue
		}
		var missing []string
		for _, key := range Keys {
			if strings.TrimSpace(catalog[key]) == "" {
				missing = append(missing, string(key))
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			problems = append(problems, fmt.Sprintf("%s: missing %s", locale, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return errors.NewConfigurationError("translation catalogs incomplete: "+strings.Join(problems, "; "), nil)
	}
	return nil
}

// T returns the string for key in locale, falling back to English.
func T(locale Locale, key Key) string {
	if s, ok := catalogs[locale][key]; ok {
		return s
	}
	if s, ok := catalogs[DefaultLocale][key]; ok {
		return s
	}
	return string(key)
}

// Tf formats the string for key with args.
func Tf(locale Locale, key Key, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
