package i18n

import (
	"fmt"
	"strings"
	"time"

	"allweather.app/pkg/dates"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var arabicWeekdays = [...]string{
	"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت",
}

// Column headers for the Sunday-first calendar grid.
var shortWeekdays = map[Locale][7]string{
	English: {"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	Arabic:  {"أح", "اث", "ث", "أر", "خ", "ج", "س"},
}

// MonthName returns the full month name.
func MonthName(locale Locale, month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	if locale == Arabic {
		return arabicMonths[month-1]
	}
	return month.String()
}

// WeekdayName returns the full weekday name.
func WeekdayName(locale Locale, day time.Weekday) string {
	if day < time.Sunday || day > time.Saturday {
		return ""
	}
	if locale == Arabic {
		return arabicWeekdays[day]
	}
	return day.String()
}

// WeekdayHeaders returns the abbreviated weekday names, Sunday first.
func WeekdayHeaders(locale Locale) [7]string {
	if headers, ok := shortWeekdays[locale]; ok {
		return headers
	}
	return shortWeekdays[DefaultLocale]
}

// MonthTitle renders a month heading such as "October 2026".
func MonthTitle(locale Locale, m dates.Month) string {
	return FormatDigits(locale, fmt.Sprintf("%s %d", MonthName(locale, m.Month), m.Year))
}

// LongDate renders a date the way the site shows it in notifications:
// "Wednesday, October 14, 2026" or "الأربعاء، ١٤ أكتوبر ٢٠٢٦".
func LongDate(locale Locale, d dates.Date) string {
	if d.IsZero() {
		return ""
	}
	if locale == Arabic {
		s := fmt.Sprintf("%s، %d %s %d", WeekdayName(locale, d.Weekday()), d.Day, MonthName(locale, d.Month), d.Year)
		return FormatDigits(locale, s)
	}
	return fmt.Sprintf("%s, %s %d, %d", d.Weekday(), d.Month, d.Day, d.Year)
}

// FormatDigits converts ASCII digits to Arabic-Indic digits for Arabic.
func FormatDigits(locale Locale, s string) string {
	if locale != Arabic {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune('٠' + (r - '0'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
