package booking

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"allweather.app/internal/i18n"
)

// details is the flattened view of a submission shared by every message.
type details struct {
	Name        string
	Phone       string
	Address     string
	Email       string
	Date        string
	Temperature string
	Description string
	WindSpeed   string
	HighWind    bool
}

// newDetails fills missing values in locale. The booked date always follows
// the submission's locale.
func newDetails(s *Submission, locale i18n.Locale) details {
	form := s.Form()
	notProvided := i18n.T(locale, i18n.KeyNotProvided)
	notAvailable := i18n.T(locale, i18n.KeyNotAvailable)

	d := details{
		Name:        form.Name,
		Phone:       form.Phone,
		Address:     orDefault(form.Address, notProvided),
		Email:       orDefault(form.Email, notProvided),
		Date:        i18n.LongDate(s.Locale(), s.Date()),
		Temperature: notAvailable,
		Description: notAvailable,
		WindSpeed:   notAvailable,
		HighWind:    s.HighWind(),
	}
	if w, ok := s.Weather(); ok {
		d.Temperature = strconv.Itoa(w.TemperatureC)
		d.Description = orDefault(w.Description, notAvailable)
		d.WindSpeed = FormatWindSpeed(w.WindSpeedMs)
	}
	return d
}

// FormatWindSpeed prints a wind speed without trailing zeros.
func FormatWindSpeed(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// StaffMessage renders the plain text notification sent to staff over chat.
func StaffMessage(s *Submission) string {
	locale := s.Locale()
	d := newDetails(s, locale)

	lines := []string{
		i18n.T(locale, i18n.KeyMessageTitle),
		"",
		i18n.Tf(locale, i18n.KeyMessageClient, d.Name),
		i18n.Tf(locale, i18n.KeyMessagePhone, d.Phone),
		i18n.Tf(locale, i18n.KeyMessageAddress, d.Address),
		i18n.Tf(locale, i18n.KeyMessageEmail, d.Email),
		i18n.Tf(locale, i18n.KeyMessageDate, d.Date),
		i18n.Tf(locale, i18n.KeyMessageWeather, d.Temperature, d.Description),
		i18n.Tf(locale, i18n.KeyMessageWind, d.WindSpeed),
	}
	if d.HighWind {
		lines = append(lines, i18n.Tf(locale, i18n.KeyWindWarning, d.WindSpeed))
	}
	return strings.Join(lines, "\n")
}

var adminEmailTemplate = template.Must(template.New("admin").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #06b6d4;">🚁 New Booking Request</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 10px; border-bottom: 1px solid #eee;"><strong>Client:</strong></td><td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Name}}</td></tr>
    <tr><td style="padding: 10px; border-bottom: 1px solid #eee;"><strong>Phone:</strong></td><td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Phone}}</td></tr>
    <tr><td style="padding: 10px; border-bottom: 1px solid #eee;"><strong>Address:</strong></td><td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Address}}</td></tr>
    <tr><td style="padding: 10px; border-bottom: 1px solid #eee;"><strong>Email:</strong></td><td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Email}}</td></tr>
    <tr><td style="padding: 10px; border-bottom: 1px solid #eee;"><strong>Date:</strong></td><td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Date}}</td></tr>
    <tr><td style="padding: 10px; border-bottom: 1px solid #eee;"><strong>Weather:</strong></td><td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Temperature}}°C - {{.Description}}</td></tr>
    <tr><td style="padding: 10px; border-bottom: 1px solid #eee;"><strong>Wind Speed:</strong></td><td style="padding: 10px; border-bottom: 1px solid #eee;">{{.WindSpeed}} m/s</td></tr>
  </table>
  {{- if .HighWind}}
  <div style="background: #fef3c7; padding: 15px; border-radius: 8px; margin-top: 20px;">
    <strong>⚠️ Wind Warning:</strong> {{.WindDetail}}
  </div>
  {{- end}}
  <p style="color: #666; font-size: 12px; margin-top: 20px;">{{.Footer}}</p>
</div>`))

var customerEmailTemplate = template.Must(template.New("customer").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;{{if .RTL}} direction: rtl;{{end}}">
  <h2 style="color: #06b6d4;">{{.Heading}}</h2>
  <p>{{.Greeting}}</p>
  <p>{{.Thanks}}</p>
  <ul>
    <li><strong>{{.DateLabel}}:</strong> {{.Date}}</li>
    <li><strong>{{.ServiceLabel}}:</strong> {{.Service}}</li>
  </ul>
  <p>{{.FollowUp}}</p>
  <p>{{.Inquiries}}</p>
</div>`))

// AdminEmail renders the staff email. Staff read English; only the booked
// date follows the customer's locale.
func AdminEmail(s *Submission) (subject, body string, err error) {
	d := newDetails(s, i18n.English)
	subject = i18n.Tf(i18n.English, i18n.KeyAdminEmailSubject, d.Name, d.Date)

	data := struct {
		details
		WindDetail string
		Footer     string
	}{
		details:    d,
		WindDetail: i18n.T(i18n.English, i18n.KeyWindWarningDetail),
		Footer:     i18n.T(i18n.English, i18n.KeyMessageAutomated),
	}

	var buf bytes.Buffer
	if err := adminEmailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render admin email: %w", err)
	}
	return subject, buf.String(), nil
}

// CustomerEmail renders the confirmation sent to the customer in their
// locale. contact is the phone number shown for inquiries.
func CustomerEmail(s *Submission, contact string) (subject, body string, err error) {
	locale := s.Locale()
	d := newDetails(s, locale)
	subject = i18n.T(locale, i18n.KeyCustomerSubject)

	data := struct {
		RTL          bool
		Heading      string
		Greeting     string
		Thanks       string
		DateLabel    string
		Date         string
		ServiceLabel string
		Service      string
		FollowUp     string
		Inquiries    string
	}{
		RTL:          locale.IsRTL(),
		Heading:      i18n.T(locale, i18n.KeyCustomerHeading),
		Greeting:     i18n.Tf(locale, i18n.KeyCustomerGreeting, d.Name),
		Thanks:       i18n.T(locale, i18n.KeyCustomerThanks),
		DateLabel:    i18n.T(locale, i18n.KeyFieldDate),
		Date:         d.Date,
		ServiceLabel: i18n.T(locale, i18n.KeyCustomerService),
		Service:      i18n.T(locale, i18n.KeyCustomerServiceVal),
		FollowUp:     i18n.T(locale, i18n.KeyCustomerFollowUp),
		Inquiries:    i18n.Tf(locale, i18n.KeyCustomerInquiries, contact),
	}

	var buf bytes.Buffer
	if err := customerEmailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render customer email: %w", err)
	}
	return subject, buf.String(), nil
}
