package booking

import (
	"context"
	"time"

	"allweather.app/internal/core/forecast"
	"allweather.app/internal/i18n"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

const (
	channelAdminEmail    = "admin_email"
	channelCustomerEmail = "customer_email"

	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"

	DefaultRecent = 20
	MaxRecent     = 100
)

// WeatherLookup resolves the forecast for a booked day when the client did
// not send one.
type WeatherLookup interface {
	Lookup(day dates.Date) (forecast.ForecastSample, bool)
}

type UseCase struct {
	chat     ports.ChatSender
	email    ports.EmailProvider
	journal  ports.BookingJournal
	forecast WeatherLookup
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
	now      func() time.Time
	newID    func() string
}

// UseCaseDependencies wires the booking flow. Chat, Email, Journal and
// Forecast are optional; a nil channel is treated as not configured.
type UseCaseDependencies struct {
	Chat     ports.ChatSender
	Email    ports.EmailProvider
	Journal  ports.BookingJournal
	Forecast WeatherLookup
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
	Now      func() time.Time
	NewID    func() string
}

type SubmitRequest struct {
	Form    Form
	Date    dates.Date
	Weather *forecast.ForecastSample
	Locale  i18n.Locale
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = NewBookingID
	}

	return &UseCase{
		chat:     deps.Chat,
		email:    deps.Email,
		journal:  deps.Journal,
		forecast: deps.Forecast,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		now:      deps.Now,
		newID:    deps.NewID,
	}, nil
}

// Submit validates a booking, notifies staff and the customer, and records
// it in the journal. It fails with an external API error only when staff
// channels are configured and none of them accepted the notification.
func (uc *UseCase) Submit(ctx context.Context, req SubmitRequest) (*Result, error) {
	site := uc.config.GetSiteConfig()
	today := dates.Today(uc.now, site.Location)

	weather := req.Weather
	if weather == nil && uc.forecast != nil {
		if sample, ok := uc.forecast.Lookup(req.Date); ok {
			weather = &sample
		}
	}

	submission, err := NewSubmission(req.Form, req.Date, weather, req.Locale, today)
	if err != nil {
		uc.metrics.RecordBooking(ctx, OutcomeRejected)
		return nil, err
	}

	bookingID := uc.newID()
	uc.logger.Info("Processing booking",
		ports.F("booking_id", bookingID),
		ports.F("date", submission.Date().String()),
		ports.F("locale", submission.Locale().String()),
		ports.F("high_wind", submission.HighWind()))

	notified, err := uc.notifyStaff(ctx, submission)
	if err != nil {
		uc.metrics.RecordBooking(ctx, OutcomeFailed)
		uc.logger.Error("Booking notification failed",
			ports.F("booking_id", bookingID),
			ports.F("error", err))
		return nil, err
	}

	if uc.confirmCustomer(ctx, submission, site) {
		notified = append(notified, channelCustomerEmail)
	}

	uc.record(ctx, bookingID, submission, notified)
	uc.metrics.RecordBooking(ctx, OutcomeAccepted)

	return &Result{
		Success:   true,
		Message:   i18n.T(submission.Locale(), i18n.KeyBookingConfirmed),
		BookingID: bookingID,
	}, nil
}

// Recent returns the latest journal entries, newest first. limit is clamped
// to [1, MaxRecent]; zero or less means DefaultRecent.
func (uc *UseCase) Recent(ctx context.Context, limit int) ([]*ports.BookingRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecent
	case limit > MaxRecent:
		limit = MaxRecent
	}
	if uc.journal == nil {
		return []*ports.BookingRecord{}, nil
	}
	return uc.journal.Recent(ctx, limit)
}

func (uc *UseCase) notifyStaff(ctx context.Context, s *Submission) ([]string, error) {
	cfg := uc.config.GetNotificationConfig()
	configured := 0
	var delivered []string
	var lastErr error

	if uc.chat != nil && cfg.WhatsAppEnabled && cfg.AdminWhatsApp != "" {
		configured++
		channel := uc.chat.GetChannelName()
		err := uc.chat.SendText(ctx, ports.ChatMessage{
			To:   cfg.AdminWhatsApp,
			Body: StaffMessage(s),
		})
		uc.metrics.RecordNotification(ctx, channel, err == nil)
		if err != nil {
			uc.logger.Warn("Staff chat notification failed",
				ports.F("channel", channel),
				ports.F("error", err))
			lastErr = err
		} else {
			delivered = append(delivered, channel)
		}
	}

	if uc.email != nil && cfg.EmailEnabled && cfg.AdminEmail != "" {
		configured++
		err := uc.sendAdminEmail(ctx, s, cfg.AdminEmail)
		uc.metrics.RecordNotification(ctx, channelAdminEmail, err == nil)
		if err != nil {
			uc.logger.Warn("Staff email notification failed", ports.F("error", err))
			lastErr = err
		} else {
			delivered = append(delivered, channelAdminEmail)
		}
	}

	if configured == 0 {
		uc.logger.Warn("No staff notification channel configured, booking only logged")
		return delivered, nil
	}
	if len(delivered) == 0 {
		return nil, errors.NewExternalAPIError("no staff notification channel accepted the booking", lastErr)
	}
	return delivered, nil
}

func (uc *UseCase) sendAdminEmail(ctx context.Context, s *Submission, to string) error {
	subject, body, err := AdminEmail(s)
	if err != nil {
		return err
	}
	return uc.email.SendEmail(ctx, ports.EmailParams{
		To:      to,
		Subject: subject,
		Body:    body,
		IsHTML:  true,
	})
}

func (uc *UseCase) confirmCustomer(ctx context.Context, s *Submission, site ports.SiteConfig) bool {
	cfg := uc.config.GetNotificationConfig()
	to := s.Form().Email
	if uc.email == nil || !cfg.EmailEnabled || !cfg.ConfirmCustomers || to == "" {
		return false
	}

	subject, body, err := CustomerEmail(s, site.DisplayContact)
	if err == nil {
		err = uc.email.SendEmail(ctx, ports.EmailParams{
			To:      to,
			ReplyTo: cfg.AdminEmail,
			Subject: subject,
			Body:    body,
			IsHTML:  true,
		})
	}
	uc.metrics.RecordNotification(ctx, channelCustomerEmail, err == nil)
	if err != nil {
		uc.logger.Warn("Customer confirmation email failed",
			ports.F("email", to),
			ports.F("error", err))
		return false
	}
	return true
}

func (uc *UseCase) record(ctx context.Context, bookingID string, s *Submission, notified []string) {
	form := s.Form()
	rec := &ports.BookingRecord{
		BookingID: bookingID,
		Name:      form.Name,
		Phone:     form.Phone,
		Address:   form.Address,
		Email:     form.Email,
		Date:      s.Date().String(),
		Locale:    s.Locale().String(),
		Notified:  notified,
		CreatedAt: uc.now(),
	}
	if w, ok := s.Weather(); ok {
		temp := float64(w.TemperatureC)
		wind := w.WindSpeedMs
		rec.TemperatureC = &temp
		rec.Description = w.Description
		rec.WindSpeedMs = &wind
		rec.WindRisk = w.Risk().String()
	}

	uc.logger.Info("New booking",
		ports.F("booking_id", bookingID),
		ports.F("name", form.Name),
		ports.F("phone", form.Phone),
		ports.F("date", rec.Date),
		ports.F("notified", notified))

	if uc.journal == nil {
		return
	}
	if err := uc.journal.Append(ctx, rec); err != nil {
		uc.logger.Error("Failed to record booking in journal",
			ports.F("booking_id", bookingID),
			ports.F("error", err))
	}
}
