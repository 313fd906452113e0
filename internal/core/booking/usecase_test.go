package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/core/forecast"
	"allweather.app/internal/i18n"
	"allweather.app/internal/mocks"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

const (
	adminPhone = "97339939053"
	adminEmail = "admin@allweather.bh"
	testID     = "BK-TEST0001"
)

var bahrain = time.FixedZone("AST", 3*60*60)

func setupLoggerMock(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)
	args := []interface{}{}
	for i := 0; i <= 6; i++ {
		mockLogger.EXPECT().Debug(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Info(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Warn(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Error(mock.Anything, args...).Maybe()
		args = append(args, mock.Anything)
	}
	return mockLogger
}

type stubLookup map[dates.Date]forecast.ForecastSample

func (s stubLookup) Lookup(day dates.Date) (forecast.ForecastSample, bool) {
	sample, ok := s[day]
	return sample, ok
}

type bookingMocks struct {
	chat    *mocks.ChatSender
	email   *mocks.EmailProvider
	journal *mocks.BookingJournal
	config  *mocks.ConfigProvider
	metrics *mocks.MetricsCollector
}

func newBookingMocks(t *testing.T, notification ports.NotificationConfig) bookingMocks {
	m := bookingMocks{
		chat:    mocks.NewChatSender(t),
		email:   mocks.NewEmailProvider(t),
		journal: mocks.NewBookingJournal(t),
		config:  mocks.NewConfigProvider(t),
		metrics: mocks.NewMetricsCollector(t),
	}
	m.config.EXPECT().GetSiteConfig().Return(ports.SiteConfig{
		Location:       bahrain,
		DisplayContact: "+973 3993 9053",
	}).Maybe()
	m.config.EXPECT().GetNotificationConfig().Return(notification).Maybe()
	m.chat.EXPECT().GetChannelName().Return("whatsapp").Maybe()
	return m
}

func (m bookingMocks) useCase(t *testing.T, lookup WeatherLookup) *UseCase {
	uc, err := NewUseCase(UseCaseDependencies{
		Chat:     m.chat,
		Email:    m.email,
		Journal:  m.journal,
		Forecast: lookup,
		Config:   m.config,
		Logger:   setupLoggerMock(t),
		Metrics:  m.metrics,
		Now:      func() time.Time { return time.Date(2026, time.October, 14, 10, 30, 0, 0, bahrain) },
		NewID:    func() string { return testID },
	})
	require.NoError(t, err)
	return uc
}

func allChannels() ports.NotificationConfig {
	return ports.NotificationConfig{
		WhatsAppEnabled:  true,
		AdminWhatsApp:    adminPhone,
		EmailEnabled:     true,
		AdminEmail:       adminEmail,
		ConfirmCustomers: true,
	}
}

func sentTo(addr string) interface{} {
	return mock.MatchedBy(func(p ports.EmailParams) bool { return p.To == addr })
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		Form:   validForm(),
		Date:   dates.New(2026, time.October, 20),
		Locale: i18n.English,
		Weather: &forecast.ForecastSample{
			Date:         dates.New(2026, time.October, 20),
			TemperatureC: 32,
			Description:  "clear sky",
			WindSpeedMs:  8.4,
		},
	}
}

func TestUseCase_Submit_AllChannels(t *testing.T) {
	m := newBookingMocks(t, allChannels())
	uc := m.useCase(t, nil)

	m.chat.EXPECT().SendText(mock.Anything, mock.MatchedBy(func(msg ports.ChatMessage) bool {
		return msg.To == adminPhone &&
			strings.Contains(msg.Body, "📋 Client: Ali Hasan") &&
			strings.Contains(msg.Body, "⚠️ Warning: Wind speed 8.4 m/s")
	})).Return(nil)
	m.email.EXPECT().SendEmail(mock.Anything, mock.MatchedBy(func(p ports.EmailParams) bool {
		return p.To == adminEmail && p.IsHTML && strings.HasPrefix(p.Subject, "🚁 New Booking: Ali Hasan")
	})).Return(nil)
	m.email.EXPECT().SendEmail(mock.Anything, mock.MatchedBy(func(p ports.EmailParams) bool {
		return p.To == "ali@example.com" && p.ReplyTo == adminEmail && p.Subject == "✅ Booking Confirmation - ALL Weather"
	})).Return(nil)
	m.metrics.EXPECT().RecordNotification(mock.Anything, mock.Anything, true).Return().Times(3)
	m.metrics.EXPECT().RecordBooking(mock.Anything, OutcomeAccepted).Return()

	var stored *ports.BookingRecord
	m.journal.EXPECT().Append(mock.Anything, mock.Anything).
		Run(func(_ context.Context, rec *ports.BookingRecord) { stored = rec }).
		Return(nil)

	result, err := uc.Submit(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, &Result{Success: true, Message: "Booking confirmed", BookingID: testID}, result)

	require.NotNil(t, stored)
	assert.Equal(t, testID, stored.BookingID)
	assert.Equal(t, "2026-10-20", stored.Date)
	assert.Equal(t, "caution", stored.WindRisk)
	require.NotNil(t, stored.WindSpeedMs)
	assert.Equal(t, 8.4, *stored.WindSpeedMs)
	assert.Equal(t, []string{"whatsapp", "admin_email", "customer_email"}, stored.Notified)
}

func TestUseCase_Submit_OneStaffChannelIsEnough(t *testing.T) {
	m := newBookingMocks(t, allChannels())
	uc := m.useCase(t, nil)

	m.chat.EXPECT().SendText(mock.Anything, mock.Anything).Return(errors.NewExternalAPIError("whatsapp returned status 401", nil))
	m.email.EXPECT().SendEmail(mock.Anything, sentTo(adminEmail)).Return(nil)
	m.email.EXPECT().SendEmail(mock.Anything, sentTo("ali@example.com")).Return(nil)
	m.metrics.EXPECT().RecordNotification(mock.Anything, "whatsapp", false).Return()
	m.metrics.EXPECT().RecordNotification(mock.Anything, mock.Anything, true).Return().Times(2)
	m.metrics.EXPECT().RecordBooking(mock.Anything, OutcomeAccepted).Return()
	m.journal.EXPECT().Append(mock.Anything, mock.MatchedBy(func(rec *ports.BookingRecord) bool {
		return len(rec.Notified) == 2 && rec.Notified[0] == "admin_email"
	})).Return(nil)

	result, err := uc.Submit(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestUseCase_Submit_AllStaffChannelsFail(t *testing.T) {
	m := newBookingMocks(t, allChannels())
	uc := m.useCase(t, nil)

	m.chat.EXPECT().SendText(mock.Anything, mock.Anything).Return(errors.NewExternalAPIError("timeout", nil))
	m.email.EXPECT().SendEmail(mock.Anything, sentTo(adminEmail)).Return(errors.NewEmailError("smtp refused", nil))
	m.metrics.EXPECT().RecordNotification(mock.Anything, mock.Anything, false).Return().Times(2)
	m.metrics.EXPECT().RecordBooking(mock.Anything, OutcomeFailed).Return()

	result, err := uc.Submit(context.Background(), validRequest())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsExternalAPIError(err))
	m.journal.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	m.email.AssertNotCalled(t, "SendEmail", mock.Anything, sentTo("ali@example.com"))
}

func TestUseCase_Submit_NoChannelsConfigured(t *testing.T) {
	m := newBookingMocks(t, ports.NotificationConfig{})
	uc := m.useCase(t, nil)

	m.metrics.EXPECT().RecordBooking(mock.Anything, OutcomeAccepted).Return()
	m.journal.EXPECT().Append(mock.Anything, mock.MatchedBy(func(rec *ports.BookingRecord) bool {
		return len(rec.Notified) == 0
	})).Return(nil)

	req := validRequest()
	req.Locale = i18n.Arabic
	result, err := uc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "تم الحجز بنجاح", result.Message)
	m.chat.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything)
}

func TestUseCase_Submit_CustomerAndJournalFailuresDoNotFail(t *testing.T) {
	m := newBookingMocks(t, allChannels())
	uc := m.useCase(t, nil)

	m.chat.EXPECT().SendText(mock.Anything, mock.Anything).Return(nil)
	m.email.EXPECT().SendEmail(mock.Anything, sentTo(adminEmail)).Return(nil)
	m.email.EXPECT().SendEmail(mock.Anything, sentTo("ali@example.com")).Return(errors.NewEmailError("mailbox full", nil))
	m.metrics.EXPECT().RecordNotification(mock.Anything, mock.Anything, true).Return().Times(2)
	m.metrics.EXPECT().RecordNotification(mock.Anything, "customer_email", false).Return()
	m.metrics.EXPECT().RecordBooking(mock.Anything, OutcomeAccepted).Return()
	m.journal.EXPECT().Append(mock.Anything, mock.Anything).Return(errors.NewDatabaseError("disk full", nil))

	result, err := uc.Submit(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, testID, result.BookingID)
}

func TestUseCase_Submit_RejectsInvalid(t *testing.T) {
	m := newBookingMocks(t, allChannels())
	uc := m.useCase(t, nil)

	m.metrics.EXPECT().RecordBooking(mock.Anything, OutcomeRejected).Return()

	req := validRequest()
	req.Form.Phone = "123"
	req.Date = dates.New(2026, time.October, 13)

	_, err := uc.Submit(context.Background(), req)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ValidationError, appErr.Type)
	assert.Contains(t, appErr.Fields, FieldPhone)
	assert.Contains(t, appErr.Fields, FieldDate)
	m.chat.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything)
}

func TestUseCase_Submit_FillsWeatherFromForecast(t *testing.T) {
	m := newBookingMocks(t, ports.NotificationConfig{WhatsAppEnabled: true, AdminWhatsApp: adminPhone})
	day := dates.New(2026, time.October, 20)
	uc := m.useCase(t, stubLookup{day: {Date: day, TemperatureC: 29, Description: "haze", WindSpeedMs: 3}})

	m.chat.EXPECT().SendText(mock.Anything, mock.MatchedBy(func(msg ports.ChatMessage) bool {
		return strings.Contains(msg.Body, "🌡️ Weather: 29°C - haze") && !strings.Contains(msg.Body, "Warning")
	})).Return(nil)
	m.metrics.EXPECT().RecordNotification(mock.Anything, "whatsapp", true).Return()
	m.metrics.EXPECT().RecordBooking(mock.Anything, OutcomeAccepted).Return()
	m.journal.EXPECT().Append(mock.Anything, mock.MatchedBy(func(rec *ports.BookingRecord) bool {
		return rec.WindRisk == "safe" && rec.Description == "haze"
	})).Return(nil)

	req := validRequest()
	req.Weather = nil
	_, err := uc.Submit(context.Background(), req)

	require.NoError(t, err)
}

func TestUseCase_Recent(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default", 0, DefaultRecent},
		{"within_range", 5, 5},
		{"clamped", 500, MaxRecent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBookingMocks(t, ports.NotificationConfig{})
			uc := m.useCase(t, nil)

			records := []*ports.BookingRecord{{BookingID: "BK-1"}}
			m.journal.EXPECT().Recent(mock.Anything, tt.wantLimit).Return(records, nil)

			got, err := uc.Recent(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Equal(t, records, got)
		})
	}
}

func TestUseCase_Constructor_Validation(t *testing.T) {
	_, err := NewUseCase(UseCaseDependencies{Logger: mocks.NewLogger(t), Metrics: mocks.NewMetricsCollector(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")

	uc, err := NewUseCase(UseCaseDependencies{
		Config:  mocks.NewConfigProvider(t),
		Logger:  mocks.NewLogger(t),
		Metrics: mocks.NewMetricsCollector(t),
	})
	require.NoError(t, err)

	records, err := uc.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
