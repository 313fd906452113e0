package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/core/booking"
	"allweather.app/internal/i18n"
	"allweather.app/internal/mocks"
	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

func postJSON(t *testing.T, server *HTTPServerAdapter, path string, payload interface{}, out interface{}) int {
	t.Helper()
	var body []byte
	switch p := payload.(type) {
	case string:
		body = []byte(p)
	default:
		var err error
		body, err = json.Marshal(p)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.GetRouter().ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestPostBooking_MapsPayload(t *testing.T) {
	bookings := &stubBookings{result: &booking.Result{Success: true, Message: "Booking confirmed", BookingID: "BK-1F3A9C2E"}}
	server := newTestServer(t, ServerOptions{BookingService: bookings})

	var body bookingResponse
	status := postJSON(t, server, "/api/booking", map[string]interface{}{
		"name":    "Ali Hasan",
		"phone":   "+973 3993 9053",
		"address": "Seef, Manama",
		"email":   "ali@example.com",
		"date":    "2026-10-15",
		"locale":  "ar",
		"weather": map[string]interface{}{"temp": 30.5, "description": "haze", "windSpeed": 8.5, "icon": "50d"},
	}, &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, bookingResponse{Success: true, Message: "Booking confirmed", BookingID: "BK-1F3A9C2E"}, body)

	require.NotNil(t, bookings.got)
	got := bookings.got
	assert.Equal(t, booking.Form{Name: "Ali Hasan", Phone: "+973 3993 9053", Address: "Seef, Manama", Email: "ali@example.com"}, got.Form)
	assert.Equal(t, "2026-10-15", got.Date.String())
	assert.Equal(t, i18n.Arabic, got.Locale)
	require.NotNil(t, got.Weather)
	assert.Equal(t, 31, got.Weather.TemperatureC)
	assert.Equal(t, 8.5, got.Weather.WindSpeedMs)
	assert.Equal(t, "50d", got.Weather.ConditionIcon)
}

func TestPostBooking_AcceptsTimestampDate(t *testing.T) {
	bookings := &stubBookings{result: &booking.Result{Success: true}}
	server := newTestServer(t, ServerOptions{BookingService: bookings})

	status := postJSON(t, server, "/api/booking", map[string]string{
		"name": "Ali", "phone": "12345678", "date": "2026-10-15T00:00:00.000Z",
	}, nil)

	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, bookings.got)
	assert.Equal(t, "2026-10-15", bookings.got.Date.String())
	assert.Nil(t, bookings.got.Weather)
	assert.Equal(t, i18n.English, bookings.got.Locale)
}

func TestPostBooking_TimestampDateUsesSiteZone(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"local midnight tomorrow", "2026-10-14T21:00:00.000Z", "2026-10-15"},
		{"early morning today", "2026-10-13T21:30:00.000Z", "2026-10-14"},
		{"late evening today", "2026-10-14T20:59:59.000Z", "2026-10-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &stubBookings{result: &booking.Result{Success: true}}
			server := newTestServer(t, ServerOptions{BookingService: bookings, Site: testSite})

			status := postJSON(t, server, "/api/booking", map[string]string{
				"name": "Ali", "phone": "12345678", "date": tt.date,
			}, nil)

			assert.Equal(t, http.StatusOK, status)
			require.NotNil(t, bookings.got)
			assert.Equal(t, tt.want, bookings.got.Date.String())
		})
	}
}

func TestPostBooking_MissingRequiredFields(t *testing.T) {
	bookings := &stubBookings{}
	server := newTestServer(t, ServerOptions{BookingService: bookings})

	var body ErrorResponse
	status := postJSON(t, server, "/api/booking", map[string]string{"phone": "12345678", "locale": "ar"}, &body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", body.Error)
	assert.Equal(t, map[string]string{
		"name": "الاسم مطلوب",
		"date": "التاريخ مطلوب",
	}, body.Fields)
	assert.Nil(t, bookings.got)
}

func TestPostBooking_MalformedBody(t *testing.T) {
	server := newTestServer(t, ServerOptions{})

	var body ErrorResponse
	status := postJSON(t, server, "/api/booking", `{"name": 42`, &body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request format", body.Error)
}

func TestPostBooking_InvalidDate(t *testing.T) {
	server := newTestServer(t, ServerOptions{})

	var body ErrorResponse
	status := postJSON(t, server, "/api/booking", map[string]string{"name": "Ali", "phone": "12345678", "date": "tomorrow"}, &body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Date is required", body.Fields["date"])
}

func TestPostBooking_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		locale     string
		wantStatus int
		wantError  string
		wantFields map[string]string
	}{
		{
			name:       "field validation",
			err:        errors.NewFieldValidationError("invalid booking", map[string]string{"phone": "Invalid phone number"}),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid booking",
			wantFields: map[string]string{"phone": "Invalid phone number"},
		},
		{
			name:       "staff channels down",
			err:        errors.NewExternalAPIError("no staff notification channel accepted the booking", fmt.Errorf("502")),
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Booking could not be sent. Please try again.",
		},
		{
			name:       "staff channels down arabic",
			err:        errors.NewExternalAPIError("no staff notification channel accepted the booking", nil),
			locale:     "ar",
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "تعذر إرسال الحجز. يرجى المحاولة مرة أخرى.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, ServerOptions{BookingService: &stubBookings{err: tt.err}})

			var body ErrorResponse
			status := postJSON(t, server, "/api/booking", map[string]string{
				"name": "Ali", "phone": "12345678", "date": "2026-10-15", "locale": tt.locale,
			}, &body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantFields, body.Fields)
		})
	}
}

// The handler drives the real booking flow through mocked ports.
func TestPostBooking_WithBookingUseCase(t *testing.T) {
	mockChat := mocks.NewChatSender(t)
	mockConfig := mocks.NewConfigProvider(t)
	mockMetrics := mocks.NewMetricsCollector(t)

	mockConfig.EXPECT().GetSiteConfig().Return(testSite).Maybe()
	mockConfig.EXPECT().GetNotificationConfig().Return(ports.NotificationConfig{
		WhatsAppEnabled: true,
		AdminWhatsApp:   "97339939053",
	}).Maybe()
	mockChat.EXPECT().GetChannelName().Return("whatsapp").Maybe()
	mockChat.EXPECT().
		SendText(mock.Anything, mock.MatchedBy(func(msg ports.ChatMessage) bool {
			return msg.To == "97339939053"
		})).
		Return(nil).
		Once()
	mockMetrics.EXPECT().RecordNotification(mock.Anything, "whatsapp", true).Once()
	mockMetrics.EXPECT().RecordBooking(mock.Anything, booking.OutcomeAccepted).Once()

	useCase, err := booking.NewUseCase(booking.UseCaseDependencies{
		Chat:    mockChat,
		Config:  mockConfig,
		Logger:  setupLoggerMock(t),
		Metrics: mockMetrics,
		Now:     func() time.Time { return testNow },
		NewID:   func() string { return "BK-TEST0001" },
	})
	require.NoError(t, err)

	server := newTestServer(t, ServerOptions{BookingService: useCase})

	var body bookingResponse
	status := postJSON(t, server, "/api/booking", map[string]string{
		"name": "Ali Hasan", "phone": "+973 3993 9053", "date": "2026-10-16",
	}, &body)

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
	assert.Equal(t, "BK-TEST0001", body.BookingID)
	assert.Equal(t, "Booking confirmed", body.Message)
}

func TestGetRecentBookings(t *testing.T) {
	temp := 31.0
	bookings := &stubBookings{records: []*ports.BookingRecord{
		{BookingID: "BK-2", Name: "Sara", Phone: "12345678", Date: "2026-10-16", Locale: "en", TemperatureC: &temp, Notified: []string{"whatsapp"}, CreatedAt: testNow},
		{BookingID: "BK-1", Name: "Ali", Phone: "87654321", Date: "2026-10-15", Locale: "ar", CreatedAt: testNow.Add(-time.Hour)},
	}}
	server := newTestServer(t, ServerOptions{BookingService: bookings})

	var body struct {
		Bookings []map[string]interface{} `json:"bookings"`
	}
	status := getJSON(t, server, "/api/bookings/recent?limit=5", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5, bookings.limit)
	require.Len(t, body.Bookings, 2)
	assert.Equal(t, "BK-2", body.Bookings[0]["bookingId"])
	assert.Equal(t, 31.0, body.Bookings[0]["temp"])
	assert.Equal(t, []interface{}{}, body.Bookings[1]["notified"])
	assert.NotContains(t, body.Bookings[1], "temp")
}

func TestGetRecentBookings_DefaultAndInvalidLimit(t *testing.T) {
	bookings := &stubBookings{}
	server := newTestServer(t, ServerOptions{BookingService: bookings})

	status := getJSON(t, server, "/api/bookings/recent", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, bookings.limit)

	var body ErrorResponse
	status = getJSON(t, server, "/api/bookings/recent?limit=ten", &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "limit must be an integer", body.Error)
}

func TestGetRecentBookings_JournalError(t *testing.T) {
	server := newTestServer(t, ServerOptions{BookingService: &stubBookings{err: errors.NewDatabaseError("query failed", fmt.Errorf("closed"))}})

	var body ErrorResponse
	status := getJSON(t, server, "/api/bookings/recent", &body)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Error)
}
