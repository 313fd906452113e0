package external

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

// fakeSMTPServer accepts one session without TLS or auth and captures the
// DATA section.
func fakeSMTPServer(t *testing.T) (host string, port int, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	captured := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }
		reply("220 localhost ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 localhost")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				reply("250 OK")
			case cmd == "DATA":
				reply("354 End data with <CR><LF>.<CR><LF>")
				var b strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					b.WriteString(l)
				}
				captured <- b.String()
				reply("250 OK queued")
			case cmd == "QUIT":
				reply("221 Bye")
				return
			default:
				reply("250 OK")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, captured
}

func TestSMTPEmailProviderAdapter_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name        string
		config      EmailProviderConfig
		expectError bool
	}{
		{
			name:   "Valid Mailhog Config",
			config: EmailProviderConfig{Host: "mailhog", Port: 1025, FromName: "ALL Weather", FromAddr: "noreply@allweather.bh"},
		},
		{
			name:   "Valid Authenticated Config",
			config: EmailProviderConfig{Host: "smtp.gmail.com", Port: 587, Username: "user@gmail.com", Password: "secret", FromName: "ALL Weather", FromAddr: "noreply@allweather.bh"},
		},
		{
			name:        "Missing Host",
			config:      EmailProviderConfig{Port: 587, FromName: "ALL Weather", FromAddr: "noreply@allweather.bh"},
			expectError: true,
		},
		{
			name:        "Invalid Port",
			config:      EmailProviderConfig{Host: "smtp.example.com", FromName: "ALL Weather", FromAddr: "noreply@allweather.bh"},
			expectError: true,
		},
		{
			name:        "Missing From Address",
			config:      EmailProviderConfig{Host: "smtp.example.com", Port: 587, FromName: "ALL Weather"},
			expectError: true,
		},
		{
			name:        "Missing From Name",
			config:      EmailProviderConfig{Host: "smtp.example.com", Port: 587, FromAddr: "noreply@allweather.bh"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSMTPEmailProviderAdapter(tt.config).ValidateConfiguration()

			if tt.expectError {
				assert.True(t, errors.IsConfigurationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmailParams(t *testing.T) {
	valid := ports.EmailParams{To: "ops@allweather.bh", Subject: "New Booking", Body: "<p>hi</p>", IsHTML: true}
	assert.NoError(t, validateEmailParams(valid))

	for name, mutate := range map[string]func(*ports.EmailParams){
		"missing to":      func(p *ports.EmailParams) { p.To = "" },
		"missing subject": func(p *ports.EmailParams) { p.Subject = "" },
		"missing body":    func(p *ports.EmailParams) { p.Body = "" },
	} {
		t.Run(name, func(t *testing.T) {
			params := valid
			mutate(&params)
			assert.True(t, errors.IsValidationError(validateEmailParams(params)))
		})
	}
}

func TestSMTPEmailProviderAdapter_BuildMessage(t *testing.T) {
	provider := NewSMTPEmailProviderAdapter(EmailProviderConfig{Host: "smtp.example.com", Port: 587, FromName: "ALL Weather", FromAddr: "noreply@allweather.bh"})
	provider.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }

	msg := provider.buildMessage(ports.EmailParams{
		To:      "ali@example.com",
		ReplyTo: "bookings@allweather.bh",
		Subject: "✅ تأكيد الحجز - ALL Weather",
		Body:    "<p>body</p>",
		IsHTML:  true,
	})

	assert.Contains(t, msg, "From: ALL Weather <noreply@allweather.bh>\r\n")
	assert.Contains(t, msg, "To: ali@example.com\r\n")
	assert.Contains(t, msg, "Reply-To: bookings@allweather.bh\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.Contains(t, msg, "Date: Wed, 14 Oct 2026 09:00:00 +0000\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>body</p>"))

	plain := provider.buildMessage(ports.EmailParams{To: "a@b.c", Subject: "Plain", Body: "text"})
	assert.Contains(t, plain, "Subject: Plain\r\n")
	assert.NotContains(t, plain, "Reply-To:")
	assert.Contains(t, plain, "Content-Type: text/plain; charset=UTF-8\r\n")
}

func TestSMTPEmailProviderAdapter_SendEmail(t *testing.T) {
	host, port, data := fakeSMTPServer(t)
	provider := NewSMTPEmailProviderAdapter(EmailProviderConfig{Host: host, Port: port, FromName: "ALL Weather", FromAddr: "noreply@allweather.bh"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := provider.SendEmail(ctx, ports.EmailParams{To: "ops@allweather.bh", Subject: "New Booking", Body: "hello"})

	require.NoError(t, err)
	select {
	case msg := <-data:
		assert.Contains(t, msg, "To: ops@allweather.bh")
		assert.Contains(t, msg, "hello")
	case <-time.After(time.Second):
		t.Fatal("message not received")
	}
}

func TestSMTPEmailProviderAdapter_SendEmail_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	provider := NewSMTPEmailProviderAdapter(EmailProviderConfig{Host: "127.0.0.1", Port: port, FromName: "x", FromAddr: "x@y.z"})
	err = provider.SendEmail(context.Background(), ports.EmailParams{To: "a@b.c", Subject: "s", Body: "b"})

	assert.True(t, errors.IsEmailError(err))
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestResendEmailProvider_SendEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		var body resendEmail
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, resendEmail{
			From:    "noreply@allweather.bh",
			To:      []string{"ops@allweather.bh"},
			Subject: "🚁 New Booking",
			HTML:    "<p>hi</p>",
		}, body)

		_, _ = w.Write([]byte(`{"id":"49a3999c"}`))
	}))
	defer server.Close()

	provider, err := NewResendEmailProvider(ResendEmailProviderParams{
		APIKey:   "re_test",
		From:     "noreply@allweather.bh",
		Endpoint: server.URL,
		Logger:   setupLoggerMock(t),
	})
	require.NoError(t, err)

	err = provider.SendEmail(context.Background(), ports.EmailParams{
		To:      "ops@allweather.bh",
		Subject: "🚁 New Booking",
		Body:    "<p>hi</p>",
		IsHTML:  true,
	})

	assert.NoError(t, err)
}

func TestResendEmailProvider_SendEmail_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Invalid from address"}`))
	}))
	defer server.Close()

	provider, err := NewResendEmailProvider(ResendEmailProviderParams{APIKey: "re_test", From: "bad", Endpoint: server.URL, Logger: setupLoggerMock(t)})
	require.NoError(t, err)

	err = provider.SendEmail(context.Background(), ports.EmailParams{To: "a@b.c", Subject: "s", Body: "b"})

	assert.True(t, errors.IsEmailError(err))
	assert.Contains(t, err.Error(), "422")
}

func TestNewResendEmailProvider_Validation(t *testing.T) {
	logger := setupLoggerMock(t)

	_, err := NewResendEmailProvider(ResendEmailProviderParams{From: "a@b.c", Logger: logger})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewResendEmailProvider(ResendEmailProviderParams{APIKey: "k", Logger: logger})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewResendEmailProvider(ResendEmailProviderParams{APIKey: "k", From: "a@b.c"})
	assert.True(t, errors.IsValidationError(err))
}
