package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

const whatsAppGraphURL = "https://graph.facebook.com/v18.0"

// WhatsAppSender implements ChatSender using the WhatsApp Cloud API.
type WhatsAppSender struct {
	token         string
	phoneNumberID string
	baseURL       string
	client        HTTPClient
	breaker       *gobreaker.CircuitBreaker
	logger        ports.Logger
}

type WhatsAppSenderParams struct {
	Token         string
	PhoneNumberID string
	BaseURL       string
	Client        HTTPClient
	Logger        ports.Logger
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

func NewWhatsAppSender(params WhatsAppSenderParams) (*WhatsAppSender, error) {
	if params.Token == "" {
		return nil, errors.NewConfigurationError("WhatsApp access token is required", nil)
	}
	if params.PhoneNumberID == "" {
		return nil, errors.NewConfigurationError("WhatsApp phone number ID is required", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = whatsAppGraphURL
	}
	client := params.Client
	if client == nil {
		client = newHTTPClient()
	}

	return &WhatsAppSender{
		token:         params.Token,
		phoneNumberID: params.PhoneNumberID,
		baseURL:       strings.TrimRight(baseURL, "/"),
		client:        client,
		breaker:       newBreaker("whatsapp"),
		logger:        params.Logger,
	}, nil
}

// SendText posts a plain text message. The recipient must be in
// international format; a leading '+' and spaces are removed.
func (s *WhatsAppSender) SendText(ctx context.Context, msg ports.ChatMessage) error {
	to := normalizeRecipient(msg.To)
	if to == "" {
		return errors.NewValidationError("recipient phone number cannot be empty")
	}
	if strings.TrimSpace(msg.Body) == "" {
		return errors.NewValidationError("message body cannot be empty")
	}

	payload, err := json.Marshal(whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             whatsAppText{Body: msg.Body},
	})
	if err != nil {
		return errors.NewNotificationError("failed to encode WhatsApp message", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.NewNotificationError("failed to build WhatsApp request", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := doWithBreaker(s.client, s.breaker, req, s.logger)
	if err != nil {
		return errors.NewNotificationError("WhatsApp delivery failed", err)
	}
	defer closeBody(resp, s.logger)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("WhatsApp API rejected message",
			ports.F("status", resp.StatusCode),
			ports.F("body", readErrorBody(resp)))
		return errors.NewNotificationError(fmt.Sprintf("WhatsApp API returned status %d", resp.StatusCode), nil)
	}
	return nil
}

func (s *WhatsAppSender) GetChannelName() string {
	return "whatsapp"
}

func normalizeRecipient(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
