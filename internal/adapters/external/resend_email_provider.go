package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

const resendAPIURL = "https://api.resend.com/emails"

// ResendEmailProvider implements EmailProvider using the Resend HTTP API.
type ResendEmailProvider struct {
	apiKey   string
	from     string
	endpoint string
	client   HTTPClient
	breaker  *gobreaker.CircuitBreaker
	logger   ports.Logger
}

type ResendEmailProviderParams struct {
	APIKey   string
	From     string
	Endpoint string
	Client   HTTPClient
	Logger   ports.Logger
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

func NewResendEmailProvider(params ResendEmailProviderParams) (*ResendEmailProvider, error) {
	if params.APIKey == "" {
		return nil, errors.NewConfigurationError("Resend API key is required", nil)
	}
	if params.From == "" {
		return nil, errors.NewConfigurationError("sender address is required", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	endpoint := params.Endpoint
	if endpoint == "" {
		endpoint = resendAPIURL
	}
	client := params.Client
	if client == nil {
		client = newHTTPClient()
	}

	return &ResendEmailProvider{
		apiKey:   params.APIKey,
		from:     params.From,
		endpoint: endpoint,
		client:   client,
		breaker:  newBreaker("resend"),
		logger:   params.Logger,
	}, nil
}

func (p *ResendEmailProvider) SendEmail(ctx context.Context, params ports.EmailParams) error {
	if err := validateEmailParams(params); err != nil {
		return err
	}

	email := resendEmail{
		From:    p.from,
		To:      []string{params.To},
		ReplyTo: params.ReplyTo,
		Subject: params.Subject,
	}
	if params.IsHTML {
		email.HTML = params.Body
	} else {
		email.Text = params.Body
	}

	payload, err := json.Marshal(email)
	if err != nil {
		return errors.NewEmailError("failed to encode email", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.NewEmailError("failed to build Resend request", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := doWithBreaker(p.client, p.breaker, req, p.logger)
	if err != nil {
		return errors.NewEmailError("Resend delivery failed", err)
	}
	defer closeBody(resp, p.logger)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Error("Resend rejected email",
			ports.F("status", resp.StatusCode),
			ports.F("body", readErrorBody(resp)))
		return errors.NewEmailError(fmt.Sprintf("Resend returned status %d", resp.StatusCode), nil)
	}
	return nil
}
