package ports

import "context"

// EmailParams is one outgoing message. ReplyTo is optional.
type EmailParams struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
	IsHTML  bool
}

// EmailProvider delivers booking emails to staff and customers.
type EmailProvider interface {
	SendEmail(ctx context.Context, params EmailParams) error
}
