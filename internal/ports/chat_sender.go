package ports

import "context"

// ChatMessage is a plain text message to a phone number in international
// format without the leading '+'.
type ChatMessage struct {
	To   string
	Body string
}

// ChatSender delivers text messages over a chat channel such as WhatsApp.
type ChatSender interface {
	SendText(ctx context.Context, msg ChatMessage) error
	GetChannelName() string
}
