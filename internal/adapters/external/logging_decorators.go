package external

import (
	"context"
	"time"

	"allweather.app/internal/ports"
)

// ForecastProviderLoggingDecorator decorates forecast providers with structured logging
type ForecastProviderLoggingDecorator struct {
	provider ports.ForecastProvider
	logger   ports.Logger
}

func NewForecastProviderLoggingDecorator(provider ports.ForecastProvider, logger ports.Logger) *ForecastProviderLoggingDecorator {
	return &ForecastProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

func (d *ForecastProviderLoggingDecorator) GetForecast(ctx context.Context, lat, lon float64) ([]ports.ForecastReading, error) {
	providerName := d.provider.GetProviderName()
	d.logger.Info("Forecast request started",
		ports.F("provider", providerName),
		ports.F("lat", lat),
		ports.F("lon", lon),
		ports.F("event", "request"))

	start := time.Now()
	readings, err := d.provider.GetForecast(ctx, lat, lon)
	duration := time.Since(start)

	if err != nil {
		d.logger.Error("Forecast request failed",
			ports.F("provider", providerName),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Forecast request completed",
		ports.F("provider", providerName),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("readings", len(readings)))
	return readings, nil
}

func (d *ForecastProviderLoggingDecorator) GetCurrent(ctx context.Context, lat, lon float64) (*ports.CurrentConditions, error) {
	providerName := d.provider.GetProviderName()
	start := time.Now()
	current, err := d.provider.GetCurrent(ctx, lat, lon)
	duration := time.Since(start)

	if err != nil {
		d.logger.Error("Current conditions request failed",
			ports.F("provider", providerName),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Current conditions request completed",
		ports.F("provider", providerName),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("temperature", current.TemperatureC),
		ports.F("wind_speed", current.WindSpeedMs))
	return current, nil
}

// GetProviderName returns the wrapped provider's name so metrics labels
// stay stable.
func (d *ForecastProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}

// ChatSenderLoggingDecorator logs chat deliveries without the message body.
type ChatSenderLoggingDecorator struct {
	sender ports.ChatSender
	logger ports.Logger
}

func NewChatSenderLoggingDecorator(sender ports.ChatSender, logger ports.Logger) *ChatSenderLoggingDecorator {
	return &ChatSenderLoggingDecorator{
		sender: sender,
		logger: logger,
	}
}

func (d *ChatSenderLoggingDecorator) SendText(ctx context.Context, msg ports.ChatMessage) error {
	channel := d.sender.GetChannelName()
	start := time.Now()
	err := d.sender.SendText(ctx, msg)
	duration := time.Since(start)

	if err != nil {
		d.logger.Error("Chat message failed",
			ports.F("channel", channel),
			ports.F("to", msg.To),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return err
	}

	d.logger.Info("Chat message sent",
		ports.F("channel", channel),
		ports.F("to", msg.To),
		ports.F("duration_ms", duration.Milliseconds()))
	return nil
}

func (d *ChatSenderLoggingDecorator) GetChannelName() string {
	return d.sender.GetChannelName()
}
