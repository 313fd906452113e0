package config

import (
	"log/slog"
	"strings"
)

// MaskSecret hides all but the first quarter of s. Short values are fully
// masked, empty ones stay empty so unset secrets are visible as such.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// LogValue renders the configuration for startup logs with secrets masked.
func (c *Config) LogValue() slog.Value {
	n := c.Notification
	return slog.GroupValue(
		slog.Group("server",
			slog.Int("port", c.Server.Port),
			slog.String("allowedOrigins", strings.Join(c.Server.AllowedOrigins, ","))),
		slog.Group("site",
			slog.String("baseURL", c.Site.BaseURL),
			slog.String("timeZone", c.Site.TimeZone),
			slog.Float64("latitude", c.Site.Latitude),
			slog.Float64("longitude", c.Site.Longitude)),
		slog.Group("weather",
			slog.String("apiKey", MaskSecret(c.Weather.OpenWeatherMapKey)),
			slog.String("baseURL", c.Weather.OpenWeatherMapBaseURL),
			slog.Bool("cache", c.Weather.EnableCache),
			slog.Int("refreshMinutes", c.Weather.RefreshIntervalMinutes)),
		slog.Group("cache",
			slog.String("type", c.Cache.Type.String()),
			slog.String("redisAddr", c.Cache.Redis.Addr),
			slog.String("redisPassword", MaskSecret(c.Cache.Redis.Password))),
		slog.Group("whatsapp",
			slog.Bool("enabled", n.WhatsApp.Enabled()),
			slog.String("token", MaskSecret(n.WhatsApp.Token)),
			slog.String("adminNumber", n.WhatsApp.AdminNumber)),
		slog.Group("email",
			slog.String("provider", n.Email.Provider),
			slog.Bool("enabled", n.Email.Enabled()),
			slog.String("resendAPIKey", MaskSecret(n.Email.ResendAPIKey)),
			slog.String("smtpHost", n.Email.SMTPHost),
			slog.String("smtpPassword", MaskSecret(n.Email.SMTPPassword)),
			slog.String("from", n.Email.FromAddress),
			slog.String("admin", n.Email.AdminAddress)),
		slog.Group("journal",
			slog.String("driver", c.Journal.Driver),
			slog.String("password", MaskSecret(c.Journal.Password))),
	)
}
