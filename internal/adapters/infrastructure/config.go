package infrastructure

import (
	"time"

	"allweather.app/internal/config"
	"allweather.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config   *config.Config
	location *time.Location
}

func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config:   cfg,
		location: cfg.Site.Location(),
	}
}

func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache:     c.config.Weather.EnableCache,
		CacheTTL:        time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
		RefreshInterval: time.Duration(c.config.Weather.RefreshIntervalMinutes) * time.Minute,
	}
}

func (c *ConfigProviderAdapter) GetSiteConfig() ports.SiteConfig {
	return ports.SiteConfig{
		BaseURL:        c.config.Site.BaseURL,
		Location:       c.location,
		Latitude:       c.config.Site.Latitude,
		Longitude:      c.config.Site.Longitude,
		ContactNumber:  c.config.Site.ContactNumber,
		DisplayContact: c.config.Site.DisplayContact,
	}
}

func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port:           c.config.Server.Port,
		AllowedOrigins: c.config.Server.AllowedOrigins,
	}
}

func (c *ConfigProviderAdapter) GetNotificationConfig() ports.NotificationConfig {
	n := c.config.Notification
	return ports.NotificationConfig{
		WhatsAppEnabled:  n.WhatsApp.Enabled(),
		AdminWhatsApp:    n.WhatsApp.AdminNumber,
		EmailEnabled:     n.Email.Enabled(),
		EmailProvider:    n.Email.Provider,
		AdminEmail:       n.Email.AdminAddress,
		ConfirmCustomers: n.ConfirmCustomers,
	}
}

func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}

func (c *ConfigProviderAdapter) GetJournalConfig() ports.JournalConfig {
	return ports.JournalConfig{
		Driver: c.config.Journal.Driver,
	}
}
