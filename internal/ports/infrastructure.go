package ports

import (
	"context"
	"time"
)

// WeatherConfig represents weather service configuration
type WeatherConfig struct {
	EnableCache     bool
	CacheTTL        time.Duration
	RefreshInterval time.Duration
}

// SiteConfig describes the service area and public site.
type SiteConfig struct {
	BaseURL        string
	Location       *time.Location
	Latitude       float64
	Longitude      float64
	ContactNumber  string
	DisplayContact string
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// NotificationConfig represents staff and customer notification settings
type NotificationConfig struct {
	WhatsAppEnabled  bool
	AdminWhatsApp    string
	EmailEnabled     bool
	EmailProvider    string
	AdminEmail       string
	ConfirmCustomers bool
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type  string
	Redis RedisConfig
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// JournalConfig represents booking journal configuration
type JournalConfig struct {
	Driver string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetSiteConfig() SiteConfig
	GetServerConfig() ServerConfig
	GetNotificationConfig() NotificationConfig
	GetCacheConfig() CacheConfig
	GetJournalConfig() JournalConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordCacheHit(ctx context.Context)
	RecordCacheMiss(ctx context.Context)
	RecordWeatherAPICall(ctx context.Context, provider string, success bool)
	RecordNotification(ctx context.Context, channel string, success bool)
	RecordBooking(ctx context.Context, outcome string)
}
