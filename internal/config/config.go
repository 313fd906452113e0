// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	// Site time zones must resolve on hosts without zoneinfo.
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"

	"allweather.app/pkg/errors"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxPortNumber      = 65535
)

// Config represents the application configuration structure
type Config struct {
	Server       ServerConfig       `split_words:"true"`
	Site         SiteConfig         `split_words:"true"`
	Weather      WeatherConfig      `split_words:"true"`
	Cache        CacheConfig        `split_words:"true"`
	Notification NotificationConfig `split_words:"true"`
	Journal      JournalConfig      `split_words:"true"`
}

type ServerConfig struct {
	Port           int      `envconfig:"SERVER_PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type SiteConfig struct {
	BaseURL        string  `envconfig:"APP_URL" default:"https://allweather.bh"`
	TimeZone       string  `envconfig:"SITE_TIME_ZONE" default:"Asia/Bahrain"`
	Latitude       float64 `envconfig:"SITE_LATITUDE" default:"26.0275"`
	Longitude      float64 `envconfig:"SITE_LONGITUDE" default:"50.55"`
	ContactNumber  string  `envconfig:"WHATSAPP_CONTACT_NUMBER" default:"97339939053"`
	DisplayContact string  `envconfig:"CONTACT_DISPLAY_NUMBER" default:"+973 3993 9053"`
}

// Location resolves the site time zone. Validate guarantees it loads.
func (s SiteConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type WeatherConfig struct {
	OpenWeatherMapKey      string `envconfig:"OPENWEATHERMAP_API_KEY"`
	OpenWeatherMapBaseURL  string `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	EnableCache            bool   `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	CacheTTLMinutes        int    `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"5"`
	RefreshIntervalMinutes int    `envconfig:"WEATHER_REFRESH_INTERVAL_MINUTES" default:"10"`
	EnableLogging          bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath            string `envconfig:"WEATHER_LOG_FILE_PATH"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type WhatsAppConfig struct {
	Token         string `envconfig:"WHATSAPP_TOKEN"`
	PhoneNumberID string `envconfig:"WHATSAPP_PHONE_NUMBER_ID"`
	AdminNumber   string `envconfig:"ADMIN_WHATSAPP_NUMBER"`
	BaseURL       string `envconfig:"WHATSAPP_API_BASE_URL" default:"https://graph.facebook.com/v18.0"`
}

// Enabled reports whether staff WhatsApp notifications can be sent.
func (w WhatsAppConfig) Enabled() bool {
	return w.Token != "" && w.PhoneNumberID != "" && w.AdminNumber != ""
}

type EmailConfig struct {
	Provider     string `envconfig:"EMAIL_PROVIDER" default:"resend"`
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	ResendURL    string `envconfig:"RESEND_API_URL" default:"https://api.resend.com/emails"`
	SMTPHost     string `envconfig:"EMAIL_SMTP_HOST"`
	SMTPPort     int    `envconfig:"EMAIL_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"EMAIL_SMTP_USERNAME"`
	SMTPPassword string `envconfig:"EMAIL_SMTP_PASSWORD"`
	FromName     string `envconfig:"EMAIL_FROM_NAME" default:"ALL Weather"`
	FromAddress  string `envconfig:"EMAIL_FROM" default:"noreply@allweather.bh"`
	AdminAddress string `envconfig:"ADMIN_EMAIL"`
}

// Enabled reports whether the selected provider has its credentials.
func (e EmailConfig) Enabled() bool {
	switch e.Provider {
	case "resend":
		return e.ResendAPIKey != ""
	case "smtp":
		return e.SMTPHost != ""
	default:
		return false
	}
}

type NotificationConfig struct {
	WhatsApp         WhatsAppConfig `split_words:"true"`
	Email            EmailConfig    `split_words:"true"`
	ConfirmCustomers bool           `envconfig:"CONFIRM_CUSTOMERS" default:"true"`
}

type JournalConfig struct {
	Driver     string `envconfig:"JOURNAL_DRIVER" default:"none"`
	SQLitePath string `envconfig:"JOURNAL_SQLITE_PATH" default:"allweather.db"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       int    `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string `envconfig:"DB_NAME" default:"allweather"`
	SSLMode    string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns the connection string for the configured driver.
func (j JournalConfig) GetDSN() string {
	switch j.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			j.Host, j.Port, j.User, j.Password, j.Name, j.SSLMode)
	case "sqlite":
		return j.SQLitePath
	default:
		return ""
	}
}

// KioskConfig configures the terminal booking client.
type KioskConfig struct {
	APIURL          string `envconfig:"KIOSK_API_URL" default:"http://localhost:8080"`
	PreferencesPath string `envconfig:"KIOSK_PREFERENCES_PATH" default:"kiosk.yaml"`
	TimeZone        string `envconfig:"SITE_TIME_ZONE" default:"Asia/Bahrain"`
	TimeoutSeconds  int    `envconfig:"KIOSK_TIMEOUT_SECONDS" default:"15"`
	// LogPath receives the kiosk's logs; the terminal belongs to the UI.
	LogPath string `envconfig:"KIOSK_LOG_PATH" default:"kiosk.log"`
}

// Location resolves the kiosk time zone. Validate guarantees it loads.
func (k KioskConfig) Location() *time.Location {
	loc, err := time.LoadLocation(k.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func LoadKioskConfig() (*KioskConfig, error) {
	var config KioskConfig
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing kiosk config", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Notification.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return err
	}
	return nil
}

func validateHTTPURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	if len(s.AllowedOrigins) == 0 {
		return errors.NewConfigurationError("CORS_ALLOWED_ORIGINS cannot be empty", nil)
	}
	return nil
}

func (s *SiteConfig) Validate() error {
	if err := validateHTTPURL("APP_URL", s.BaseURL); err != nil {
		return err
	}
	if _, err := time.LoadLocation(s.TimeZone); err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("SITE_TIME_ZONE %q is not a valid time zone", s.TimeZone), err)
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		return errors.NewConfigurationError("SITE_LATITUDE must be between -90 and 90", nil)
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return errors.NewConfigurationError("SITE_LONGITUDE must be between -180 and 180", nil)
	}
	if s.ContactNumber == "" {
		return errors.NewConfigurationError("WHATSAPP_CONTACT_NUMBER cannot be empty", nil)
	}
	for _, r := range s.ContactNumber {
		if r < '0' || r > '9' {
			return errors.NewConfigurationError("WHATSAPP_CONTACT_NUMBER must contain digits only", nil)
		}
	}
	return nil
}

// Validate accepts an empty API key; the forecast is then empty.
func (w *WeatherConfig) Validate() error {
	if err := validateHTTPURL("OPENWEATHERMAP_API_BASE_URL", w.OpenWeatherMapBaseURL); err != nil {
		return err
	}
	if w.CacheTTLMinutes < 1 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if w.RefreshIntervalMinutes < 1 || w.RefreshIntervalMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_REFRESH_INTERVAL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	// A cached read must expire before the next scheduled refresh runs.
	if w.EnableCache && w.CacheTTLMinutes >= w.RefreshIntervalMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be shorter than WEATHER_REFRESH_INTERVAL_MINUTES", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (n *NotificationConfig) Validate() error {
	if err := n.WhatsApp.Validate(); err != nil {
		return err
	}
	return n.Email.Validate()
}

func (w *WhatsAppConfig) Validate() error {
	if err := validateHTTPURL("WHATSAPP_API_BASE_URL", w.BaseURL); err != nil {
		return err
	}
	if (w.Token == "") != (w.PhoneNumberID == "") {
		return errors.NewConfigurationError("WHATSAPP_TOKEN and WHATSAPP_PHONE_NUMBER_ID must both be provided or both be empty", nil)
	}
	return nil
}

func (e *EmailConfig) Validate() error {
	switch e.Provider {
	case "resend":
		if err := validateHTTPURL("RESEND_API_URL", e.ResendURL); err != nil {
			return err
		}
	case "smtp":
		if e.SMTPHost != "" && (e.SMTPPort < 1 || e.SMTPPort > maxPortNumber) {
			return errors.NewConfigurationError("EMAIL_SMTP_PORT must be between 1 and 65535", nil)
		}
		if (e.SMTPUsername == "") != (e.SMTPPassword == "") {
			return errors.NewConfigurationError("EMAIL_SMTP_USERNAME and EMAIL_SMTP_PASSWORD must both be provided or both be empty", nil)
		}
	default:
		return errors.NewConfigurationError("EMAIL_PROVIDER must be one of: resend, smtp", nil)
	}

	if e.FromName == "" {
		return errors.NewConfigurationError("EMAIL_FROM_NAME cannot be empty", nil)
	}
	if _, err := mail.ParseAddress(e.FromAddress); err != nil {
		return errors.NewConfigurationError("EMAIL_FROM must be a valid email address", err)
	}
	if e.AdminAddress != "" {
		if _, err := mail.ParseAddress(e.AdminAddress); err != nil {
			return errors.NewConfigurationError("ADMIN_EMAIL must be a valid email address", err)
		}
	}
	return nil
}

func (j *JournalConfig) Validate() error {
	switch j.Driver {
	case "none":
		return nil
	case "sqlite":
		if j.SQLitePath == "" {
			return errors.NewConfigurationError("JOURNAL_SQLITE_PATH cannot be empty", nil)
		}
		return nil
	case "postgres":
		return j.validatePostgres()
	default:
		return errors.NewConfigurationError("JOURNAL_DRIVER must be one of: none, sqlite, postgres", nil)
	}
}

func (j *JournalConfig) validatePostgres() error {
	if j.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if j.Port < 1 || j.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if j.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if j.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if j.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (k *KioskConfig) Validate() error {
	if err := validateHTTPURL("KIOSK_API_URL", k.APIURL); err != nil {
		return err
	}
	if k.PreferencesPath == "" {
		return errors.NewConfigurationError("KIOSK_PREFERENCES_PATH cannot be empty", nil)
	}
	if _, err := time.LoadLocation(k.TimeZone); err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("SITE_TIME_ZONE %q is not a valid time zone", k.TimeZone), err)
	}
	if k.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("KIOSK_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}
