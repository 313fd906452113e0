package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	ForecastProvider ForecastProvider
	WeatherCache     WeatherCache

	// Booking
	BookingJournal BookingJournal

	// Communication; nil when the channel is not configured
	ChatSender    ChatSender
	EmailProvider EmailProvider

	// Cache
	CacheProvider CacheProvider
	CacheMetrics  CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
	Database       interface{}
}
