package forecast

const (
	iconBasePath    = "/Weather-icons/"
	iconUnavailable = "not-available"
)

// OpenWeatherMap condition codes to site icon names.
var iconNames = map[string]string{
	"01d": "clear-day",
	"01n": "clear-night",
	"02d": "partly-cloudy-day",
	"02n": "partly-cloudy-night",
	"03d": "cloudy",
	"03n": "cloudy",
	"04d": "overcast-day",
	"04n": "overcast-night",
	"09d": "partly-cloudy-day-rain",
	"09n": "partly-cloudy-night-rain",
	"10d": "rain",
	"10n": "rain",
	"11d": "thunderstorms-day",
	"11n": "thunderstorms-night",
	"13d": "darksky/snow",
	"13n": "darksky/snow",
	"50d": "fog-day",
	"50n": "fog-night",
}

// IconPath maps a provider condition code to an icon asset path.
func IconPath(code string) string {
	name, ok := iconNames[code]
	if !ok {
		name = iconUnavailable
	}
	return iconBasePath + name + ".svg"
}
