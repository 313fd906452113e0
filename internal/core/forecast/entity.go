package forecast

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"allweather.app/internal/i18n"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
)

// Wind speed limits in m/s. Each tier includes its upper bound.
const (
	SafeWindLimit    = 6.0
	CautionWindLimit = 12.0
)

// WindRisk classifies how suitable the wind is for drone work.
type WindRisk int

const (
	WindSafe WindRisk = iota
	WindCaution
	WindDanger
)

// Classify maps a wind speed in m/s to its risk tier.
func Classify(windSpeedMs float64) WindRisk {
	switch {
	case windSpeedMs <= SafeWindLimit:
		return WindSafe
	case windSpeedMs <= CautionWindLimit:
		return WindCaution
	default:
		return WindDanger
	}
}

func (r WindRisk) String() string {
	switch r {
	case WindSafe:
		return "safe"
	case WindCaution:
		return "caution"
	case WindDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// WindRiskFromString parses the String form; ok is false for anything else.
func WindRiskFromString(s string) (WindRisk, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return WindSafe, true
	case "caution":
		return WindCaution, true
	case "danger":
		return WindDanger, true
	default:
		return WindSafe, false
	}
}

func (r WindRisk) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *WindRisk) UnmarshalText(text []byte) error {
	risk, ok := WindRiskFromString(string(text))
	if !ok {
		return fmt.Errorf("unknown wind risk %q", text)
	}
	*r = risk
	return nil
}

// Advisory returns the localized wind status message.
func (r WindRisk) Advisory(locale i18n.Locale) string {
	switch r {
	case WindCaution:
		return i18n.T(locale, i18n.KeyWindCaution)
	case WindDanger:
		return i18n.T(locale, i18n.KeyWindDanger)
	default:
		return i18n.T(locale, i18n.KeyWindSafe)
	}
}

// MayBeRescheduled reports whether a booking on this risk tier should be
// flagged. It never blocks submission.
func (r WindRisk) MayBeRescheduled() bool {
	return r != WindSafe
}

// ForecastSample is the representative reading for one calendar day.
type ForecastSample struct {
	Date          dates.Date
	TemperatureC  int
	ConditionIcon string
	Description   string
	WindSpeedMs   float64
}

func (s ForecastSample) Risk() WindRisk {
	return Classify(s.WindSpeedMs)
}

// IconPath returns the site asset for the sample's condition code.
func (s ForecastSample) IconPath() string {
	return IconPath(s.ConditionIcon)
}

// CurrentWeather is the latest observation at the service location.
type CurrentWeather struct {
	TemperatureC  int
	Humidity      int
	ConditionIcon string
	Description   string
	WindSpeedMs   float64
	ObservedAt    time.Time
}

func (c CurrentWeather) Risk() WindRisk {
	return Classify(c.WindSpeedMs)
}

// RoundTemperature rounds half up, so 20.5 becomes 21 and -0.5 becomes 0.
func RoundTemperature(celsius float64) int {
	return int(math.Floor(celsius + 0.5))
}

// CollapseDaily orders readings by timestamp and keeps the first reading seen
// for each calendar day in loc. Later readings on the same day are dropped
// whatever their time of day.
func CollapseDaily(readings []ports.ForecastReading, loc *time.Location) []ForecastSample {
	if len(readings) == 0 {
		return nil
	}

	sorted := make([]ports.ForecastReading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	seen := make(map[dates.Date]struct{}, len(sorted))
	samples := make([]ForecastSample, 0, len(sorted))
	for _, reading := range sorted {
		day := dates.Of(reading.Timestamp, loc)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		samples = append(samples, ForecastSample{
			Date:          day,
			TemperatureC:  RoundTemperature(reading.TemperatureC),
			ConditionIcon: reading.Icon,
			Description:   reading.Description,
			WindSpeedMs:   reading.WindSpeedMs,
		})
	}
	return samples
}

// Forecast is an immutable set of daily samples. The zero value and a nil
// *Forecast are both empty.
type Forecast struct {
	samples   []ForecastSample
	byDate    map[dates.Date]int
	fetchedAt time.Time
}

// NewForecast builds a forecast from daily samples. If two samples share a
// date the first one wins.
func NewForecast(samples []ForecastSample, fetchedAt time.Time) *Forecast {
	f := &Forecast{
		samples:   make([]ForecastSample, 0, len(samples)),
		byDate:    make(map[dates.Date]int, len(samples)),
		fetchedAt: fetchedAt,
	}
	for _, s := range samples {
		if _, ok := f.byDate[s.Date]; ok {
			continue
		}
		f.byDate[s.Date] = len(f.samples)
		f.samples = append(f.samples, s)
	}
	return f
}

// Lookup finds the sample for a calendar day.
func (f *Forecast) Lookup(day dates.Date) (ForecastSample, bool) {
	if f == nil {
		return ForecastSample{}, false
	}
	i, ok := f.byDate[day]
	if !ok {
		return ForecastSample{}, false
	}
	return f.samples[i], true
}

// Samples returns a copy of the daily samples in date order.
func (f *Forecast) Samples() []ForecastSample {
	if f == nil {
		return nil
	}
	out := make([]ForecastSample, len(f.samples))
	copy(out, f.samples)
	return out
}

func (f *Forecast) Len() int {
	if f == nil {
		return 0
	}
	return len(f.samples)
}

func (f *Forecast) FetchedAt() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.fetchedAt
}
