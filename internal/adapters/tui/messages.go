package tui

import "allweather.app/internal/core/forecast"

// stateChangedMsg is sent when the view-model changed off the UI goroutine.
type stateChangedMsg struct{}

// submitDoneMsg carries the outcome of a booking confirmation.
type submitDoneMsg struct {
	err error
}

// currentFetchedMsg carries current conditions for the header.
type currentFetchedMsg struct {
	current forecast.CurrentWeather
	ok      bool
}

// errMsg reports a failure the kiosk cannot recover from on its own.
type errMsg struct {
	err error
}
