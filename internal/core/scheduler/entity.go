package scheduler

import (
	"context"
	"strconv"

	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/forecast"
	"allweather.app/internal/i18n"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

// State is the booking widget's position in its flow.
type State int

const (
	Browsing State = iota
	DaySelected
	Submitting
	Submitted
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case DaySelected:
		return "day_selected"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

var (
	ErrPastDate   = errors.NewValidationError("date is before today")
	ErrNoDate     = errors.NewValidationError("no date selected")
	ErrBusy       = errors.NewConflictError("a booking is already being submitted")
	ErrDisposed   = errors.NewConflictError("scheduler disposed")
	ErrUnknownKey = errors.NewValidationError("unknown form field")
)

// ForecastSource supplies the daily forecast. It returns an empty slice
// when no forecast is available.
type ForecastSource interface {
	Forecast(ctx context.Context) []forecast.ForecastSample
}

// Submitter sends a booking. *booking.UseCase satisfies it in process.
type Submitter interface {
	Submit(ctx context.Context, req booking.SubmitRequest) (*booking.Result, error)
}

// Cell is one day in the month grid.
type Cell struct {
	Date     dates.Date
	Label    string
	Disabled bool
	Today    bool
	Selected bool
	HasRisk  bool
	Risk     forecast.WindRisk
}

// Grid is a month laid out in Sunday-first weeks. Leading is the number of
// blank cells before the 1st.
type Grid struct {
	Month   dates.Month
	Title   string
	Headers [7]string
	Leading int
	Cells   []Cell
}

// Weeks splits the grid into rows of seven, padding with nil cells.
func (g Grid) Weeks() [][]*Cell {
	var weeks [][]*Cell
	row := make([]*Cell, 0, 7)
	for i := 0; i < g.Leading; i++ {
		row = append(row, nil)
	}
	for i := range g.Cells {
		row = append(row, &g.Cells[i])
		if len(row) == 7 {
			weeks = append(weeks, row)
			row = make([]*Cell, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, nil)
		}
		weeks = append(weeks, row)
	}
	return weeks
}

// BuildGrid lays out month. Days before today are disabled; days with a
// forecast sample carry its risk.
func BuildGrid(month dates.Month, today, selected dates.Date, f *forecast.Forecast, locale i18n.Locale) Grid {
	first := month.FirstDay()
	grid := Grid{
		Month:   month,
		Title:   i18n.MonthTitle(locale, month),
		Headers: i18n.WeekdayHeaders(locale),
		Leading: int(first.Weekday()),
		Cells:   make([]Cell, 0, month.Days()),
	}

	for i := 0; i < month.Days(); i++ {
		day := first.AddDays(i)
		cell := Cell{
			Date:     day,
			Label:    i18n.FormatDigits(locale, strconv.Itoa(day.Day)),
			Disabled: day.Before(today),
			Today:    day.Equal(today),
			Selected: !selected.IsZero() && day.Equal(selected),
		}
		if sample, ok := f.Lookup(day); ok {
			cell.HasRisk = true
			cell.Risk = sample.Risk()
		}
		grid.Cells = append(grid.Cells, cell)
	}
	return grid
}

// Snapshot is a consistent copy of the view-model for rendering.
type Snapshot struct {
	State        State
	Locale       i18n.Locale
	Loaded       bool
	Today        dates.Date
	Grid         Grid
	Selected     dates.Date
	Weather      *forecast.ForecastSample
	Advisory     string
	Form         booking.Form
	FieldErrors  map[string]string
	SubmitError  string
	Result       *booking.Result
	ConfirmLabel string
}
