// Package tui is the terminal booking kiosk. It renders the scheduler
// view-model and forwards key presses to it.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"allweather.app/internal/adapters/preferences"
	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/forecast"
	"allweather.app/internal/core/scheduler"
	"allweather.app/internal/i18n"
	"allweather.app/pkg/dates"
	errorspkg "allweather.app/pkg/errors"
)

type focusArea int

const (
	focusCalendar focusArea = iota
	focusForm
)

// formFields is the tab order of the contact form.
var formFields = []string{booking.FieldName, booking.FieldPhone, booking.FieldAddress, booking.FieldEmail}

var fieldLabels = map[string]i18n.Key{
	booking.FieldName:    i18n.KeyFieldName,
	booking.FieldPhone:   i18n.KeyFieldPhone,
	booking.FieldAddress: i18n.KeyFieldAddress,
	booking.FieldEmail:   i18n.KeyFieldEmail,
}

type PreferenceStore interface {
	Get() preferences.Preferences
	SetTheme(theme preferences.Theme) error
	SetLocale(locale i18n.Locale) error
}

// CurrentSource supplies the header's current conditions.
type CurrentSource interface {
	Current(ctx context.Context) (forecast.CurrentWeather, bool)
}

// ViewModelFactory builds a scheduler for locale. onChange must be wired to
// the view-model's OnChange.
type ViewModelFactory func(locale i18n.Locale, onChange func()) (*scheduler.ViewModel, error)

type Config struct {
	Context      context.Context
	NewViewModel ViewModelFactory
	Preferences  PreferenceStore
	// Current is optional.
	Current CurrentSource
}

// Model represents the kiosk's state
type Model struct {
	ctx     context.Context
	newVM   ViewModelFactory
	prefs   PreferenceStore
	current CurrentSource

	vm      *scheduler.ViewModel
	changes chan struct{}
	locale  i18n.Locale
	styles  styles

	focus   focusArea
	cursor  dates.Date
	inputs  []textinput.Model
	focused int
	spinner spinner.Model

	weather *forecast.CurrentWeather
	notice  string
	err     error
	width   int
	height  int
}

func NewModel(cfg Config) (Model, error) {
	if cfg.NewViewModel == nil {
		return Model{}, errorspkg.NewValidationError("view-model factory is required")
	}
	if cfg.Preferences == nil {
		return Model{}, errorspkg.NewValidationError("preferences are required")
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	prefs := cfg.Preferences.Get()
	m := Model{
		ctx:     cfg.Context,
		newVM:   cfg.NewViewModel,
		prefs:   cfg.Preferences,
		current: cfg.Current,
		changes: make(chan struct{}, 1),
		locale:  prefs.Locale,
		styles:  newStyles(prefs.Theme),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	vm, err := m.newVM(m.locale, m.notify)
	if err != nil {
		return Model{}, err
	}
	m.vm = vm
	m.cursor = vm.Snapshot().Today
	m.inputs = m.newInputs()
	return m, nil
}

func (m Model) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m Model) newInputs() []textinput.Model {
	inputs := make([]textinput.Model, len(formFields))
	for i, field := range formFields {
		ti := textinput.New()
		ti.Placeholder = i18n.T(m.locale, fieldLabels[field])
		ti.CharLimit = 100
		ti.Width = 40
		ti.Prompt = ""
		inputs[i] = ti
	}
	return inputs
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

func (m Model) fetchCurrent() tea.Cmd {
	if m.current == nil {
		return nil
	}
	source, ctx := m.current, m.ctx
	return func() tea.Msg {
		current, ok := source.Current(ctx)
		return currentFetchedMsg{current: current, ok: ok}
	}
}

// Init initializes the kiosk
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.changes), m.fetchCurrent(), m.spinner.Tick, textinput.Blink)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateChangedMsg:
		if m.focus == focusForm && m.vm.Snapshot().State == scheduler.Browsing {
			m = m.resetForm()
		}
		return m, waitForChange(m.changes)

	case submitDoneMsg:
		if msg.err != nil {
			m = m.focusFirstInvalid()
		}
		return m, nil

	case currentFetchedMsg:
		if msg.ok {
			current := msg.current
			m.weather = &current
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.vm.Dispose()
			return m, tea.Quit
		}
		m.notice = ""
		if m.focus == focusForm {
			return m.handleFormKey(msg)
		}
		return m.handleCalendarKey(msg)
	}

	return m, nil
}

func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.vm.Dispose()
		return m, tea.Quit
	case "left":
		m = m.moveCursor(-1)
	case "right":
		m = m.moveCursor(1)
	case "up":
		m = m.moveCursor(-7)
	case "down":
		m = m.moveCursor(7)
	case "pgdown", "]":
		m = m.shiftMonth(1)
	case "pgup", "[":
		m = m.shiftMonth(-1)
	case "enter", " ":
		return m.selectCursor()
	case "t":
		return m.toggleTheme()
	case "l":
		return m.toggleLocale()
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputs[m.focused].Blur()
		m.focus = focusCalendar
		return m, nil
	case "tab", "down":
		return m.focusInput((m.focused + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m.focusInput((m.focused + len(m.inputs) - 1) % len(m.inputs))
	case "ctrl+s":
		return m.confirm()
	case "enter":
		if m.focused < len(m.inputs)-1 {
			return m.focusInput(m.focused + 1)
		}
		return m.confirm()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	if err := m.vm.SetField(formFields[m.focused], m.inputs[m.focused].Value()); err != nil {
		m.notice = err.Error()
	}
	return m, cmd
}

func (m Model) focusInput(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focused].Blur()
	m.focused = i
	return m, m.inputs[i].Focus()
}

func (m Model) focusFirstInvalid() Model {
	fields := m.vm.Snapshot().FieldErrors
	for i, field := range formFields {
		if _, ok := fields[field]; ok {
			m.inputs[m.focused].Blur()
			m.focused = i
			m.inputs[i].Focus()
			return m
		}
	}
	return m
}

func (m Model) resetForm() Model {
	m.inputs = m.newInputs()
	m.focused = 0
	m.focus = focusCalendar
	return m
}

// moveCursor moves the highlighted day, following it into the next or
// previous month.
func (m Model) moveCursor(days int) Model {
	next := m.cursor.AddDays(days)
	month := m.vm.Snapshot().Grid.Month
	switch {
	case next.Before(month.FirstDay()):
		m.vm.PrevMonth()
	case !month.Contains(next) && next.After(month.FirstDay()):
		m.vm.NextMonth()
	}
	m.cursor = next
	return m
}

func (m Model) shiftMonth(n int) Model {
	if n > 0 {
		m.vm.NextMonth()
	} else {
		m.vm.PrevMonth()
	}
	month := m.vm.Snapshot().Grid.Month
	day := m.cursor.Day
	if day > month.Days() {
		day = month.Days()
	}
	m.cursor = dates.Date{Year: month.Year, Month: month.Month, Day: day}
	return m
}

func (m Model) selectCursor() (tea.Model, tea.Cmd) {
	if err := m.vm.SelectDay(m.cursor); err != nil {
		if errors.Is(err, scheduler.ErrPastDate) {
			m.notice = i18n.T(m.locale, i18n.KeyDateInPast)
		} else {
			m.notice = err.Error()
		}
		return m, nil
	}
	m.focus = focusForm
	return m.focusInput(m.focused)
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	if state := m.vm.Snapshot().State; state == scheduler.Submitting || state == scheduler.Submitted {
		return m, nil
	}
	vm, ctx := m.vm, m.ctx
	return m, func() tea.Msg {
		return submitDoneMsg{err: vm.Confirm(ctx)}
	}
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	next := m.prefs.Get().Theme.Toggle()
	if err := m.prefs.SetTheme(next); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.styles = newStyles(next)
	return m, nil
}

// toggleLocale switches language and rebuilds the view-model in the new
// locale, carrying over the month, selection and form input.
func (m Model) toggleLocale() (tea.Model, tea.Cmd) {
	next := i18n.Arabic
	if m.locale == i18n.Arabic {
		next = i18n.English
	}
	if err := m.prefs.SetLocale(next); err != nil {
		m.notice = err.Error()
		return m, nil
	}

	prev := m.vm.Snapshot()
	vm, err := m.newVM(next, m.notify)
	if err != nil {
		return m, func() tea.Msg { return errMsg{err: err} }
	}
	m.vm.Dispose()
	m.vm = vm
	m.locale = next

	syncMonth(vm, prev.Grid.Month)
	if !prev.Selected.IsZero() {
		_ = vm.SelectDay(prev.Selected)
	}
	values := make([]string, len(m.inputs))
	for i := range m.inputs {
		values[i] = m.inputs[i].Value()
	}
	m.inputs = m.newInputs()
	for i, field := range formFields {
		m.inputs[i].SetValue(values[i])
		_ = vm.SetField(field, values[i])
	}
	if m.focus == focusForm {
		m.inputs[m.focused].Focus()
	}
	return m, nil
}

func syncMonth(vm *scheduler.ViewModel, target dates.Month) {
	current := vm.Snapshot().Grid.Month
	diff := (target.Year-current.Year)*12 + int(target.Month) - int(current.Month)
	for ; diff > 0; diff-- {
		vm.NextMonth()
	}
	for ; diff < 0; diff++ {
		vm.PrevMonth()
	}
}
