package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/forecast"
	"allweather.app/internal/i18n"
	"allweather.app/internal/ports"
	"allweather.app/pkg/dates"
	"allweather.app/pkg/errors"
)

// DefaultResetDelay is how long a confirmed booking stays on screen.
const DefaultResetDelay = 3 * time.Second

type ViewModel struct {
	source     ForecastSource
	submitter  Submitter
	logger     ports.Logger
	locale     i18n.Locale
	location   *time.Location
	now        func() time.Time
	resetDelay time.Duration
	onChange   func()

	forecast atomic.Pointer[forecast.Forecast]
	loaded   chan struct{}

	mu          sync.Mutex
	state       State
	month       dates.Month
	selected    dates.Date
	weather     *forecast.ForecastSample
	form        booking.Form
	fieldErrors map[string]string
	submitErr   string
	result      *booking.Result
	resetTimer  *time.Timer
	disposed    bool
}

type Dependencies struct {
	Source     ForecastSource
	Submitter  Submitter
	Logger     ports.Logger
	Locale     i18n.Locale
	Location   *time.Location
	Now        func() time.Time
	ResetDelay time.Duration
	// OnChange is called after state changes that happen off the caller's
	// goroutine: forecast arrival and the post-submit reset.
	OnChange func()
}

// New builds the view-model and starts loading the forecast once in the
// background. ctx bounds that load.
func New(ctx context.Context, deps Dependencies) (*ViewModel, error) {
	if deps.Source == nil {
		return nil, errors.NewValidationError("forecast source is required")
	}
	if deps.Submitter == nil {
		return nil, errors.NewValidationError("submitter is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.ResetDelay <= 0 {
		deps.ResetDelay = DefaultResetDelay
	}
	if deps.Locale == "" {
		deps.Locale = i18n.DefaultLocale
	}

	vm := &ViewModel{
		source:      deps.Source,
		submitter:   deps.Submitter,
		logger:      deps.Logger,
		locale:      deps.Locale,
		location:    deps.Location,
		now:         deps.Now,
		resetDelay:  deps.ResetDelay,
		onChange:    deps.OnChange,
		loaded:      make(chan struct{}),
		fieldErrors: map[string]string{},
	}
	vm.month = vm.today().MonthOf()

	go vm.load(ctx)
	return vm, nil
}

func (vm *ViewModel) load(ctx context.Context) {
	defer close(vm.loaded)

	samples := vm.source.Forecast(ctx)
	vm.forecast.Store(forecast.NewForecast(samples, vm.now()))
	vm.logger.Debug("Scheduler forecast loaded", ports.F("days", len(samples)))

	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return
	}
	if !vm.selected.IsZero() && vm.weather == nil {
		vm.weather = vm.lookup(vm.selected)
	}
	vm.mu.Unlock()

	vm.changed()
}

// Loaded is closed once the initial forecast load has finished.
func (vm *ViewModel) Loaded() <-chan struct{} {
	return vm.loaded
}

func (vm *ViewModel) today() dates.Date {
	return dates.Today(vm.now, vm.location)
}

func (vm *ViewModel) lookup(day dates.Date) *forecast.ForecastSample {
	sample, ok := vm.forecast.Load().Lookup(day)
	if !ok {
		return nil
	}
	return &sample
}

func (vm *ViewModel) changed() {
	if vm.onChange != nil {
		vm.onChange()
	}
}

// NextMonth shows the following month. The selection is kept.
func (vm *ViewModel) NextMonth() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.month = vm.month.Next()
}

// PrevMonth shows the previous month. The selection is kept.
func (vm *ViewModel) PrevMonth() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.month = vm.month.Prev()
}

// SelectDay selects a day for booking. Days before today are rejected and
// leave the state unchanged.
func (vm *ViewModel) SelectDay(day dates.Date) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.disposed {
		return ErrDisposed
	}
	if vm.state == Submitting || vm.state == Submitted {
		return ErrBusy
	}
	if day.IsZero() {
		return ErrNoDate
	}
	if day.Before(vm.today()) {
		return ErrPastDate
	}

	vm.state = DaySelected
	vm.selected = day
	vm.weather = vm.lookup(day)
	vm.submitErr = ""
	delete(vm.fieldErrors, booking.FieldDate)
	return nil
}

// SetField updates one form field and clears its error.
func (vm *ViewModel) SetField(field, value string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state == Submitting {
		return ErrBusy
	}
	switch field {
	case booking.FieldName:
		vm.form.Name = value
	case booking.FieldPhone:
		vm.form.Phone = value
	case booking.FieldAddress:
		vm.form.Address = value
	case booking.FieldEmail:
		vm.form.Email = value
	default:
		return ErrUnknownKey
	}
	delete(vm.fieldErrors, field)
	return nil
}

// Confirm validates the form and submits the booking. It blocks for the
// duration of the request. On failure the view returns to DaySelected with
// the error exposed so the user can retry.
func (vm *ViewModel) Confirm(ctx context.Context) error {
	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return ErrDisposed
	}
	switch vm.state {
	case Submitting, Submitted:
		vm.mu.Unlock()
		return ErrBusy
	case Browsing:
		vm.fieldErrors[booking.FieldDate] = i18n.T(vm.locale, i18n.KeyDateRequired)
		vm.mu.Unlock()
		return ErrNoDate
	}

	if _, err := booking.NewSubmission(vm.form, vm.selected, vm.weather, vm.locale, vm.today()); err != nil {
		vm.applyFieldErrors(err)
		vm.mu.Unlock()
		return err
	}

	req := booking.SubmitRequest{
		Form:    vm.form,
		Date:    vm.selected,
		Weather: vm.weather,
		Locale:  vm.locale,
	}
	vm.state = Submitting
	vm.submitErr = ""
	vm.mu.Unlock()

	result, err := vm.submitter.Submit(ctx, req)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.disposed {
		return ErrDisposed
	}
	if err != nil {
		vm.state = DaySelected
		vm.applyFieldErrors(err)
		vm.submitErr = i18n.T(vm.locale, i18n.KeyBookingFailed)
		vm.logger.Warn("Booking submission failed", ports.F("error", err))
		return err
	}

	vm.state = Submitted
	vm.result = result
	vm.resetTimer = time.AfterFunc(vm.resetDelay, vm.reset)
	return nil
}

func (vm *ViewModel) applyFieldErrors(err error) {
	for field, msg := range errors.FieldsOf(err) {
		vm.fieldErrors[field] = msg
	}
}

func (vm *ViewModel) reset() {
	vm.mu.Lock()
	if vm.disposed || vm.state != Submitted {
		vm.mu.Unlock()
		return
	}
	vm.state = Browsing
	vm.selected = dates.Date{}
	vm.weather = nil
	vm.form = booking.Form{}
	vm.fieldErrors = map[string]string{}
	vm.result = nil
	vm.resetTimer = nil
	vm.mu.Unlock()

	vm.changed()
}

// Dispose stops pending timers. Later callbacks are no-ops.
func (vm *ViewModel) Dispose() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.disposed = true
	if vm.resetTimer != nil {
		vm.resetTimer.Stop()
		vm.resetTimer = nil
	}
}

// Snapshot returns a copy of the current state for rendering.
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	today := vm.today()
	f := vm.forecast.Load()
	snap := Snapshot{
		State:       vm.state,
		Locale:      vm.locale,
		Loaded:      f != nil,
		Today:       today,
		Grid:        BuildGrid(vm.month, today, vm.selected, f, vm.locale),
		Selected:    vm.selected,
		Form:        vm.form,
		FieldErrors: make(map[string]string, len(vm.fieldErrors)),
		SubmitError: vm.submitErr,
	}
	for k, v := range vm.fieldErrors {
		snap.FieldErrors[k] = v
	}
	if vm.weather != nil {
		w := *vm.weather
		snap.Weather = &w
		snap.Advisory = w.Risk().Advisory(vm.locale)
	}
	if vm.result != nil {
		r := *vm.result
		snap.Result = &r
	}

	switch {
	case vm.state == Submitting:
		snap.ConfirmLabel = i18n.T(vm.locale, i18n.KeySubmitting)
	case snap.Weather != nil && snap.Weather.Risk().MayBeRescheduled():
		snap.ConfirmLabel = i18n.T(vm.locale, i18n.KeyMayBeRescheduled)
	default:
		snap.ConfirmLabel = i18n.T(vm.locale, i18n.KeyConfirmBooking)
	}
	return snap
}
