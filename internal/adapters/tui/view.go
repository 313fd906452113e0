package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"allweather.app/internal/core/booking"
	"allweather.app/internal/core/scheduler"
	"allweather.app/internal/i18n"
)

// View renders the kiosk
func (m Model) View() string {
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.errText.Render("✗ "+m.err.Error()),
			m.styles.help.Render("Ctrl+C: Quit"),
		)
	}

	snap := m.vm.Snapshot()

	sections := []string{
		m.styles.title.Render("🚁 ALL Weather"),
		m.renderCurrent(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderCalendar(snap), m.renderForm(snap)),
	}
	if m.notice != "" {
		sections = append(sections, m.styles.errText.Render(m.notice))
	}
	sections = append(sections, m.styles.help.Render(m.helpText()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) helpText() string {
	if m.focus == focusForm {
		return "Tab/↑/↓: Field • Enter: Next/Confirm • Ctrl+S: Confirm • Esc: Calendar • Ctrl+C: Quit"
	}
	return "←/→/↑/↓: Day • [/]: Month • Enter: Select • T: Theme • L: العربية/English • Q: Quit"
}

func (m Model) renderCurrent() string {
	if m.weather == nil {
		return m.styles.muted.Render(i18n.T(m.locale, i18n.KeyWeatherUnavailable))
	}
	w := m.weather
	risk := w.Risk()
	line := fmt.Sprintf("%d°C  %s  💨 %s %s  💧 %s %d%%",
		w.TemperatureC,
		w.Description,
		booking.FormatWindSpeed(w.WindSpeedMs),
		i18n.T(m.locale, i18n.KeyMessageSpeedUnit),
		i18n.T(m.locale, i18n.KeyHumidity),
		w.Humidity,
	)
	return m.styles.value.Render(line) + "  " + m.styles.risk[risk].Render(risk.Advisory(m.locale))
}

func (m Model) renderCalendar(snap scheduler.Snapshot) string {
	grid := snap.Grid

	var b strings.Builder
	b.WriteString(m.styles.title.Render(grid.Title))
	b.WriteString("\n\n")
	for _, h := range grid.Headers {
		b.WriteString(m.styles.label.Width(4).Align(lipgloss.Right).Render(h))
	}
	b.WriteString("\n")

	for _, week := range grid.Weeks() {
		for _, cell := range week {
			b.WriteString(m.renderCell(cell))
		}
		b.WriteString("\n")
	}

	if !snap.Loaded {
		b.WriteString("\n" + m.spinner.View() + " " + m.styles.muted.Render("…"))
	}

	pane := m.styles.pane
	if m.focus == focusCalendar {
		pane = m.styles.active
	}
	return pane.Render(b.String())
}

func (m Model) renderCell(cell *scheduler.Cell) string {
	if cell == nil {
		return strings.Repeat(" ", 4)
	}

	style := m.styles.day
	switch {
	case m.focus == focusCalendar && cell.Date.Equal(m.cursor):
		style = m.styles.cursor
	case cell.Selected:
		style = m.styles.selected
	case cell.Today:
		style = m.styles.today
	case cell.Disabled:
		style = m.styles.past
	}

	marker := " "
	if cell.HasRisk && !cell.Disabled {
		marker = m.styles.risk[cell.Risk].Render("•")
	}
	return style.Render(cell.Label) + marker
}

func (m Model) renderForm(snap scheduler.Snapshot) string {
	pane := m.styles.pane
	if m.focus == focusForm {
		pane = m.styles.active
	}

	if snap.State == scheduler.Browsing {
		return pane.Render(m.styles.muted.Render(i18n.T(m.locale, i18n.KeySelectDate)))
	}

	sections := []string{
		m.styles.title.Render(i18n.LongDate(m.locale, snap.Selected)),
	}
	if snap.Weather != nil {
		w := snap.Weather
		sections = append(sections,
			m.styles.value.Render(fmt.Sprintf("%d°C - %s  💨 %s %s",
				w.TemperatureC, w.Description,
				booking.FormatWindSpeed(w.WindSpeedMs), i18n.T(m.locale, i18n.KeyMessageSpeedUnit))),
			m.styles.risk[w.Risk()].Render(snap.Advisory),
		)
	} else {
		sections = append(sections, m.styles.muted.Render(i18n.T(m.locale, i18n.KeyNotAvailable)))
	}
	if msg, ok := snap.FieldErrors[booking.FieldDate]; ok {
		sections = append(sections, m.styles.errText.Render(msg))
	}
	sections = append(sections, "")

	for i, field := range formFields {
		sections = append(sections,
			m.styles.label.Render(i18n.T(m.locale, fieldLabels[field])),
			m.inputs[i].View(),
		)
		if msg, ok := snap.FieldErrors[field]; ok {
			sections = append(sections, m.styles.errText.Render(msg))
		}
	}
	sections = append(sections, "")

	button := "[ " + snap.ConfirmLabel + " ]"
	switch {
	case snap.State == scheduler.Submitting:
		sections = append(sections, m.spinner.View()+" "+m.styles.muted.Render(button))
	case snap.Weather != nil && snap.Weather.Risk().MayBeRescheduled():
		sections = append(sections, m.styles.risk[snap.Weather.Risk()].Render(button))
	default:
		sections = append(sections, m.styles.title.Render(button))
	}

	if snap.SubmitError != "" {
		sections = append(sections, m.styles.errText.Render(snap.SubmitError))
	}
	if snap.State == scheduler.Submitted && snap.Result != nil {
		sections = append(sections, m.styles.success.Render(fmt.Sprintf("✓ %s  %s", snap.Result.Message, snap.Result.BookingID)))
	}

	return pane.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
