package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/secmon-lab/checkin/pkg/domain/period"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	fieldStyle    = lipgloss.NewStyle().Padding(0, 1)
	focusedStyle  = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View implements tea.Model
func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Reporting period"))
	b.WriteString("\n\n")

	fields := []string{
		m.renderField(FieldMonth, "Month: "+m.period.Month.String()),
		m.renderField(FieldYear, "Year: "+strconv.Itoa(m.period.Year)),
		m.renderField(FieldWeek, "Week: "+strconv.Itoa(m.period.WeekIndex)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, fields...))
	b.WriteString("\n\n")

	for _, w := range m.weeks {
		line := w.Label() + "  " + w.Range()
		if w.Index == m.period.WeekIndex {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(mutedStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab: next field  ←/→: change  enter: select  esc: cancel"))
	return b.String()
}

func (m Model) renderField(f Field, text string) string {
	if f == m.field {
		return focusedStyle.Render(text)
	}
	return fieldStyle.Render(text)
}

// RenderWeeks renders the week rows of a month as a static list
func RenderWeeks(month period.Month, year int, weeks []period.CalendarWeek) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(month.String() + " " + strconv.Itoa(year)))
	b.WriteString("\n")
	for _, w := range weeks {
		b.WriteString(fieldStyle.Render(w.Label()))
		b.WriteString(mutedStyle.Render(w.Range()))
		b.WriteString("\n")
	}
	return b.String()
}
