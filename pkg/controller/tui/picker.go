package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/usecase"
)

// Field is the picker input that currently has focus
type Field int

const (
	FieldMonth Field = iota
	FieldYear
	FieldWeek
	fieldCount
)

// Model is the bubbletea model of the reporting period picker
type Model struct {
	ctx      context.Context
	calendar usecase.CalendarUseCase

	field  Field
	period period.Period
	weeks  []period.CalendarWeek
	err    error

	done      bool
	cancelled bool
}

// NewModel creates a picker starting at the given period
func NewModel(ctx context.Context, calendar usecase.CalendarUseCase, initial period.Period) (Model, error) {
	m := Model{
		ctx:      ctx,
		calendar: calendar,
		field:    FieldWeek,
	}

	p, err := calendar.Resolve(ctx, initial.Month.String(), strconv.Itoa(initial.Year), initial.WeekIndex)
	if err != nil {
		return Model{}, goerr.Wrap(err, "failed to resolve initial period")
	}
	if err := m.load(p); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "tab":
		m.field = (m.field + 1) % fieldCount
	case "shift+tab":
		m.field = (m.field + fieldCount - 1) % fieldCount
	case "left", "h", "up", "k":
		m.step(-1)
	case "right", "l", "down", "j":
		m.step(1)
	}
	return m, nil
}

// step moves the focused field by delta
func (m *Model) step(delta int) {
	m.err = nil

	switch m.field {
	case FieldMonth:
		month := m.period.Month.Next()
		if delta < 0 {
			month = m.period.Month.Prev()
		}
		m.reselect(month, m.period.Year)
	case FieldYear:
		m.reselect(m.period.Month, m.period.Year+delta)
	case FieldWeek:
		next := m.period.WeekIndex + delta
		if next < 1 || next > len(m.weeks) {
			return
		}
		m.period.WeekIndex = next
		m.period.Week = m.weeks[next-1]
	}
}

func (m *Model) reselect(month period.Month, year int) {
	p, err := m.calendar.Reselect(m.ctx, m.period, month.String(), strconv.Itoa(year))
	if err != nil {
		ctxlog.From(m.ctx).Debug("Period reselection rejected", "error", err)
		m.err = err
		return
	}
	if err := m.load(p); err != nil {
		m.err = err
	}
}

func (m *Model) load(p period.Period) error {
	weeks, err := m.calendar.Weeks(m.ctx, p.Month.String(), strconv.Itoa(p.Year))
	if err != nil {
		return goerr.Wrap(err, "failed to list weeks")
	}
	m.period = p
	m.weeks = weeks
	return nil
}

// Period returns the current selection
func (m Model) Period() period.Period {
	return m.period
}

// Weeks returns the week rows of the selected month
func (m Model) Weeks() []period.CalendarWeek {
	return m.weeks
}

// Focus returns the focused field
func (m Model) Focus() Field {
	return m.field
}

// Result returns the chosen period. ok is false when the picker was cancelled.
func (m Model) Result() (period.Period, bool) {
	return m.period, m.done && !m.cancelled
}

// Run runs the picker in the terminal and returns the chosen period
func Run(ctx context.Context, calendar usecase.CalendarUseCase, initial period.Period, opts ...tea.ProgramOption) (period.Period, bool, error) {
	model, err := NewModel(ctx, calendar, initial)
	if err != nil {
		return period.Period{}, false, err
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return period.Period{}, false, goerr.Wrap(err, "failed to run period picker")
	}

	p, ok := final.(Model).Result()
	return p, ok, nil
}
