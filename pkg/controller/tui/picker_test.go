package tui_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/checkin/pkg/controller/tui"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/usecase"
)

func newPicker(t *testing.T, month period.Month, year, week int) tui.Model {
	t.Helper()
	calendar := usecase.NewCalendar(period.New(period.ConventionCalendarGrid))
	m, err := tui.NewModel(context.Background(), calendar, period.Period{Month: month, Year: year, WeekIndex: week})
	gt.NoError(t, err).Required()
	return m
}

func press(m tui.Model, keys ...tea.KeyMsg) tui.Model {
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(tui.Model)
	}
	return m
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestPickerStartsOnWeekField(t *testing.T) {
	m := newPicker(t, period.Jan, 2021, 5)
	gt.Equal(t, m.Focus(), tui.FieldWeek)
	gt.A(t, m.Weeks()).Length(5)
	gt.Equal(t, m.Period().Week.Range(), "Jan 25 - Jan 31, 2021")
}

func TestPickerMonthChangeResetsMissingWeek(t *testing.T) {
	m := newPicker(t, period.Jan, 2021, 5)

	// week -> month
	m = press(m, keyTab, keyRight)
	gt.Equal(t, m.Focus(), tui.FieldMonth)
	gt.Equal(t, m.Period().Month, period.Feb)
	gt.Equal(t, m.Period().WeekIndex, 1)
	gt.A(t, m.Weeks()).Length(4)
}

func TestPickerMonthChangeKeepsExistingWeek(t *testing.T) {
	m := newPicker(t, period.Mar, 2021, 3)

	m = press(m, keyTab, keyLeft)
	gt.Equal(t, m.Period().Month, period.Feb)
	gt.Equal(t, m.Period().WeekIndex, 3)
	gt.Equal(t, m.Period().Week.Range(), "Feb 15 - Feb 21, 2021")
}

func TestPickerYearChange(t *testing.T) {
	m := newPicker(t, period.Feb, 2022, 5)

	// week -> month -> year
	m = press(m, keyTab, keyTab, keyLeft)
	gt.Equal(t, m.Focus(), tui.FieldYear)
	gt.Equal(t, m.Period().Year, 2021)
	gt.Equal(t, m.Period().WeekIndex, 1)
}

func TestPickerWeekBounds(t *testing.T) {
	m := newPicker(t, period.Feb, 2021, 4)

	m = press(m, keyRight)
	gt.Equal(t, m.Period().WeekIndex, 4)

	m = press(m, keyLeft, keyLeft, keyLeft, keyLeft)
	gt.Equal(t, m.Period().WeekIndex, 1)
	gt.Equal(t, m.Period().Week.Index, 1)
}

func TestPickerResult(t *testing.T) {
	t.Run("enter selects", func(t *testing.T) {
		m := newPicker(t, period.Dec, 2025, 2)
		updated, cmd := m.Update(keyEnter)
		gt.V(t, cmd).NotNil()

		p, ok := updated.(tui.Model).Result()
		gt.True(t, ok)
		gt.Equal(t, p.Month, period.Dec)
		gt.Equal(t, p.WeekIndex, 2)
	})

	t.Run("esc cancels", func(t *testing.T) {
		m := newPicker(t, period.Dec, 2025, 2)
		updated, _ := m.Update(keyEsc)

		_, ok := updated.(tui.Model).Result()
		gt.False(t, ok)
	})
}

func TestPickerView(t *testing.T) {
	m := newPicker(t, period.Dec, 2025, 5)
	view := m.View()
	gt.S(t, view).Contains("Month: Dec")
	gt.S(t, view).Contains("Dec 29, 2025 - Jan 4, 2026")
}

func TestRenderWeeks(t *testing.T) {
	weeks, err := period.New(period.ConventionDayCount).WeeksInMonth(period.Feb, 2024)
	gt.NoError(t, err).Required()

	out := tui.RenderWeeks(period.Feb, 2024, weeks)
	gt.S(t, out).Contains("Feb 2024")
	gt.S(t, out).Contains("Feb 29 - Feb 29, 2024")
}
