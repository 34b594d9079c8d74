package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/period"
)

// Calendar implements CalendarUseCase
type Calendar struct {
	calc *period.Calculator
}

// NewCalendar creates a new Calendar use case
func NewCalendar(calc *period.Calculator) *Calendar {
	return &Calendar{calc: calc}
}

// Weeks returns the week rows of the month
func (u *Calendar) Weeks(ctx context.Context, month, year string) ([]period.CalendarWeek, error) {
	m, y, err := parseMonthYear(month, year)
	if err != nil {
		return nil, err
	}
	return u.calc.WeeksInMonth(m, y)
}

// Resolve resolves a month, year and week selection
func (u *Calendar) Resolve(ctx context.Context, month, year string, week int) (period.Period, error) {
	m, y, err := parseMonthYear(month, year)
	if err != nil {
		return period.Period{}, err
	}
	return u.calc.Resolve(m, y, week)
}

// Reselect changes the month and year of the current selection. The week is kept
// when it exists in the new month, otherwise the selection falls back to week 1.
func (u *Calendar) Reselect(ctx context.Context, current period.Period, month, year string) (period.Period, error) {
	m, y, err := parseMonthYear(month, year)
	if err != nil {
		return period.Period{}, err
	}

	week := current.WeekIndex
	if week < 1 {
		week = 1
	}

	p, err := u.calc.Resolve(m, y, week)
	if errors.Is(err, period.ErrOutOfRange) {
		ctxlog.From(ctx).Debug("Selected week does not exist in new month, resetting to week 1",
			"month", m.String(),
			"year", y,
			"week", week,
		)
		return u.calc.Resolve(m, y, 1)
	}
	if err != nil {
		return period.Period{}, err
	}
	return p, nil
}

// Current returns the period containing now
func (u *Calendar) Current(ctx context.Context, now time.Time) (period.Period, error) {
	return u.calc.WeekContaining(now)
}

func parseMonthYear(month, year string) (period.Month, int, error) {
	m, err := period.ParseMonth(month)
	if err != nil {
		return 0, 0, goerr.Wrap(err, "failed to parse month")
	}
	y, err := period.ParseYear(year)
	if err != nil {
		return 0, 0, goerr.Wrap(err, "failed to parse year")
	}
	return m, y, nil
}
