package period

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const daysPerWeek = 7

// CalendarWeek is one week row of a month. Start and End are inclusive dates at UTC midnight.
type CalendarWeek struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days covered by the week
func (w CalendarWeek) Days() int {
	return daysBetween(w.Start, w.End) + 1
}

// Contains checks if the date falls within the week
func (w CalendarWeek) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Label returns the week label such as "Week 2"
func (w CalendarWeek) Label() string {
	return WeekLabel(w.Index)
}

// Range returns the formatted date range of the week
func (w CalendarWeek) Range() string {
	return FormatRange(w)
}

// Period is a resolved (month, year, week) selection
type Period struct {
	Month     Month        `json:"month"`
	Year      int          `json:"year"`
	WeekIndex int          `json:"week_index"`
	Week      CalendarWeek `json:"week"`
}

// Calculator computes week rows under a single, fixed week convention.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	convention Convention
}

// New creates a Calculator bound to the given convention
func New(convention Convention) *Calculator {
	return &Calculator{convention: convention}
}

// Convention returns the convention the calculator was created with
func (c *Calculator) Convention() Convention {
	return c.convention
}

// WeeksInMonth returns the ordered week rows of the month
func (c *Calculator) WeeksInMonth(month Month, year int) ([]CalendarWeek, error) {
	if !month.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "month index out of range", goerr.V("month", int(month)))
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}

	first := time.Date(year, month.Time(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	switch c.convention {
	case ConventionCalendarGrid:
		return gridWeeks(first, last), nil
	case ConventionDayCount:
		return dayCountWeeks(first, last), nil
	default:
		return nil, goerr.Wrap(ErrInvalidInput, "unknown week convention", goerr.V("convention", int(c.convention)))
	}
}

// ResolveWeek returns the week with the given 1-based index
func (c *Calculator) ResolveWeek(month Month, year int, weekIndex int) (CalendarWeek, error) {
	weeks, err := c.WeeksInMonth(month, year)
	if err != nil {
		return CalendarWeek{}, err
	}
	if weekIndex < 1 || weekIndex > len(weeks) {
		return CalendarWeek{}, goerr.Wrap(ErrOutOfRange, "week does not exist in month",
			goerr.V("month", month.String()),
			goerr.V("year", year),
			goerr.V("weekIndex", weekIndex),
			goerr.V("weeks", len(weeks)),
		)
	}
	return weeks[weekIndex-1], nil
}

// IsValidWeekIndex checks if weekIndex exists for the month and year
func (c *Calculator) IsValidWeekIndex(month Month, year int, weekIndex int) bool {
	if weekIndex < 1 {
		return false
	}
	weeks, err := c.WeeksInMonth(month, year)
	if err != nil {
		return false
	}
	return weekIndex <= len(weeks)
}

// Resolve builds a Period for the selection
func (c *Calculator) Resolve(month Month, year int, weekIndex int) (Period, error) {
	week, err := c.ResolveWeek(month, year, weekIndex)
	if err != nil {
		return Period{}, err
	}
	return Period{
		Month:     month,
		Year:      year,
		WeekIndex: weekIndex,
		Week:      week,
	}, nil
}

// WeekContaining returns the period of t's own month whose week covers t
func (c *Calculator) WeekContaining(t time.Time) (Period, error) {
	month := MonthOf(t)
	weeks, err := c.WeeksInMonth(month, t.Year())
	if err != nil {
		return Period{}, err
	}
	for _, w := range weeks {
		if w.Contains(t) {
			return Period{Month: month, Year: t.Year(), WeekIndex: w.Index, Week: w}, nil
		}
	}
	// unreachable: both conventions cover every day of the month
	return Period{}, goerr.Wrap(ErrOutOfRange, "no week contains date", goerr.V("date", t))
}

// WeekLabel returns the display label of a week index
func WeekLabel(index int) string {
	return fmt.Sprintf("Week %d", index)
}

func gridWeeks(first, last time.Time) []CalendarWeek {
	// Weekday: Sunday = 0. Shift so Monday = 0.
	gridStart := first.AddDate(0, 0, -((int(first.Weekday()) + 6) % daysPerWeek))
	gridEnd := last.AddDate(0, 0, (daysPerWeek-int(last.Weekday()))%daysPerWeek)

	days := daysBetween(gridStart, gridEnd) + 1
	count := (days + daysPerWeek - 1) / daysPerWeek

	weeks := make([]CalendarWeek, 0, count)
	for i := 0; i < count; i++ {
		start := gridStart.AddDate(0, 0, i*daysPerWeek)
		weeks = append(weeks, CalendarWeek{
			Index: i + 1,
			Start: start,
			End:   start.AddDate(0, 0, daysPerWeek-1),
		})
	}
	return weeks
}

func dayCountWeeks(first, last time.Time) []CalendarWeek {
	daysInMonth := last.Day()
	count := (daysInMonth + daysPerWeek - 1) / daysPerWeek

	weeks := make([]CalendarWeek, 0, count)
	for i := 0; i < count; i++ {
		start := first.AddDate(0, 0, i*daysPerWeek)
		end := start.AddDate(0, 0, daysPerWeek-1)
		if end.After(last) {
			end = last
		}
		weeks = append(weeks, CalendarWeek{
			Index: i + 1,
			Start: start,
			End:   end,
		})
	}
	return weeks
}

// daysBetween counts whole days from a to b. Both are UTC midnights, so there is no DST skew.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
