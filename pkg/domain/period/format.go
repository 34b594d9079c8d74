package period

import (
	"strconv"
	"time"
)

// FormatRange renders the week range for display.
// The year is printed once when both ends share it, e.g. "Dec 1 - Dec 7, 2025",
// and on both ends otherwise, e.g. "Dec 29, 2025 - Jan 4, 2026".
func FormatRange(w CalendarWeek) string {
	start, end := w.Start, w.End
	if start.Year() == end.Year() {
		return formatDay(start) + " - " + formatDay(end) + ", " + strconv.Itoa(end.Year())
	}
	return formatDay(start) + ", " + strconv.Itoa(start.Year()) + " - " +
		formatDay(end) + ", " + strconv.Itoa(end.Year())
}

// FormatDate renders a date as "Dec 8, 2025"
func FormatDate(t time.Time) string {
	return formatDay(t) + ", " + strconv.Itoa(t.Year())
}

// FormatShortDate renders a date as "Dec 8"
func FormatShortDate(t time.Time) string {
	return formatDay(t)
}

func formatDay(t time.Time) string {
	return MonthOf(t).String() + " " + strconv.Itoa(t.Day())
}
