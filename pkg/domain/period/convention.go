package period

import "github.com/m-mizutani/goerr/v2"

// Convention selects how the weeks of a month are numbered
type Convention int

const (
	// ConventionCalendarGrid tiles the Monday-start calendar grid containing the month.
	// Every week spans 7 days and may include days of the adjacent months.
	ConventionCalendarGrid Convention = iota
	// ConventionDayCount numbers days 1-7, 8-14, ... of the month itself.
	// The last week is capped at the month end and may be shorter than 7 days.
	ConventionDayCount
)

// String returns the configuration name of the convention
func (c Convention) String() string {
	switch c {
	case ConventionCalendarGrid:
		return "grid"
	case ConventionDayCount:
		return "day-count"
	default:
		return "unknown"
	}
}

// IsValid checks if the convention is known
func (c Convention) IsValid() bool {
	return c == ConventionCalendarGrid || c == ConventionDayCount
}

// ParseConvention parses "grid" or "day-count"
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "grid", "":
		return ConventionCalendarGrid, nil
	case "day-count":
		return ConventionDayCount, nil
	default:
		return 0, goerr.Wrap(ErrInvalidInput, "unknown week convention", goerr.V("convention", s))
	}
}
