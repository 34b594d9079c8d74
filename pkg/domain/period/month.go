package period

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Month is a zero-based month index (0 = Jan, 11 = Dec)
type Month int

const (
	Jan Month = iota
	Feb
	Mar
	Apr
	May
	Jun
	Jul
	Aug
	Sep
	Oct
	Nov
	Dec
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Months returns all months in calendar order
func Months() []Month {
	months := make([]Month, 0, len(monthNames))
	for i := range monthNames {
		months = append(months, Month(i))
	}
	return months
}

// ParseMonth parses one of the twelve three-letter month names
func ParseMonth(name string) (Month, error) {
	for i, n := range monthNames {
		if n == name {
			return Month(i), nil
		}
	}
	return 0, goerr.Wrap(ErrInvalidInput, "unknown month name", goerr.V("month", name))
}

// MonthOf returns the Month of the given time
func MonthOf(t time.Time) Month {
	return Month(t.Month() - time.January)
}

// IsValid checks if the month index is within 0..11
func (m Month) IsValid() bool {
	return m >= Jan && m <= Dec
}

// String returns the three-letter month name
func (m Month) String() string {
	if !m.IsValid() {
		return "Month(" + strconv.Itoa(int(m)) + ")"
	}
	return monthNames[m]
}

// Time returns the time.Month value
func (m Month) Time() time.Month {
	return time.January + time.Month(m)
}

// Next returns the following month, wrapping December to January
func (m Month) Next() Month {
	return (m + 1) % 12
}

// Prev returns the preceding month, wrapping January to December
func (m Month) Prev() Month {
	return (m + 11) % 12
}

// MarshalText encodes the month as its three-letter name
func (m Month) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "month index out of range", goerr.V("month", int(m)))
	}
	return []byte(monthNames[m]), nil
}

// UnmarshalText decodes a three-letter month name
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseYear parses a four-digit numeric year
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidInput, "year is not numeric", goerr.V("year", s))
	}
	if err := validateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}

func validateYear(year int) error {
	if year < 1 || year > 9999 {
		return goerr.Wrap(ErrInvalidInput, "year must be between 1 and 9999", goerr.V("year", year))
	}
	return nil
}
