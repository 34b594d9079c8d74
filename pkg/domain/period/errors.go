package period

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for period calculation
var (
	// ErrInvalidInput is returned for a malformed month name, year or week convention
	ErrInvalidInput = goerr.New("invalid period input")
	// ErrOutOfRange is returned when a week index does not exist in the month
	ErrOutOfRange = goerr.New("week index out of range")
)
