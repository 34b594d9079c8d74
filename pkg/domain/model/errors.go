package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrProjectNotFound = goerr.New("project not found")
	ErrReportNotFound  = goerr.New("status report not found")
	ErrCheckInNotFound = goerr.New("check-in not found")
	ErrValidation      = goerr.New("validation failed")
)
