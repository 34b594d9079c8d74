package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ProjectID represents a project identifier
type ProjectID string

// String returns the string representation
func (id ProjectID) String() string {
	return string(id)
}

// Validate checks if the project ID is not empty
func (id ProjectID) Validate() error {
	if id == "" {
		return goerr.New("project ID is empty")
	}
	return nil
}

// NewProjectID creates a new ProjectID
func NewProjectID() ProjectID {
	return ProjectID(uuid.New().String())
}

// ReportID represents a weekly status report identifier
type ReportID string

// String returns the string representation
func (id ReportID) String() string {
	return string(id)
}

// Validate checks if the report ID is not empty
func (id ReportID) Validate() error {
	if id == "" {
		return goerr.New("report ID is empty")
	}
	return nil
}

// NewReportID creates a new ReportID
func NewReportID() ReportID {
	return ReportID("wsr-" + uuid.New().String())
}

// CheckInID represents a weekly check-in identifier
type CheckInID string

// String returns the string representation
func (id CheckInID) String() string {
	return string(id)
}

// Validate checks if the check-in ID is not empty
func (id CheckInID) Validate() error {
	if id == "" {
		return goerr.New("check-in ID is empty")
	}
	return nil
}

// NewCheckInID creates a new CheckInID using UUID v7 so IDs sort by creation time
func NewCheckInID() (CheckInID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate check-in ID")
	}
	return CheckInID(id.String()), nil
}
