package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// Project represents a project allocated to a project manager
type Project struct {
	ID            types.ProjectID     `json:"id"`
	Name          string              `json:"name"`
	Client        string              `json:"client"`
	Manager       string              `json:"manager"`
	StartDate     time.Time           `json:"start_date"`
	EndDate       time.Time           `json:"end_date"`
	CheckInStatus types.CheckInStatus `json:"check_in_status"`
	ProjectStatus types.ProjectStatus `json:"project_status"`
	HealthStatus  types.HealthStatus  `json:"health_status"`
	LastMonth     string              `json:"last_month,omitempty"` // Month of the latest check-in (e.g., "Dec")
	LastYear      string              `json:"last_year,omitempty"`
	LastWeek      string              `json:"last_week,omitempty"` // Week label of the latest check-in (e.g., "Week 2")
}

// NewProject creates a new Project with a pending check-in
func NewProject(name, client, manager string, startDate, endDate time.Time) (*Project, error) {
	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "project name is required")
	}
	if client == "" {
		return nil, goerr.Wrap(ErrValidation, "client is required", goerr.V("project", name))
	}
	if !endDate.IsZero() && endDate.Before(startDate) {
		return nil, goerr.Wrap(ErrValidation, "project ends before it starts",
			goerr.V("start", startDate),
			goerr.V("end", endDate))
	}

	return &Project{
		ID:            types.NewProjectID(),
		Name:          name,
		Client:        client,
		Manager:       manager,
		StartDate:     startDate,
		EndDate:       endDate,
		CheckInStatus: types.CheckInPending,
		ProjectStatus: types.ProjectOnTrack,
		HealthStatus:  types.HealthGreen,
	}, nil
}

// RecordCheckIn updates the project with the outcome of a submitted status report
func (p *Project) RecordCheckIn(report *StatusReport) {
	p.CheckInStatus = types.CheckInDone
	p.HealthStatus = report.HealthStatus
	p.ProjectStatus = report.HealthStatus.ProjectStatus()
	p.LastMonth = report.Month
	p.LastYear = report.Year
	p.LastWeek = report.WeekLabel
}

// IsActive checks if the project is running on the given date
func (p *Project) IsActive(at time.Time) bool {
	if at.Before(p.StartDate) {
		return false
	}
	return p.EndDate.IsZero() || !at.After(p.EndDate)
}

// ProjectSummary is a project row of the "My Projects" list
type ProjectSummary struct {
	*Project
	NextDue      time.Time `json:"next_due"`
	NextDueLabel string    `json:"next_due_label"` // e.g., "Dec 15"
}
