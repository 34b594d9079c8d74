package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// CalendarUseCase defines the interface for reporting-period selection
type CalendarUseCase interface {
	// Weeks returns the week rows of the month
	Weeks(ctx context.Context, month, year string) ([]period.CalendarWeek, error)

	// Resolve resolves a month, year and week selection
	Resolve(ctx context.Context, month, year string, week int) (period.Period, error)

	// Reselect changes month and year, keeping the week when it still exists
	Reselect(ctx context.Context, current period.Period, month, year string) (period.Period, error)

	// Current returns the period containing now
	Current(ctx context.Context, now time.Time) (period.Period, error)
}

// ProjectUseCase defines the interface for project browsing
type ProjectUseCase interface {
	// ListProjects lists projects with their next check-in due date
	ListProjects(ctx context.Context, now time.Time) ([]*model.ProjectSummary, error)

	// GetProject gets a project
	GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error)

	// ReportHistory returns the filtered and grouped status reports of a project
	ReportHistory(ctx context.Context, id types.ProjectID, year, month string) (*model.ReportHistory, error)
}

// CheckInUseCase defines the interface for weekly check-ins
type CheckInUseCase interface {
	// Draft prepares a new check-in form for the project
	Draft(ctx context.Context, projectID types.ProjectID, now time.Time) (*model.CheckIn, error)

	// Submit submits a new check-in and records its status report
	Submit(ctx context.Context, projectID types.ProjectID, req *model.CheckInRequest) (*model.CheckIn, error)

	// Update edits a submitted check-in
	Update(ctx context.Context, id types.CheckInID, req *model.CheckInRequest) (*model.CheckIn, error)

	// Get gets a check-in
	Get(ctx context.Context, id types.CheckInID) (*model.CheckIn, error)

	// Latest gets the check-in of the latest status report of the project
	Latest(ctx context.Context, projectID types.ProjectID) (*model.CheckIn, error)
}

// EmailUseCase defines the interface for status report emails
type EmailUseCase interface {
	// Settings returns the email settings
	Settings(ctx context.Context) (*model.EmailSettings, error)

	// SaveSettings validates and stores the email settings
	SaveSettings(ctx context.Context, settings *model.EmailSettings) (*model.EmailSettings, error)

	// ComposeReport composes the email of one status report
	ComposeReport(ctx context.Context, projectID types.ProjectID, reportID types.ReportID) (*model.EmailDraft, error)

	// ComposeDigest composes a leadership digest of the latest reports
	ComposeDigest(ctx context.Context, projectIDs []types.ProjectID, message string) (*model.EmailDraft, error)

	// Send delivers a draft
	Send(ctx context.Context, draft *model.EmailDraft) error
}
