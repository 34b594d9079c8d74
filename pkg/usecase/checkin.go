package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// CheckInConfig holds configuration for CheckIn use case
type CheckInConfig struct {
	now func() time.Time
}

// CheckInOption is a functional option for configuring CheckIn
type CheckInOption func(*CheckInConfig)

// WithClock sets the clock used for submission timestamps
func WithClock(now func() time.Time) CheckInOption {
	return func(c *CheckInConfig) {
		c.now = now
	}
}

// NewCheckInConfig creates a new CheckInConfig with default values and optional settings
func NewCheckInConfig(opts ...CheckInOption) *CheckInConfig {
	config := &CheckInConfig{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// CheckIn implements CheckInUseCase
type CheckIn struct {
	repo   interfaces.Repository
	calc   *period.Calculator
	config *CheckInConfig
}

// NewCheckIn creates a new CheckIn use case
func NewCheckIn(repo interfaces.Repository, calc *period.Calculator, config *CheckInConfig) *CheckIn {
	if config == nil {
		config = NewCheckInConfig()
	}
	return &CheckIn{
		repo:   repo,
		calc:   calc,
		config: config,
	}
}

// Draft prepares a new check-in for the week containing now. The RAID log and team
// of the latest check-in are carried over with verification reset.
func (u *CheckIn) Draft(ctx context.Context, projectID types.ProjectID, now time.Time) (*model.CheckIn, error) {
	project, err := u.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("projectID", projectID))
	}

	current, err := u.calc.WeekContaining(now)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve current week")
	}

	draft := &model.CheckIn{
		ProjectID:    project.ID,
		Period:       current,
		HealthStatus: project.HealthStatus,
		SubmittedBy:  project.Manager,
	}

	latest, err := u.Latest(ctx, projectID)
	switch {
	case err == nil:
		draft.RAID, draft.Resources = latest.CarryOver()
	case errors.Is(err, model.ErrCheckInNotFound):
		// first check-in of the project
	default:
		return nil, err
	}

	return draft, nil
}

// Submit validates and stores a new check-in, creates its status report as the
// latest one and updates the project status.
func (u *CheckIn) Submit(ctx context.Context, projectID types.ProjectID, req *model.CheckInRequest) (*model.CheckIn, error) {
	if req == nil {
		return nil, goerr.Wrap(model.ErrValidation, "check-in request is nil")
	}

	project, err := u.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("projectID", projectID))
	}

	p, err := u.resolve(req)
	if err != nil {
		return nil, err
	}

	id, err := types.NewCheckInID()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate check-in ID")
	}

	now := u.config.now()
	checkIn := &model.CheckIn{
		ID:          id,
		ProjectID:   project.ID,
		Period:      p,
		SubmittedBy: project.Manager,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	req.Apply(checkIn)

	if err := checkIn.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid check-in")
	}

	statusReport := model.NewStatusReport(checkIn, now)
	checkIn.ReportID = statusReport.ID

	if err := u.clearLatest(ctx, project.ID); err != nil {
		return nil, err
	}
	if err := u.repo.PutCheckIn(ctx, checkIn); err != nil {
		return nil, goerr.Wrap(err, "failed to save check-in")
	}
	if err := u.repo.PutStatusReport(ctx, statusReport); err != nil {
		return nil, goerr.Wrap(err, "failed to save status report")
	}

	project.RecordCheckIn(statusReport)
	if err := u.repo.PutProject(ctx, project); err != nil {
		return nil, goerr.Wrap(err, "failed to update project")
	}

	ctxlog.From(ctx).Info("Check-in submitted",
		"projectID", project.ID,
		"checkInID", checkIn.ID,
		"reportID", statusReport.ID,
		"period", statusReport.Key()+" "+statusReport.WeekLabel,
		"health", checkIn.HealthStatus,
	)

	return checkIn, nil
}

// Update edits a submitted check-in and its status report
func (u *CheckIn) Update(ctx context.Context, id types.CheckInID, req *model.CheckInRequest) (*model.CheckIn, error) {
	if req == nil {
		return nil, goerr.Wrap(model.ErrValidation, "check-in request is nil")
	}

	checkIn, err := u.repo.GetCheckIn(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get check-in", goerr.V("checkInID", id))
	}

	p, err := u.resolve(req)
	if err != nil {
		return nil, err
	}

	checkIn.Period = p
	req.Apply(checkIn)
	checkIn.UpdatedAt = u.config.now()

	if err := checkIn.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid check-in")
	}
	if err := u.repo.PutCheckIn(ctx, checkIn); err != nil {
		return nil, goerr.Wrap(err, "failed to save check-in")
	}

	if checkIn.ReportID != "" {
		if err := u.syncReport(ctx, checkIn); err != nil {
			return nil, err
		}
	}

	ctxlog.From(ctx).Info("Check-in updated",
		"checkInID", checkIn.ID,
		"projectID", checkIn.ProjectID,
	)

	return checkIn, nil
}

// Get gets a check-in
func (u *CheckIn) Get(ctx context.Context, id types.CheckInID) (*model.CheckIn, error) {
	checkIn, err := u.repo.GetCheckIn(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get check-in", goerr.V("checkInID", id))
	}
	return checkIn, nil
}

// Latest gets the check-in of the newest status report that has one
func (u *CheckIn) Latest(ctx context.Context, projectID types.ProjectID) (*model.CheckIn, error) {
	reports, err := u.repo.ListStatusReports(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list status reports", goerr.V("projectID", projectID))
	}

	for _, r := range reports {
		if r.CheckInID == "" {
			continue
		}
		checkIn, err := u.repo.GetCheckIn(ctx, r.CheckInID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get check-in", goerr.V("checkInID", r.CheckInID))
		}
		return checkIn, nil
	}

	return nil, goerr.Wrap(model.ErrCheckInNotFound, "project has no check-in", goerr.V("projectID", projectID))
}

// resolve turns the form selection into a period. A week that does not exist in the
// selected month is rejected here.
func (u *CheckIn) resolve(req *model.CheckInRequest) (period.Period, error) {
	m, y, err := parseMonthYear(req.Month, req.Year)
	if err != nil {
		return period.Period{}, goerr.Wrap(model.ErrValidation, err.Error())
	}

	p, err := u.calc.Resolve(m, y, req.Week)
	if err != nil {
		return period.Period{}, goerr.Wrap(model.ErrValidation, "selected week does not exist",
			goerr.V("month", req.Month),
			goerr.V("year", req.Year),
			goerr.V("week", req.Week),
		)
	}
	return p, nil
}

func (u *CheckIn) clearLatest(ctx context.Context, projectID types.ProjectID) error {
	reports, err := u.repo.ListStatusReports(ctx, projectID)
	if err != nil {
		return goerr.Wrap(err, "failed to list status reports", goerr.V("projectID", projectID))
	}

	for _, r := range reports {
		if !r.IsLatest {
			continue
		}
		r.IsLatest = false
		if err := u.repo.PutStatusReport(ctx, r); err != nil {
			return goerr.Wrap(err, "failed to update status report", goerr.V("reportID", r.ID))
		}
	}
	return nil
}

func (u *CheckIn) syncReport(ctx context.Context, checkIn *model.CheckIn) error {
	statusReport, err := u.repo.GetStatusReport(ctx, checkIn.ReportID)
	if err != nil {
		return goerr.Wrap(err, "failed to get status report", goerr.V("reportID", checkIn.ReportID))
	}

	updated := model.NewStatusReport(checkIn, statusReport.SubmittedAt)
	updated.ID = statusReport.ID
	updated.IsLatest = statusReport.IsLatest
	if err := u.repo.PutStatusReport(ctx, updated); err != nil {
		return goerr.Wrap(err, "failed to update status report", goerr.V("reportID", updated.ID))
	}

	if !updated.IsLatest {
		return nil
	}

	project, err := u.repo.GetProject(ctx, checkIn.ProjectID)
	if err != nil {
		return goerr.Wrap(err, "failed to get project", goerr.V("projectID", checkIn.ProjectID))
	}
	project.RecordCheckIn(updated)
	if err := u.repo.PutProject(ctx, project); err != nil {
		return goerr.Wrap(err, "failed to update project")
	}
	return nil
}
