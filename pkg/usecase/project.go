package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/report"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// checkInInterval is the time between two weekly check-ins
const checkInInterval = 7 * 24 * time.Hour

// Project implements ProjectUseCase
type Project struct {
	repo interfaces.Repository
}

// NewProject creates a new Project use case
func NewProject(repo interfaces.Repository) *Project {
	return &Project{repo: repo}
}

// ListProjects lists projects with their next check-in due date
func (u *Project) ListProjects(ctx context.Context, now time.Time) ([]*model.ProjectSummary, error) {
	projects, err := u.repo.ListProjects(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}

	due := now.Add(checkInInterval)
	summaries := make([]*model.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, &model.ProjectSummary{
			Project:      p,
			NextDue:      due,
			NextDueLabel: period.FormatShortDate(due),
		})
	}
	return summaries, nil
}

// GetProject gets a project
func (u *Project) GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	project, err := u.repo.GetProject(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("projectID", id))
	}
	return project, nil
}

// ReportHistory returns the status reports of a project filtered by year and month
// and grouped by month. Empty filters mean all.
func (u *Project) ReportHistory(ctx context.Context, id types.ProjectID, year, month string) (*model.ReportHistory, error) {
	if _, err := u.repo.GetProject(ctx, id); err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("projectID", id))
	}

	reports, err := u.repo.ListStatusReports(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list status reports", goerr.V("projectID", id))
	}

	return report.History(reports, orAll(year), orAll(month)), nil
}

func orAll(v string) string {
	if v == "" {
		return report.All
	}
	return v
}
