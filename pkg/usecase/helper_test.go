package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/repository"
)

const (
	portalID    = "customer-portal"
	mobileID    = "mobile-app"
	migrationID = "data-migration"
)

// Dec 8, 2025 is a Monday, the first day of Week 2 in the grid convention
var submittedAt = time.Date(2025, time.December, 8, 10, 0, 0, 0, time.UTC)

func seededRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	seed := &model.Seed{Projects: []model.SeedProject{
		{
			ID: portalID, Name: "Customer Portal Redesign", Client: "Acme Corp", Manager: "Jane Doe",
			StartDate: "2025-09-01", EndDate: "2026-02-28", CheckInStatus: "done", HealthStatus: "green",
			Reports: []model.SeedReport{
				{ID: "wsr-portal-1", Month: "Dec", Year: "2025", Week: "Week 2", Health: "green", Submitted: "2025-12-08", Latest: true},
				{ID: "wsr-portal-2", Month: "Dec", Year: "2025", Week: "Week 1", Health: "amber", Submitted: "2025-12-01"},
				{ID: "wsr-portal-3", Month: "Nov", Year: "2025", Week: "Week 4", Health: "green", Submitted: "2025-11-24"},
				{ID: "wsr-portal-4", Month: "Nov", Year: "2025", Week: "Week 3", Health: "amber", Submitted: "2025-11-17"},
				{ID: "wsr-portal-5", Month: "Nov", Year: "2025", Week: "Week 2", Health: "red", Submitted: "2025-11-10"},
				{ID: "wsr-portal-6", Month: "Oct", Year: "2025", Week: "Week 4", Health: "green", Submitted: "2025-10-27"},
				{ID: "wsr-portal-7", Month: "Oct", Year: "2025", Week: "Week 3", Health: "green", Submitted: "2025-10-20"},
			},
		},
		{
			ID: mobileID, Name: "Mobile App Development", Client: "TechStart Inc", Manager: "Jane Doe",
			StartDate: "2025-08-15", EndDate: "2026-01-31", CheckInStatus: "pending", HealthStatus: "amber",
		},
		{
			ID: migrationID, Name: "Data Migration Project", Client: "Global Systems", Manager: "Jane Doe",
			StartDate: "2025-07-01", EndDate: "2025-12-31", CheckInStatus: "overdue", HealthStatus: "red",
		},
	}}

	repo := repository.NewMemory()
	gt.NoError(t, repository.Seed(context.Background(), repo, seed)).Required()
	return repo
}
