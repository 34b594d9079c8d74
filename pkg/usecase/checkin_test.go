package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
	"github.com/secmon-lab/checkin/pkg/usecase"
)

func newCheckInUseCase(t *testing.T) (*usecase.CheckIn, *usecase.Project) {
	repo := seededRepo(t)
	calc := period.New(period.ConventionCalendarGrid)
	clock := func() time.Time { return submittedAt.Add(24 * time.Hour) }
	return usecase.NewCheckIn(repo, calc, usecase.NewCheckInConfig(usecase.WithClock(clock))),
		usecase.NewProject(repo)
}

func checkInRequest() *model.CheckInRequest {
	return &model.CheckInRequest{
		Month:        "Dec",
		Year:         "2025",
		Week:         2,
		HealthStatus: types.HealthAmber,
		Highlights:   "Beta released to internal testers",
		RAID: []model.RAIDItem{
			{RiskID: "R001", Description: "API vendor delay", Impact: model.LevelHigh, Priority: model.LevelHigh, Status: model.RAIDStatusOpen},
			{RiskID: "I002", Description: "Test env outage", Impact: model.LevelLow, Status: model.RAIDStatusClosed},
		},
		CompletedMilestones: "Beta build",
		PlannedMilestones:   "Store submission",
		Resources: []model.ResourceAllocation{
			{Name: "Alice", Role: "iOS Developer", Allocation: "100%", Verified: true},
			{Name: "Bob", Role: "QA", Allocation: "50%", Verified: true},
		},
	}
}

func TestCheckIn_Submit(t *testing.T) {
	ctx := context.Background()
	uc, projects := newCheckInUseCase(t)

	checkIn, err := uc.Submit(ctx, mobileID, checkInRequest())
	gt.NoError(t, err).Required()
	gt.V(t, checkIn.ID).NotEqual(types.CheckInID(""))
	gt.V(t, checkIn.ReportID).NotEqual(types.ReportID(""))
	gt.Equal(t, checkIn.SubmittedBy, "Jane Doe")
	gt.Equal(t, checkIn.Period.Week.Range(), "Dec 8 - Dec 14, 2025")
	gt.True(t, checkIn.CreatedAt.Equal(submittedAt.Add(24*time.Hour)))

	project, err := projects.GetProject(ctx, mobileID)
	gt.NoError(t, err)
	gt.Equal(t, project.CheckInStatus, types.CheckInDone)
	gt.Equal(t, project.HealthStatus, types.HealthAmber)
	gt.Equal(t, project.ProjectStatus, types.ProjectAtRisk)
	gt.Equal(t, project.LastWeek, "Week 2")

	h, err := projects.ReportHistory(ctx, mobileID, "", "")
	gt.NoError(t, err)
	gt.Equal(t, h.Total, 1)
	r := h.Groups[0].Reports[0]
	gt.Equal(t, r.ID, checkIn.ReportID)
	gt.Equal(t, r.CheckInID, checkIn.ID)
	gt.Equal(t, r.Key(), "Dec 2025")
	gt.Equal(t, r.SubmittedLabel(), "Dec 9, 2025")
	gt.True(t, r.IsLatest)
}

func TestCheckIn_SubmitMovesLatest(t *testing.T) {
	ctx := context.Background()
	uc, projects := newCheckInUseCase(t)

	req := checkInRequest()
	req.Week = 3
	req.HealthStatus = types.HealthGreen
	_, err := uc.Submit(ctx, portalID, req)
	gt.NoError(t, err).Required()

	h, err := projects.ReportHistory(ctx, portalID, "", "")
	gt.NoError(t, err)
	gt.Equal(t, h.Total, 8)

	latest := 0
	for _, g := range h.Groups {
		for _, r := range g.Reports {
			if r.IsLatest {
				latest++
				gt.Equal(t, r.WeekLabel, "Week 3")
			}
		}
	}
	gt.Equal(t, latest, 1)
	gt.Equal(t, h.Groups[0].Reports[0].WeekLabel, "Week 3")
}

func TestCheckIn_SubmitValidation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(r *model.CheckInRequest)
	}{
		{name: "week not in month", mutate: func(r *model.CheckInRequest) { r.Week = 6 }},
		{name: "week zero", mutate: func(r *model.CheckInRequest) { r.Week = 0 }},
		{name: "unknown month", mutate: func(r *model.CheckInRequest) { r.Month = "December" }},
		{name: "non numeric year", mutate: func(r *model.CheckInRequest) { r.Year = "next" }},
		{name: "missing health", mutate: func(r *model.CheckInRequest) { r.HealthStatus = "" }},
		{name: "bad allocation", mutate: func(r *model.CheckInRequest) { r.Resources[0].Allocation = "150%" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, projects := newCheckInUseCase(t)
			req := checkInRequest()
			tc.mutate(req)

			_, err := uc.Submit(ctx, mobileID, req)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrValidation))

			// Nothing is recorded
			project, err := projects.GetProject(ctx, mobileID)
			gt.NoError(t, err)
			gt.Equal(t, project.CheckInStatus, types.CheckInPending)
		})
	}

	t.Run("unknown project", func(t *testing.T) {
		uc, _ := newCheckInUseCase(t)
		_, err := uc.Submit(ctx, "unknown", checkInRequest())
		gt.True(t, errors.Is(err, model.ErrProjectNotFound))
	})

	t.Run("nil request", func(t *testing.T) {
		uc, _ := newCheckInUseCase(t)
		_, err := uc.Submit(ctx, mobileID, nil)
		gt.True(t, errors.Is(err, model.ErrValidation))
	})
}

func TestCheckIn_Draft(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCheckInUseCase(t)

	t.Run("first check-in", func(t *testing.T) {
		draft, err := uc.Draft(ctx, mobileID, submittedAt)
		gt.NoError(t, err)
		gt.Equal(t, draft.Period.Month, period.Dec)
		gt.Equal(t, draft.Period.WeekIndex, 2)
		gt.Equal(t, draft.HealthStatus, types.HealthAmber)
		gt.Equal(t, len(draft.RAID), 0)
		gt.Equal(t, len(draft.Resources), 0)
	})

	t.Run("carries over RAID and team", func(t *testing.T) {
		_, err := uc.Submit(ctx, mobileID, checkInRequest())
		gt.NoError(t, err).Required()

		draft, err := uc.Draft(ctx, mobileID, submittedAt.AddDate(0, 0, 7))
		gt.NoError(t, err)
		gt.Equal(t, draft.Period.WeekIndex, 3)
		gt.Equal(t, len(draft.RAID), 2)
		gt.Equal(t, len(draft.Resources), 2)
		for _, r := range draft.Resources {
			gt.False(t, r.Verified)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := uc.Draft(ctx, "unknown", submittedAt)
		gt.True(t, errors.Is(err, model.ErrProjectNotFound))
	})
}

func TestCheckIn_Update(t *testing.T) {
	ctx := context.Background()
	uc, projects := newCheckInUseCase(t)

	submitted, err := uc.Submit(ctx, mobileID, checkInRequest())
	gt.NoError(t, err).Required()

	req := checkInRequest()
	req.HealthStatus = types.HealthRed
	req.Week = 1
	req.Comments = "Escalated to sponsor"

	updated, err := uc.Update(ctx, submitted.ID, req)
	gt.NoError(t, err)
	gt.Equal(t, updated.ID, submitted.ID)
	gt.Equal(t, updated.ReportID, submitted.ReportID)
	gt.Equal(t, updated.Period.WeekIndex, 1)
	gt.Equal(t, updated.Comments, "Escalated to sponsor")

	got, err := uc.Get(ctx, submitted.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.HealthStatus, types.HealthRed)

	project, err := projects.GetProject(ctx, mobileID)
	gt.NoError(t, err)
	gt.Equal(t, project.HealthStatus, types.HealthRed)
	gt.Equal(t, project.ProjectStatus, types.ProjectOffTrack)
	gt.Equal(t, project.LastWeek, "Week 1")

	h, err := projects.ReportHistory(ctx, mobileID, "", "")
	gt.NoError(t, err)
	gt.Equal(t, h.Total, 1)
	gt.Equal(t, h.Groups[0].Reports[0].WeekLabel, "Week 1")
	gt.Equal(t, h.Groups[0].Reports[0].HealthStatus, types.HealthRed)

	t.Run("invalid week", func(t *testing.T) {
		req := checkInRequest()
		req.Week = 7
		_, err := uc.Update(ctx, submitted.ID, req)
		gt.True(t, errors.Is(err, model.ErrValidation))
	})

	t.Run("unknown check-in", func(t *testing.T) {
		_, err := uc.Update(ctx, "missing", checkInRequest())
		gt.True(t, errors.Is(err, model.ErrCheckInNotFound))
	})
}

func TestCheckIn_Latest(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCheckInUseCase(t)

	// Seeded reports have no check-in content
	_, err := uc.Latest(ctx, portalID)
	gt.True(t, errors.Is(err, model.ErrCheckInNotFound))

	submitted, err := uc.Submit(ctx, portalID, checkInRequest())
	gt.NoError(t, err).Required()

	latest, err := uc.Latest(ctx, portalID)
	gt.NoError(t, err)
	gt.Equal(t, latest.ID, submitted.ID)
}
