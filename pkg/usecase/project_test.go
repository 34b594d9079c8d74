package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/report"
	"github.com/secmon-lab/checkin/pkg/domain/types"
	"github.com/secmon-lab/checkin/pkg/usecase"
)

func TestProject_ListProjects(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProject(seededRepo(t))

	summaries, err := uc.ListProjects(ctx, submittedAt)
	gt.NoError(t, err)
	gt.Equal(t, len(summaries), 3)

	// Ordered by name
	gt.Equal(t, summaries[0].Name, "Customer Portal Redesign")
	gt.Equal(t, summaries[1].Name, "Data Migration Project")
	gt.Equal(t, summaries[2].Name, "Mobile App Development")

	for _, s := range summaries {
		gt.Equal(t, s.NextDueLabel, "Dec 15")
		gt.True(t, s.NextDue.Equal(submittedAt.Add(7*24*time.Hour)))
	}
	gt.Equal(t, summaries[1].CheckInStatus, types.CheckInOverdue)
	gt.Equal(t, summaries[1].ProjectStatus, types.ProjectOffTrack)
}

func TestProject_GetProject(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProject(seededRepo(t))

	p, err := uc.GetProject(ctx, portalID)
	gt.NoError(t, err)
	gt.Equal(t, p.Client, "Acme Corp")

	_, err = uc.GetProject(ctx, "unknown")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrProjectNotFound))
	gt.True(t, usecase.IsNotFound(err))
}

func TestProject_ReportHistory(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProject(seededRepo(t))

	t.Run("all reports grouped by month", func(t *testing.T) {
		h, err := uc.ReportHistory(ctx, portalID, "", "")
		gt.NoError(t, err)
		gt.Equal(t, h.Total, 7)
		gt.Equal(t, h.Shown, 7)
		gt.Equal(t, h.Years, []string{"2025"})
		gt.Equal(t, len(h.Groups), 3)
		gt.Equal(t, h.Groups[0].Key, "Dec 2025")
		gt.Equal(t, len(h.Groups[0].Reports), 2)
		gt.Equal(t, h.Groups[0].Reports[0].WeekLabel, "Week 2")
		gt.True(t, h.Groups[0].Reports[0].IsLatest)
		gt.Equal(t, h.Groups[1].Key, "Nov 2025")
		gt.Equal(t, len(h.Groups[1].Reports), 3)
		gt.Equal(t, h.Groups[2].Key, "Oct 2025")
	})

	t.Run("filtered by month", func(t *testing.T) {
		h, err := uc.ReportHistory(ctx, portalID, report.All, "Nov")
		gt.NoError(t, err)
		gt.Equal(t, h.Shown, 3)
		gt.Equal(t, h.Total, 7)
		gt.Equal(t, len(h.Groups), 1)
	})

	t.Run("unknown year yields empty history", func(t *testing.T) {
		h, err := uc.ReportHistory(ctx, portalID, "2019", report.All)
		gt.NoError(t, err)
		gt.Equal(t, h.Shown, 0)
		gt.Equal(t, len(h.Groups), 0)
	})

	t.Run("project without reports", func(t *testing.T) {
		h, err := uc.ReportHistory(ctx, mobileID, "", "")
		gt.NoError(t, err)
		gt.Equal(t, h.Total, 0)
		gt.Equal(t, len(h.Years), 0)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := uc.ReportHistory(ctx, "unknown", "", "")
		gt.True(t, errors.Is(err, model.ErrProjectNotFound))
	})
}
