package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
	"github.com/secmon-lab/checkin/pkg/usecase"
)

func TestEmail_Settings(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEmail(seededRepo(t), nil)

	settings, err := uc.Settings(ctx)
	gt.NoError(t, err)
	gt.Equal(t, settings, model.DefaultEmailSettings())

	settings.Recipients = []string{" cto@company.com ", "cto@company.com", "leadership@company.com"}
	settings.CCEnabled = false
	saved, err := uc.SaveSettings(ctx, settings)
	gt.NoError(t, err)
	gt.Equal(t, saved.Recipients, []string{"cto@company.com", "leadership@company.com"})

	reloaded, err := uc.Settings(ctx)
	gt.NoError(t, err)
	gt.Equal(t, reloaded.Recipients, saved.Recipients)
	gt.False(t, reloaded.CCEnabled)

	t.Run("invalid recipient", func(t *testing.T) {
		bad := model.DefaultEmailSettings()
		bad.Recipients = append(bad.Recipients, "nobody")
		_, err := uc.SaveSettings(ctx, bad)
		gt.True(t, errors.Is(err, model.ErrValidation))

		// Stored settings are unchanged
		current, err := uc.Settings(ctx)
		gt.NoError(t, err)
		gt.Equal(t, current.Recipients, saved.Recipients)
	})
}

func TestEmail_ComposeReport(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded report", func(t *testing.T) {
		uc := usecase.NewEmail(seededRepo(t), nil)

		draft, err := uc.ComposeReport(ctx, portalID, "wsr-portal-1")
		gt.NoError(t, err)
		gt.Equal(t, draft.Subject, "Weekly Project Status Update - Customer Portal Redesign")
		gt.Equal(t, draft.Body, "Hi Team,\n\n"+
			"Please find below the weekly status update for Customer Portal Redesign.\n\n"+
			"Report Period: Dec 2025 - Week 2\n"+
			"Health Status: Green\n"+
			"Submitted: Dec 8, 2025\n\n"+
			"Best regards,\nJane Doe")
		gt.Equal(t, draft.To, []string{"leadership@company.com", "stakeholders@company.com"})
		gt.Equal(t, draft.CC, []string{"pm-reports@company.com"})
		gt.Equal(t, draft.Attachments, []string{"Weekly_Status_Report.pdf"})
		gt.Equal(t, draft.ReportID, types.ReportID("wsr-portal-1"))
	})

	t.Run("report with check-in and summary", func(t *testing.T) {
		repo := seededRepo(t)
		checkIns := usecase.NewCheckIn(repo, period.New(period.ConventionCalendarGrid),
			usecase.NewCheckInConfig(usecase.WithClock(func() time.Time { return submittedAt })))
		checkIn, err := checkIns.Submit(ctx, mobileID, checkInRequest())
		gt.NoError(t, err).Required()

		summarizer := &mocks.SummarizerMock{
			SummarizeCheckInFunc: func(ctx context.Context, project *model.Project, c *model.CheckIn) (string, error) {
				gt.Equal(t, project.Name, "Mobile App Development")
				gt.Equal(t, c.ID, checkIn.ID)
				return "Beta is out; vendor delay remains the main risk.", nil
			},
		}
		uc := usecase.NewEmail(repo, usecase.NewEmailConfig(usecase.WithSummarizer(summarizer)))

		draft, err := uc.ComposeReport(ctx, mobileID, checkIn.ReportID)
		gt.NoError(t, err)
		gt.S(t, draft.Body).Contains("Report Period: Dec 2025 - Week 2")
		gt.S(t, draft.Body).Contains("Health Status: Amber")
		gt.S(t, draft.Body).Contains("Week: Dec 8 - Dec 14, 2025")
		gt.S(t, draft.Body).Contains("Highlights:\nBeta released to internal testers")
		gt.S(t, draft.Body).Contains("- R001: API vendor delay (Impact: High, Status: Open)")
		gt.S(t, draft.Body).Contains("Team Verified: 2 of 2")
		gt.S(t, draft.Body).Contains("Summary:\nBeta is out; vendor delay remains the main risk.")
		gt.Equal(t, len(summarizer.SummarizeCheckInCalls()), 1)
	})

	t.Run("summary failure is not fatal", func(t *testing.T) {
		repo := seededRepo(t)
		checkIns := usecase.NewCheckIn(repo, period.New(period.ConventionCalendarGrid), nil)
		checkIn, err := checkIns.Submit(ctx, mobileID, checkInRequest())
		gt.NoError(t, err).Required()

		summarizer := &mocks.SummarizerMock{
			SummarizeCheckInFunc: func(ctx context.Context, project *model.Project, c *model.CheckIn) (string, error) {
				return "", goerr.New("quota exceeded")
			},
		}
		uc := usecase.NewEmail(repo, usecase.NewEmailConfig(usecase.WithSummarizer(summarizer)))

		draft, err := uc.ComposeReport(ctx, mobileID, checkIn.ReportID)
		gt.NoError(t, err)
		gt.S(t, draft.Body).Contains("Health Status: Amber")
		gt.False(t, strings.Contains(draft.Body, "Summary:"))
	})

	t.Run("report of another project", func(t *testing.T) {
		uc := usecase.NewEmail(seededRepo(t), nil)
		_, err := uc.ComposeReport(ctx, mobileID, "wsr-portal-1")
		gt.True(t, errors.Is(err, model.ErrReportNotFound))
	})

	t.Run("unknown report", func(t *testing.T) {
		uc := usecase.NewEmail(seededRepo(t), nil)
		_, err := uc.ComposeReport(ctx, portalID, "wsr-missing")
		gt.True(t, errors.Is(err, model.ErrReportNotFound))
	})
}

func TestEmail_ComposeDigest(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEmail(seededRepo(t), nil)

	draft, err := uc.ComposeDigest(ctx, []types.ProjectID{portalID, mobileID}, "Team, see this week's updates below.")
	gt.NoError(t, err)
	gt.Equal(t, draft.Subject, usecase.DigestSubject)
	gt.Equal(t, draft.Body, "Team, see this week's updates below.\n\n"+
		"Customer Portal Redesign (Acme Corp)\n"+
		"Health Status: Green (On Track)\n"+
		"Report Period: Dec 2025 - Week 2\n"+
		"Submitted: Dec 8, 2025\n\n"+
		"Mobile App Development (TechStart Inc)\n"+
		"No status report submitted yet.")

	t.Run("all projects", func(t *testing.T) {
		draft, err := uc.ComposeDigest(ctx, nil, "")
		gt.NoError(t, err)
		gt.S(t, draft.Body).Contains("Data Migration Project (Global Systems)")
		gt.S(t, draft.Body).Contains("Customer Portal Redesign (Acme Corp)")
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := uc.ComposeDigest(ctx, []types.ProjectID{"unknown"}, "")
		gt.True(t, errors.Is(err, model.ErrProjectNotFound))
	})
}

func TestEmail_Send(t *testing.T) {
	ctx := context.Background()
	draft := &model.EmailDraft{
		To:      []string{"leadership@company.com"},
		Subject: "Weekly Project Status Update - Customer Portal Redesign",
		Body:    "body",
	}

	t.Run("delivered through notifier", func(t *testing.T) {
		notifier := &mocks.NotifierMock{
			NotifyFunc: func(ctx context.Context, d *model.EmailDraft) error {
				return nil
			},
		}
		uc := usecase.NewEmail(seededRepo(t), usecase.NewEmailConfig(usecase.WithNotifier(notifier)))
		gt.NoError(t, uc.Send(ctx, draft))
		gt.Equal(t, len(notifier.NotifyCalls()), 1)
		gt.Equal(t, notifier.NotifyCalls()[0].Draft.Subject, draft.Subject)
	})

	t.Run("notifier failure", func(t *testing.T) {
		notifier := &mocks.NotifierMock{
			NotifyFunc: func(ctx context.Context, d *model.EmailDraft) error {
				return goerr.New("channel_not_found")
			},
		}
		uc := usecase.NewEmail(seededRepo(t), usecase.NewEmailConfig(usecase.WithNotifier(notifier)))
		err := uc.Send(ctx, draft)
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("channel_not_found")
	})

	t.Run("dry run without notifier", func(t *testing.T) {
		uc := usecase.NewEmail(seededRepo(t), nil)
		gt.NoError(t, uc.Send(ctx, draft))
	})

	t.Run("invalid draft is not delivered", func(t *testing.T) {
		notifier := &mocks.NotifierMock{}
		uc := usecase.NewEmail(seededRepo(t), usecase.NewEmailConfig(usecase.WithNotifier(notifier)))
		err := uc.Send(ctx, &model.EmailDraft{Subject: "no recipients"})
		gt.True(t, errors.Is(err, model.ErrValidation))
		gt.Equal(t, len(notifier.NotifyCalls()), 0)
	})
}
