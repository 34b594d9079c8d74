package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// DigestSubject is the subject of leadership digest emails
const DigestSubject = "Weekly Project Status Update"

// EmailConfig holds configuration for Email use case
type EmailConfig struct {
	notifier   interfaces.Notifier
	summarizer interfaces.Summarizer
}

// EmailOption is a functional option for configuring Email
type EmailOption func(*EmailConfig)

// WithNotifier sets the notifier that delivers drafts. Without it, Send only logs.
func WithNotifier(notifier interfaces.Notifier) EmailOption {
	return func(c *EmailConfig) {
		c.notifier = notifier
	}
}

// WithSummarizer sets the summarizer used to append a generated check-in summary
func WithSummarizer(summarizer interfaces.Summarizer) EmailOption {
	return func(c *EmailConfig) {
		c.summarizer = summarizer
	}
}

// NewEmailConfig creates a new EmailConfig with optional settings
func NewEmailConfig(opts ...EmailOption) *EmailConfig {
	config := &EmailConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Email implements EmailUseCase
type Email struct {
	repo   interfaces.Repository
	config *EmailConfig
}

// NewEmail creates a new Email use case
func NewEmail(repo interfaces.Repository, config *EmailConfig) *Email {
	if config == nil {
		config = NewEmailConfig()
	}
	return &Email{
		repo:   repo,
		config: config,
	}
}

// Settings returns the stored email settings, or the defaults when none are stored
func (u *Email) Settings(ctx context.Context) (*model.EmailSettings, error) {
	settings, err := u.repo.GetEmailSettings(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get email settings")
	}
	if settings == nil {
		return model.DefaultEmailSettings(), nil
	}
	return settings, nil
}

// SaveSettings validates and stores the email settings
func (u *Email) SaveSettings(ctx context.Context, settings *model.EmailSettings) (*model.EmailSettings, error) {
	if settings == nil {
		return nil, goerr.Wrap(model.ErrValidation, "email settings is nil")
	}

	normalized := settings.Copy()
	normalized.Recipients = nil
	for _, r := range settings.Recipients {
		if err := normalized.AddRecipient(r); err != nil {
			return nil, goerr.Wrap(err, "invalid recipient")
		}
	}
	normalized.CCEmail = strings.TrimSpace(normalized.CCEmail)

	if err := normalized.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid email settings")
	}
	if err := u.repo.PutEmailSettings(ctx, normalized); err != nil {
		return nil, goerr.Wrap(err, "failed to save email settings")
	}

	ctxlog.From(ctx).Info("Email settings saved",
		"recipients", len(normalized.Recipients),
		"ccEnabled", normalized.CCEnabled,
	)
	return normalized, nil
}

// ComposeReport composes the email of one status report from the settings templates
func (u *Email) ComposeReport(ctx context.Context, projectID types.ProjectID, reportID types.ReportID) (*model.EmailDraft, error) {
	project, err := u.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("projectID", projectID))
	}

	statusReport, err := u.repo.GetStatusReport(ctx, reportID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get status report", goerr.V("reportID", reportID))
	}
	if statusReport.ProjectID != project.ID {
		return nil, goerr.Wrap(model.ErrReportNotFound, "status report belongs to another project",
			goerr.V("projectID", projectID),
			goerr.V("reportID", reportID))
	}

	settings, err := u.Settings(ctx)
	if err != nil {
		return nil, err
	}

	checkIn := u.linkedCheckIn(ctx, statusReport)
	details := reportDetails(statusReport, checkIn)
	if checkIn != nil && u.config.summarizer != nil {
		summary, err := u.config.summarizer.SummarizeCheckIn(ctx, project, checkIn)
		if err != nil {
			ctxlog.From(ctx).Warn("Failed to summarize check-in, sending without summary",
				"error", err,
				"checkInID", checkIn.ID)
		} else if summary = strings.TrimSpace(summary); summary != "" {
			details += "\n\nSummary:\n" + summary
		}
	}

	subject, body := settings.Render(model.EmailValues{
		ProjectName:    project.Name,
		CheckInDetails: details,
		PMName:         project.Manager,
	})

	return &model.EmailDraft{
		ProjectID:   project.ID,
		ReportID:    statusReport.ID,
		To:          slices.Clone(settings.Recipients),
		CC:          settings.CC(),
		Subject:     subject,
		Body:        body,
		Attachments: []string{model.DefaultAttachment},
	}, nil
}

// ComposeDigest composes a leadership digest of the latest status report of each
// project. All projects are included when projectIDs is empty.
func (u *Email) ComposeDigest(ctx context.Context, projectIDs []types.ProjectID, message string) (*model.EmailDraft, error) {
	projects, err := u.digestProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	settings, err := u.Settings(ctx)
	if err != nil {
		return nil, err
	}

	var sections []string
	if msg := strings.TrimSpace(message); msg != "" {
		sections = append(sections, msg)
	}

	for _, project := range projects {
		reports, err := u.repo.ListStatusReports(ctx, project.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list status reports", goerr.V("projectID", project.ID))
		}
		sections = append(sections, u.digestEntry(ctx, project, reports))
	}

	return &model.EmailDraft{
		To:      slices.Clone(settings.Recipients),
		CC:      settings.CC(),
		Subject: DigestSubject,
		Body:    strings.Join(sections, "\n\n"),
	}, nil
}

// Send validates and delivers a draft through the notifier
func (u *Email) Send(ctx context.Context, draft *model.EmailDraft) error {
	if draft == nil {
		return goerr.Wrap(model.ErrValidation, "email draft is nil")
	}
	if err := draft.Validate(); err != nil {
		return goerr.Wrap(err, "invalid email draft")
	}

	logger := ctxlog.From(ctx)
	if u.config.notifier == nil {
		logger.Info("No notifier configured, status report not delivered",
			"subject", draft.Subject,
			"to", draft.To,
			"cc", draft.CC,
		)
		return nil
	}

	if err := u.config.notifier.Notify(ctx, draft); err != nil {
		return goerr.Wrap(err, "failed to deliver status report", goerr.V("subject", draft.Subject))
	}

	logger.Info("Status report delivered",
		"subject", draft.Subject,
		"projectID", draft.ProjectID,
		"reportID", draft.ReportID,
	)
	return nil
}

func (u *Email) linkedCheckIn(ctx context.Context, statusReport *model.StatusReport) *model.CheckIn {
	if statusReport.CheckInID == "" {
		return nil
	}
	checkIn, err := u.repo.GetCheckIn(ctx, statusReport.CheckInID)
	if err != nil {
		ctxlog.From(ctx).Warn("Linked check-in not available",
			"error", err,
			"reportID", statusReport.ID,
			"checkInID", statusReport.CheckInID)
		return nil
	}
	return checkIn
}

func (u *Email) digestProjects(ctx context.Context, projectIDs []types.ProjectID) ([]*model.Project, error) {
	if len(projectIDs) == 0 {
		projects, err := u.repo.ListProjects(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list projects")
		}
		return projects, nil
	}

	projects := make([]*model.Project, 0, len(projectIDs))
	for _, id := range projectIDs {
		project, err := u.repo.GetProject(ctx, id)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get project", goerr.V("projectID", id))
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (u *Email) digestEntry(ctx context.Context, project *model.Project, reports []*model.StatusReport) string {
	header := fmt.Sprintf("%s (%s)", project.Name, project.Client)
	if len(reports) == 0 {
		return header + "\nNo status report submitted yet."
	}

	latest := reports[0]
	lines := []string{
		header,
		fmt.Sprintf("Health Status: %s (%s)", latest.HealthStatus.Title(), latest.HealthStatus.Label()),
		fmt.Sprintf("Report Period: %s - %s", latest.Key(), latest.WeekLabel),
	}
	if checkIn := u.linkedCheckIn(ctx, latest); checkIn != nil && checkIn.Highlights != "" {
		lines = append(lines, "Highlights: "+checkIn.Highlights)
	}
	lines = append(lines, "Submitted: "+latest.SubmittedLabel())
	return strings.Join(lines, "\n")
}

func reportDetails(statusReport *model.StatusReport, checkIn *model.CheckIn) string {
	lines := []string{
		fmt.Sprintf("Report Period: %s - %s", statusReport.Key(), statusReport.WeekLabel),
		"Health Status: " + statusReport.HealthStatus.Title(),
		"Submitted: " + statusReport.SubmittedLabel(),
	}
	if checkIn == nil {
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "Week: "+checkIn.Period.Week.Range())
	if checkIn.Highlights != "" {
		lines = append(lines, "", "Highlights:", checkIn.Highlights)
	}
	if checkIn.CompletedMilestones != "" {
		lines = append(lines, "", "Completed Milestones:", checkIn.CompletedMilestones)
	}
	if checkIn.PlannedMilestones != "" {
		lines = append(lines, "", "Planned Milestones:", checkIn.PlannedMilestones)
	}
	if open := checkIn.OpenRAIDItems(); len(open) > 0 {
		lines = append(lines, "", "Open RAID Items:")
		for _, item := range open {
			lines = append(lines, fmt.Sprintf("- %s: %s (Impact: %s, Status: %s)",
				item.RiskID, item.Description, orDash(string(item.Impact)), orDash(string(item.Status))))
		}
	}
	if verified, total := checkIn.VerifiedResources(); total > 0 {
		lines = append(lines, "", fmt.Sprintf("Team Verified: %d of %d", verified, total))
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
