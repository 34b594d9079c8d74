package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"strconv"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
)

// Error tags for categorization
var (
	ErrTagInvalidJSON     = goerr.NewTag("invalid_json")
	ErrTagMissingField    = goerr.NewTag("missing_field")
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
)

//go:embed templates/*.md
var templateFS embed.FS

var _ interfaces.Summarizer = (*LLMService)(nil)

// LLMService generates check-in summaries with an LLM
type LLMService struct {
	llmClient gollem.LLMClient
}

// CheckInSummary represents the structured response from LLM
type CheckInSummary struct {
	Summary string `json:"summary"`
}

// RAIDEntry is a RAID item for template rendering
type RAIDEntry struct {
	RiskID      string
	Kind        string
	Description string
	Impact      string
	Priority    string
	Status      string
}

// SummaryTemplateData contains data for the check-in summary template
type SummaryTemplateData struct {
	ProjectName         string
	Client              string
	Manager             string
	Period              string
	Health              string
	Highlights          string
	CompletedMilestones string
	PlannedMilestones   string
	RAID                []RAIDEntry
	Comments            string
}

// NewLLMService creates a new LLMService instance
func NewLLMService(llmClient gollem.LLMClient) *LLMService {
	return &LLMService{
		llmClient: llmClient,
	}
}

// SummarizeCheckIn generates a short executive summary of the check-in
func (s *LLMService) SummarizeCheckIn(ctx context.Context, project *model.Project, checkIn *model.CheckIn) (string, error) {
	if project == nil || checkIn == nil {
		return "", goerr.New("project and check-in are required for summary")
	}

	prompt, err := renderSummaryTemplate(buildTemplateData(project, checkIn))
	if err != nil {
		return "", goerr.Wrap(err, "failed to render check-in summary template",
			goerr.T(ErrTagTemplateFailure))
	}

	session, err := s.llmClient.NewSession(ctx, gollem.WithSessionContentType(gollem.ContentTypeJSON))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM response")
	}

	if len(response.Texts) == 0 || response.Texts[0] == "" {
		return "", goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	var summary CheckInSummary
	if err := json.Unmarshal([]byte(response.Texts[0]), &summary); err != nil {
		return "", goerr.Wrap(err, "failed to parse LLM response as JSON",
			goerr.V("response", response.Texts[0]),
			goerr.T(ErrTagInvalidJSON))
	}

	text := strings.TrimSpace(summary.Summary)
	if text == "" {
		return "", goerr.New("LLM response missing summary",
			goerr.T(ErrTagMissingField),
			goerr.V("field", "summary"))
	}

	return text, nil
}

func buildTemplateData(project *model.Project, checkIn *model.CheckIn) SummaryTemplateData {
	data := SummaryTemplateData{
		ProjectName:         project.Name,
		Client:              project.Client,
		Manager:             project.Manager,
		Period:              checkIn.Period.Month.String() + " " + strconv.Itoa(checkIn.Period.Year) + " " + period.WeekLabel(checkIn.Period.WeekIndex),
		Health:              checkIn.HealthStatus.Title() + " (" + checkIn.HealthStatus.Label() + ")",
		Highlights:          checkIn.Highlights,
		CompletedMilestones: checkIn.CompletedMilestones,
		PlannedMilestones:   checkIn.PlannedMilestones,
		Comments:            checkIn.Comments,
	}
	if !checkIn.Period.Week.Start.IsZero() {
		data.Period += " (" + checkIn.Period.Week.Range() + ")"
	}

	for _, item := range checkIn.OpenRAIDItems() {
		data.RAID = append(data.RAID, RAIDEntry{
			RiskID:      item.RiskID,
			Kind:        string(item.Kind()),
			Description: item.Description,
			Impact:      string(item.Impact),
			Priority:    string(item.Priority),
			Status:      string(item.Status),
		})
	}
	return data
}

// renderSummaryTemplate renders the check-in summary prompt
func renderSummaryTemplate(data SummaryTemplateData) (string, error) {
	templateContent, err := templateFS.ReadFile("templates/checkin_summary.md")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read check-in summary template")
	}

	tmpl, err := template.New("checkin_summary").Parse(string(templateContent))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse check-in summary template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute check-in summary template")
	}

	return buf.String(), nil
}
