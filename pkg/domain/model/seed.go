package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

const seedDateLayout = "2006-01-02"

// Seed represents initial data loaded from a YAML file
type Seed struct {
	Projects      []SeedProject  `yaml:"projects"`
	EmailSettings *EmailSettings `yaml:"email_settings,omitempty"`
}

// SeedProject is a project entry of the seed file
type SeedProject struct {
	ID            string       `yaml:"id"`
	Name          string       `yaml:"name"`
	Client        string       `yaml:"client"`
	Manager       string       `yaml:"manager"`
	StartDate     string       `yaml:"start_date"`
	EndDate       string       `yaml:"end_date"`
	CheckInStatus string       `yaml:"check_in_status"`
	HealthStatus  string       `yaml:"health_status"`
	Reports       []SeedReport `yaml:"reports,omitempty"`
}

// SeedReport is a submitted status report entry of the seed file
type SeedReport struct {
	ID        string `yaml:"id"`
	Month     string `yaml:"month"`
	Year      string `yaml:"year"`
	Week      string `yaml:"week"`
	Health    string `yaml:"health"`
	Submitted string `yaml:"submitted"`
	Latest    bool   `yaml:"latest,omitempty"`
}

// SeedData is the result of building a seed
type SeedData struct {
	Projects      []*Project
	Reports       []*StatusReport
	EmailSettings *EmailSettings
}

// Validate validates the seed file
func (s *Seed) Validate() error {
	_, err := s.Build()
	return err
}

// Build converts the seed file into domain objects
func (s *Seed) Build() (*SeedData, error) {
	data := &SeedData{EmailSettings: s.EmailSettings}
	if data.EmailSettings != nil {
		if err := data.EmailSettings.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid email settings in seed")
		}
	}

	projectIDs := make(map[string]bool)
	reportIDs := make(map[string]bool)
	for i, sp := range s.Projects {
		if sp.ID == "" {
			return nil, goerr.Wrap(ErrValidation, "project ID is required", goerr.V("index", i))
		}
		if projectIDs[sp.ID] {
			return nil, goerr.Wrap(ErrValidation, "duplicate project ID", goerr.V("id", sp.ID))
		}
		projectIDs[sp.ID] = true

		project, err := sp.build()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid project at index",
				goerr.V("index", i),
				goerr.V("id", sp.ID))
		}
		data.Projects = append(data.Projects, project)

		for j, sr := range sp.Reports {
			if reportIDs[sr.ID] {
				return nil, goerr.Wrap(ErrValidation, "duplicate report ID", goerr.V("id", sr.ID))
			}
			reportIDs[sr.ID] = true

			report, err := sr.build(project.ID)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid report at index",
					goerr.V("project", sp.ID),
					goerr.V("index", j))
			}
			data.Reports = append(data.Reports, report)
		}
	}

	return data, nil
}

func (sp *SeedProject) build() (*Project, error) {
	start, err := parseSeedDate(sp.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseSeedDate(sp.EndDate)
	if err != nil {
		return nil, err
	}

	project, err := NewProject(sp.Name, sp.Client, sp.Manager, start, end)
	if err != nil {
		return nil, err
	}
	project.ID = types.ProjectID(sp.ID)

	if sp.CheckInStatus != "" {
		status := types.CheckInStatus(sp.CheckInStatus)
		if !status.IsValid() {
			return nil, goerr.Wrap(ErrValidation, "invalid check-in status",
				goerr.V("status", sp.CheckInStatus))
		}
		project.CheckInStatus = status
	}
	if sp.HealthStatus != "" {
		health, err := types.ParseHealthStatus(sp.HealthStatus)
		if err != nil {
			return nil, goerr.Wrap(ErrValidation, err.Error())
		}
		project.HealthStatus = health
		project.ProjectStatus = health.ProjectStatus()
	}

	return project, nil
}

func (sr *SeedReport) build(projectID types.ProjectID) (*StatusReport, error) {
	if sr.ID == "" {
		return nil, goerr.Wrap(ErrValidation, "report ID is required")
	}
	if _, err := period.ParseMonth(sr.Month); err != nil {
		return nil, goerr.Wrap(ErrValidation, err.Error())
	}
	if _, err := period.ParseYear(sr.Year); err != nil {
		return nil, goerr.Wrap(ErrValidation, err.Error())
	}
	health, err := types.ParseHealthStatus(sr.Health)
	if err != nil {
		return nil, goerr.Wrap(ErrValidation, err.Error())
	}
	submitted, err := parseSeedDate(sr.Submitted)
	if err != nil {
		return nil, err
	}

	return &StatusReport{
		ID:           types.ReportID(sr.ID),
		ProjectID:    projectID,
		Month:        sr.Month,
		Year:         sr.Year,
		WeekLabel:    sr.Week,
		HealthStatus: health,
		SubmittedAt:  submitted,
		IsLatest:     sr.Latest,
	}, nil
}

func parseSeedDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(seedDateLayout, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrValidation, "invalid date, expected YYYY-MM-DD",
			goerr.V("date", s))
	}
	return t, nil
}
