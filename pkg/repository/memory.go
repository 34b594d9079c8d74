package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu            sync.RWMutex
	projects      map[types.ProjectID]*model.Project
	reports       map[types.ReportID]*model.StatusReport
	checkIns      map[types.CheckInID]*model.CheckIn
	emailSettings *model.EmailSettings
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		projects: make(map[types.ProjectID]*model.Project),
		reports:  make(map[types.ReportID]*model.StatusReport),
		checkIns: make(map[types.CheckInID]*model.CheckIn),
	}
}

// PutProject saves a project to memory
func (m *Memory) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if err := project.ID.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	projectCopy := *project
	m.projects[project.ID] = &projectCopy
	return nil
}

// GetProject retrieves a project by ID
func (m *Memory) GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	project, exists := m.projects[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrProjectNotFound, "failed to get project", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	projectCopy := *project
	return &projectCopy, nil
}

// ListProjects lists all projects ordered by name
func (m *Memory) ListProjects(ctx context.Context) ([]*model.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	projects := make([]*model.Project, 0, len(m.projects))
	for _, p := range m.projects {
		projectCopy := *p
		projects = append(projects, &projectCopy)
	}

	sortProjects(projects)
	return projects, nil
}

// PutStatusReport saves a status report to memory
func (m *Memory) PutStatusReport(ctx context.Context, report *model.StatusReport) error {
	if report == nil {
		return goerr.New("status report is nil")
	}
	if err := report.ID.Validate(); err != nil {
		return err
	}
	if err := report.ProjectID.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	reportCopy := *report
	m.reports[report.ID] = &reportCopy
	return nil
}

// GetStatusReport retrieves a status report by ID
func (m *Memory) GetStatusReport(ctx context.Context, id types.ReportID) (*model.StatusReport, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	report, exists := m.reports[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrReportNotFound, "failed to get status report", goerr.V("id", id))
	}

	reportCopy := *report
	return &reportCopy, nil
}

// ListStatusReports lists status reports of a project, newest submission first
func (m *Memory) ListStatusReports(ctx context.Context, projectID types.ProjectID) ([]*model.StatusReport, error) {
	if err := projectID.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	reports := make([]*model.StatusReport, 0)
	for _, r := range m.reports {
		if r.ProjectID == projectID {
			reportCopy := *r
			reports = append(reports, &reportCopy)
		}
	}

	sortReports(reports)
	return reports, nil
}

// PutCheckIn saves a check-in to memory
func (m *Memory) PutCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	if checkIn == nil {
		return goerr.New("check-in is nil")
	}
	if err := checkIn.ID.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkIns[checkIn.ID] = copyCheckIn(checkIn)
	return nil
}

// GetCheckIn retrieves a check-in by ID
func (m *Memory) GetCheckIn(ctx context.Context, id types.CheckInID) (*model.CheckIn, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	checkIn, exists := m.checkIns[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrCheckInNotFound, "failed to get check-in", goerr.V("id", id))
	}

	return copyCheckIn(checkIn), nil
}

// GetEmailSettings returns the stored email settings or nil
func (m *Memory) GetEmailSettings(ctx context.Context) (*model.EmailSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.emailSettings == nil {
		return nil, nil
	}
	return m.emailSettings.Copy(), nil
}

// PutEmailSettings saves the email settings
func (m *Memory) PutEmailSettings(ctx context.Context, settings *model.EmailSettings) error {
	if settings == nil {
		return goerr.New("email settings is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.emailSettings = settings.Copy()
	return nil
}

// Close is a no-op for memory repository
func (m *Memory) Close() error {
	return nil
}

func copyCheckIn(c *model.CheckIn) *model.CheckIn {
	checkInCopy := *c
	checkInCopy.RAID = append([]model.RAIDItem(nil), c.RAID...)
	checkInCopy.Resources = append([]model.ResourceAllocation(nil), c.Resources...)
	return &checkInCopy
}

func sortProjects(projects []*model.Project) {
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Name != projects[j].Name {
			return projects[i].Name < projects[j].Name
		}
		return projects[i].ID < projects[j].ID
	})
}

// sortReports orders reports by submission time, newest first
func sortReports(reports []*model.StatusReport) {
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].SubmittedAt.Equal(reports[j].SubmittedAt) {
			return reports[i].SubmittedAt.After(reports[j].SubmittedAt)
		}
		return reports[i].ID > reports[j].ID
	})
}
