package interfaces

import (
	"context"

	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	// Project operations
	PutProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)

	// Status report operations. ListStatusReports returns the newest submission first.
	PutStatusReport(ctx context.Context, report *model.StatusReport) error
	GetStatusReport(ctx context.Context, id types.ReportID) (*model.StatusReport, error)
	ListStatusReports(ctx context.Context, projectID types.ProjectID) ([]*model.StatusReport, error)

	// Check-in operations
	PutCheckIn(ctx context.Context, checkIn *model.CheckIn) error
	GetCheckIn(ctx context.Context, id types.CheckInID) (*model.CheckIn, error)

	// Email settings operations. GetEmailSettings returns nil when nothing is stored.
	GetEmailSettings(ctx context.Context) (*model.EmailSettings, error)
	PutEmailSettings(ctx context.Context, settings *model.EmailSettings) error

	// Close closes the repository connection
	Close() error
}
