package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	projectsCollection      = "projects"
	statusReportsCollection = "status_reports"
	checkInsCollection      = "check_ins"
	settingsCollection      = "settings"

	// Document IDs
	emailSettingsDocID = "email"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on invalid project or missing permissions
	_, err = client.Collection(projectsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// PutProject saves a project to Firestore
func (f *Firestore) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if err := project.ID.Validate(); err != nil {
		return err
	}

	_, err := f.client.Collection(projectsCollection).Doc(project.ID.String()).Set(ctx, project)
	if err != nil {
		return goerr.Wrap(err, "failed to save project to firestore", goerr.V("id", project.ID))
	}
	return nil
}

// GetProject retrieves a project by ID
func (f *Firestore) GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	doc, err := f.client.Collection(projectsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrProjectNotFound, "failed to get project", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project from firestore", goerr.V("id", id))
	}

	var project model.Project
	if err := doc.DataTo(&project); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project")
	}
	return &project, nil
}

// ListProjects lists all projects ordered by name
func (f *Firestore) ListProjects(ctx context.Context) ([]*model.Project, error) {
	iter := f.client.Collection(projectsCollection).Documents(ctx)
	defer iter.Stop()

	projects := make([]*model.Project, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}

		var project model.Project
		if err := doc.DataTo(&project); err != nil {
			return nil, goerr.Wrap(err, "failed to decode project")
		}
		projects = append(projects, &project)
	}

	sortProjects(projects)
	return projects, nil
}

// PutStatusReport saves a status report to Firestore
func (f *Firestore) PutStatusReport(ctx context.Context, report *model.StatusReport) error {
	if report == nil {
		return goerr.New("status report is nil")
	}
	if err := report.ID.Validate(); err != nil {
		return err
	}
	if err := report.ProjectID.Validate(); err != nil {
		return err
	}

	_, err := f.client.Collection(statusReportsCollection).Doc(report.ID.String()).Set(ctx, report)
	if err != nil {
		return goerr.Wrap(err, "failed to save status report to firestore", goerr.V("id", report.ID))
	}
	return nil
}

// GetStatusReport retrieves a status report by ID
func (f *Firestore) GetStatusReport(ctx context.Context, id types.ReportID) (*model.StatusReport, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	doc, err := f.client.Collection(statusReportsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrReportNotFound, "failed to get status report", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get status report from firestore", goerr.V("id", id))
	}

	var report model.StatusReport
	if err := doc.DataTo(&report); err != nil {
		return nil, goerr.Wrap(err, "failed to decode status report")
	}
	return &report, nil
}

// ListStatusReports lists status reports of a project, newest submission first
func (f *Firestore) ListStatusReports(ctx context.Context, projectID types.ProjectID) ([]*model.StatusReport, error) {
	if err := projectID.Validate(); err != nil {
		return nil, err
	}

	// Sorted in memory to avoid requiring a composite index
	// Note: Field names in Firestore match Go struct field names
	iter := f.client.Collection(statusReportsCollection).
		Where("ProjectID", "==", projectID.String()).
		Documents(ctx)
	defer iter.Stop()

	reports := make([]*model.StatusReport, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate status reports")
		}

		var report model.StatusReport
		if err := doc.DataTo(&report); err != nil {
			return nil, goerr.Wrap(err, "failed to decode status report")
		}
		reports = append(reports, &report)
	}

	sortReports(reports)
	return reports, nil
}

// PutCheckIn saves a check-in to Firestore
func (f *Firestore) PutCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	if checkIn == nil {
		return goerr.New("check-in is nil")
	}
	if err := checkIn.ID.Validate(); err != nil {
		return err
	}

	_, err := f.client.Collection(checkInsCollection).Doc(checkIn.ID.String()).Set(ctx, checkIn)
	if err != nil {
		return goerr.Wrap(err, "failed to save check-in to firestore", goerr.V("id", checkIn.ID))
	}
	return nil
}

// GetCheckIn retrieves a check-in by ID
func (f *Firestore) GetCheckIn(ctx context.Context, id types.CheckInID) (*model.CheckIn, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	doc, err := f.client.Collection(checkInsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrCheckInNotFound, "failed to get check-in", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get check-in from firestore", goerr.V("id", id))
	}

	var checkIn model.CheckIn
	if err := doc.DataTo(&checkIn); err != nil {
		return nil, goerr.Wrap(err, "failed to decode check-in")
	}
	return &checkIn, nil
}

// GetEmailSettings returns the stored email settings or nil
func (f *Firestore) GetEmailSettings(ctx context.Context) (*model.EmailSettings, error) {
	doc, err := f.client.Collection(settingsCollection).Doc(emailSettingsDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get email settings from firestore")
	}

	var settings model.EmailSettings
	if err := doc.DataTo(&settings); err != nil {
		return nil, goerr.Wrap(err, "failed to decode email settings")
	}
	return &settings, nil
}

// PutEmailSettings saves the email settings
func (f *Firestore) PutEmailSettings(ctx context.Context, settings *model.EmailSettings) error {
	if settings == nil {
		return goerr.New("email settings is nil")
	}

	_, err := f.client.Collection(settingsCollection).Doc(emailSettingsDocID).Set(ctx, settings)
	if err != nil {
		return goerr.Wrap(err, "failed to save email settings to firestore")
	}
	return nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
