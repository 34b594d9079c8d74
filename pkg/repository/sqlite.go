package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/types"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS projects (
  id         TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  data       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS status_reports (
  id           TEXT PRIMARY KEY,
  project_id   TEXT NOT NULL,
  submitted_at INTEGER NOT NULL,
  data         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_project ON status_reports(project_id, submitted_at);
CREATE TABLE IF NOT EXISTS check_ins (
  id         TEXT PRIMARY KEY,
  project_id TEXT NOT NULL,
  data       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
  key  TEXT PRIMARY KEY,
  data TEXT NOT NULL
);
`

const emailSettingsKey = "email"

// SQLite implements Repository interface with a local SQLite database file
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the schema exists
func NewSQLite(ctx context.Context, path string) (interfaces.Repository, error) {
	if path == "" {
		return nil, goerr.New("sqlite path is empty")
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to connect to sqlite database", goerr.V("path", path))
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to create sqlite schema")
	}

	ctxlog.From(ctx).Info("SQLite repository initialized successfully", "path", path)

	return &SQLite{db: db}, nil
}

// PutProject saves a project
func (s *SQLite) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if err := project.ID.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(project)
	if err != nil {
		return goerr.Wrap(err, "failed to encode project")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects(id, name, data) VALUES(?,?,?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data`,
		project.ID.String(), project.Name, string(data))
	if err != nil {
		return goerr.Wrap(err, "failed to save project to sqlite", goerr.V("id", project.ID))
	}
	return nil
}

// GetProject retrieves a project by ID
func (s *SQLite) GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var project model.Project
	row := s.db.QueryRowContext(ctx, "SELECT data FROM projects WHERE id = ?", id.String())
	if err := scanJSON(row, &project); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(model.ErrProjectNotFound, "failed to get project", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project from sqlite", goerr.V("id", id))
	}
	return &project, nil
}

// ListProjects lists all projects ordered by name
func (s *SQLite) ListProjects(ctx context.Context) ([]*model.Project, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM projects ORDER BY name, id")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects from sqlite")
	}
	defer rows.Close()

	projects := make([]*model.Project, 0)
	for rows.Next() {
		var project model.Project
		if err := scanJSON(rows, &project); err != nil {
			return nil, goerr.Wrap(err, "failed to decode project")
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate projects")
	}
	return projects, nil
}

// PutStatusReport saves a status report
func (s *SQLite) PutStatusReport(ctx context.Context, report *model.StatusReport) error {
	if report == nil {
		return goerr.New("status report is nil")
	}
	if err := report.ID.Validate(); err != nil {
		return err
	}
	if err := report.ProjectID.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(report)
	if err != nil {
		return goerr.Wrap(err, "failed to encode status report")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO status_reports(id, project_id, submitted_at, data) VALUES(?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET project_id = excluded.project_id,
		   submitted_at = excluded.submitted_at, data = excluded.data`,
		report.ID.String(), report.ProjectID.String(), report.SubmittedAt.UnixNano(), string(data))
	if err != nil {
		return goerr.Wrap(err, "failed to save status report to sqlite", goerr.V("id", report.ID))
	}
	return nil
}

// GetStatusReport retrieves a status report by ID
func (s *SQLite) GetStatusReport(ctx context.Context, id types.ReportID) (*model.StatusReport, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var report model.StatusReport
	row := s.db.QueryRowContext(ctx, "SELECT data FROM status_reports WHERE id = ?", id.String())
	if err := scanJSON(row, &report); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(model.ErrReportNotFound, "failed to get status report", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get status report from sqlite", goerr.V("id", id))
	}
	return &report, nil
}

// ListStatusReports lists status reports of a project, newest submission first
func (s *SQLite) ListStatusReports(ctx context.Context, projectID types.ProjectID) ([]*model.StatusReport, error) {
	if err := projectID.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM status_reports WHERE project_id = ? ORDER BY submitted_at DESC, id DESC",
		projectID.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list status reports from sqlite")
	}
	defer rows.Close()

	reports := make([]*model.StatusReport, 0)
	for rows.Next() {
		var report model.StatusReport
		if err := scanJSON(rows, &report); err != nil {
			return nil, goerr.Wrap(err, "failed to decode status report")
		}
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate status reports")
	}
	return reports, nil
}

// PutCheckIn saves a check-in
func (s *SQLite) PutCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	if checkIn == nil {
		return goerr.New("check-in is nil")
	}
	if err := checkIn.ID.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(checkIn)
	if err != nil {
		return goerr.Wrap(err, "failed to encode check-in")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO check_ins(id, project_id, data) VALUES(?,?,?)
		 ON CONFLICT(id) DO UPDATE SET project_id = excluded.project_id, data = excluded.data`,
		checkIn.ID.String(), checkIn.ProjectID.String(), string(data))
	if err != nil {
		return goerr.Wrap(err, "failed to save check-in to sqlite", goerr.V("id", checkIn.ID))
	}
	return nil
}

// GetCheckIn retrieves a check-in by ID
func (s *SQLite) GetCheckIn(ctx context.Context, id types.CheckInID) (*model.CheckIn, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var checkIn model.CheckIn
	row := s.db.QueryRowContext(ctx, "SELECT data FROM check_ins WHERE id = ?", id.String())
	if err := scanJSON(row, &checkIn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(model.ErrCheckInNotFound, "failed to get check-in", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get check-in from sqlite", goerr.V("id", id))
	}
	return &checkIn, nil
}

// GetEmailSettings returns the stored email settings or nil
func (s *SQLite) GetEmailSettings(ctx context.Context) (*model.EmailSettings, error) {
	var settings model.EmailSettings
	row := s.db.QueryRowContext(ctx, "SELECT data FROM settings WHERE key = ?", emailSettingsKey)
	if err := scanJSON(row, &settings); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get email settings from sqlite")
	}
	return &settings, nil
}

// PutEmailSettings saves the email settings
func (s *SQLite) PutEmailSettings(ctx context.Context, settings *model.EmailSettings) error {
	if settings == nil {
		return goerr.New("email settings is nil")
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return goerr.Wrap(err, "failed to encode email settings")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings(key, data) VALUES(?,?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data`,
		emailSettingsKey, string(data))
	if err != nil {
		return goerr.Wrap(err, "failed to save email settings to sqlite")
	}
	return nil
}

// Close closes the database
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJSON(row scanner, v any) error {
	var data string
	if err := row.Scan(&data); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return goerr.Wrap(err, "failed to decode stored record")
	}
	return nil
}
