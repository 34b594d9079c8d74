package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Storage holds the persistence configuration. Firestore takes precedence over
// SQLite; with neither, data lives in memory.
type Storage struct {
	FirestoreProject  string
	FirestoreDatabase string
	SQLitePath        string
	SeedFile          string
}

// Flags returns CLI flags for Storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Storage",
			Sources:     cli.EnvVars("CHECKIN_FIRESTORE_PROJECT"),
			Destination: &s.FirestoreProject,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Storage",
			Value:       "(default)",
			Sources:     cli.EnvVars("CHECKIN_FIRESTORE_DATABASE"),
			Destination: &s.FirestoreDatabase,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file",
			Category:    "Storage",
			Sources:     cli.EnvVars("CHECKIN_SQLITE_PATH"),
			Destination: &s.SQLitePath,
		},
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "YAML file with projects and reports loaded into an empty database (built-in demo data if not set)",
			Category:    "Storage",
			Sources:     cli.EnvVars("CHECKIN_SEED_FILE"),
			Destination: &s.SeedFile,
		},
	}
}

// Configure opens the repository and seeds it when it has no projects yet
func (s *Storage) Configure(ctx context.Context) (interfaces.Repository, error) {
	repo, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.seed(ctx, repo); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

func (s *Storage) open(ctx context.Context) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	switch {
	case s.FirestoreProject != "":
		repo, err := repository.NewFirestore(ctx, s.FirestoreProject, s.FirestoreDatabase)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore",
				goerr.V("project", s.FirestoreProject),
				goerr.V("database", s.FirestoreDatabase),
			)
		}
		return repo, nil

	case s.SQLitePath != "":
		repo, err := repository.NewSQLite(ctx, s.SQLitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init sqlite", goerr.V("path", s.SQLitePath))
		}
		return repo, nil

	default:
		logger.Warn("Using memory database. The data will be removed when shutting down")
		return repository.NewMemory(), nil
	}
}

func (s *Storage) seed(ctx context.Context, repo interfaces.Repository) error {
	projects, err := repo.ListProjects(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to check existing projects")
	}
	if len(projects) > 0 {
		ctxlog.From(ctx).Debug("Database already has projects, skipping seed", "projects", len(projects))
		return nil
	}

	seed, err := LoadSeed(s.SeedFile)
	if err != nil {
		return err
	}
	return repository.Seed(ctx, repo, seed)
}

// Backend returns the name of the configured backend
func (s *Storage) Backend() string {
	switch {
	case s.FirestoreProject != "":
		return "firestore"
	case s.SQLitePath != "":
		return "sqlite"
	default:
		return "memory"
	}
}

// LogValue returns structured log value
func (s Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", s.Backend()),
		slog.String("firestore_project", s.FirestoreProject),
		slog.String("firestore_database", s.FirestoreDatabase),
		slog.String("sqlite_path", s.SQLitePath),
		slog.String("seed_file", s.SeedFile),
	)
}
