package repository

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
)

// Seed loads the seed data into the repository. Existing records with the same ID
// are overwritten.
func Seed(ctx context.Context, repo interfaces.Repository, seed *model.Seed) error {
	data, err := seed.Build()
	if err != nil {
		return goerr.Wrap(err, "failed to build seed data")
	}

	for _, p := range data.Projects {
		if err := repo.PutProject(ctx, p); err != nil {
			return goerr.Wrap(err, "failed to seed project", goerr.V("id", p.ID))
		}
	}
	for _, r := range data.Reports {
		if err := repo.PutStatusReport(ctx, r); err != nil {
			return goerr.Wrap(err, "failed to seed status report", goerr.V("id", r.ID))
		}
	}
	if data.EmailSettings != nil {
		if err := repo.PutEmailSettings(ctx, data.EmailSettings); err != nil {
			return goerr.Wrap(err, "failed to seed email settings")
		}
	}

	ctxlog.From(ctx).Info("Seed data loaded",
		"projects", len(data.Projects),
		"reports", len(data.Reports),
	)
	return nil
}
