package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/urfave/cli/v3"
)

// Calendar holds the week numbering configuration
type Calendar struct {
	WeekConvention string
}

// Flags returns CLI flags for Calendar configuration
func (c *Calendar) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "week-convention",
			Usage:       "How weeks of a month are numbered (grid, day-count)",
			Category:    "Calendar",
			Value:       period.ConventionCalendarGrid.String(),
			Sources:     cli.EnvVars("CHECKIN_WEEK_CONVENTION"),
			Destination: &c.WeekConvention,
		},
	}
}

// Configure creates the week calculator
func (c *Calendar) Configure() (*period.Calculator, error) {
	convention, err := period.ParseConvention(c.WeekConvention)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid week convention")
	}
	return period.New(convention), nil
}

// LogValue returns structured log value
func (c Calendar) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("week_convention", c.WeekConvention),
	)
}
