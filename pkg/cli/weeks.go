package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/secmon-lab/checkin/pkg/cli/config"
	"github.com/secmon-lab/checkin/pkg/controller/tui"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdWeeks() *cli.Command {
	var (
		calendarCfg config.Calendar
		month       string
		year        string
	)

	now := time.Now()
	flags := joinFlags(
		calendarCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "month",
				Aliases:     []string{"m"},
				Usage:       "Three-letter month name (Jan .. Dec)",
				Value:       period.MonthOf(now).String(),
				Destination: &month,
			},
			&cli.StringFlag{
				Name:        "year",
				Aliases:     []string{"y"},
				Usage:       "Four-digit year",
				Value:       strconv.Itoa(now.Year()),
				Destination: &year,
			},
		},
	)

	return &cli.Command{
		Name:  "weeks",
		Usage: "Print the weeks of a month",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			calc, err := calendarCfg.Configure()
			if err != nil {
				return err
			}

			m, err := period.ParseMonth(month)
			if err != nil {
				return err
			}
			y, err := period.ParseYear(year)
			if err != nil {
				return err
			}

			calendar := usecase.NewCalendar(calc)
			weeks, err := calendar.Weeks(ctx, m.String(), strconv.Itoa(y))
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(c.Root().Writer, tui.RenderWeeks(m, y, weeks))
			return err
		},
	}
}
