package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/cli/config"
	"github.com/secmon-lab/checkin/pkg/controller/tui"
	"github.com/secmon-lab/checkin/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPick() *cli.Command {
	var calendarCfg config.Calendar

	return &cli.Command{
		Name:  "pick",
		Usage: "Choose a reporting period interactively",
		Flags: calendarCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			calc, err := calendarCfg.Configure()
			if err != nil {
				return err
			}

			calendar := usecase.NewCalendar(calc)
			current, err := calendar.Current(ctx, time.Now())
			if err != nil {
				return goerr.Wrap(err, "failed to resolve current week")
			}

			p, ok, err := tui.Run(ctx, calendar, current, tea.WithAltScreen())
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			_, err = fmt.Fprintf(c.Root().Writer, "%s %d %s (%s)\n",
				p.Month.String(), p.Year, p.Week.Label(), p.Week.Range())
			return err
		},
	}
}
