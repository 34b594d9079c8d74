package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/cli/config"
	controller "github.com/secmon-lab/checkin/pkg/controller/http"
	"github.com/secmon-lab/checkin/pkg/usecase"
	"github.com/secmon-lab/checkin/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		storageCfg  config.Storage
		slackCfg    config.Slack
		geminiCfg   config.Gemini
		calendarCfg config.Calendar
	)

	flags := joinFlags(
		serverCfg.Flags(),
		storageCfg.Flags(),
		slackCfg.Flags(),
		geminiCfg.Flags(),
		calendarCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting checkin server",
				slog.Any("server", serverCfg),
				slog.Any("storage", storageCfg),
				slog.Any("slack", slackCfg),
				slog.Any("gemini", geminiCfg),
				slog.Any("calendar", calendarCfg),
			)

			calc, err := calendarCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Warn("Failed to close repository", "error", err)
				}
			}()

			var emailOpts []usecase.EmailOption
			notifier, err := slackCfg.Configure()
			if err != nil {
				return err
			}
			if notifier != nil {
				emailOpts = append(emailOpts, usecase.WithNotifier(notifier))
			} else {
				logger.Warn("Slack not configured, sent status reports are only logged")
			}

			summarizer, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if summarizer != nil {
				emailOpts = append(emailOpts, usecase.WithSummarizer(summarizer))
			}

			uc := controller.NewUseCases(
				usecase.NewCalendar(calc),
				usecase.NewProject(repo),
				usecase.NewCheckIn(repo, calc, usecase.NewCheckInConfig()),
				usecase.NewEmail(repo, usecase.NewEmailConfig(emailOpts...)),
			)

			var serverOpts []controller.Option
			if serverCfg.CORS {
				serverOpts = append(serverOpts, controller.WithCORS())
			}
			server := controller.NewServer(ctx, serverCfg.Addr, uc, serverOpts...)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "HTTP server error")
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}
			if err := async.Wait(shutdownCtx); err != nil {
				logger.Warn("Pending deliveries were interrupted", "error", err)
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
