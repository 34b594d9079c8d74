package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	slackSvc "github.com/secmon-lab/checkin/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack configuration for delivering status reports
type Slack struct {
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for API access",
			Category:    "Slack",
			Sources:     cli.EnvVars("CHECKIN_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID that receives sent status reports",
			Category:    "Slack",
			Sources:     cli.EnvVars("CHECKIN_SLACK_CHANNEL"),
			Destination: &s.ChannelID,
		},
	}
}

// Configure creates the status report notifier. It returns nil when Slack is not configured.
func (s *Slack) Configure() (interfaces.Notifier, error) {
	if !s.IsConfigured() {
		return nil, nil
	}
	if s.ChannelID == "" {
		return nil, goerr.New("slack channel is required when slack token is set")
	}
	return slackSvc.NewNotifier(slackSvc.New(s.OAuthToken), s.ChannelID), nil
}

// IsConfigured checks if Slack is configured
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.ChannelID),
	)
}
