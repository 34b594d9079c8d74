package slack

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/slack-go/slack"
)

var _ interfaces.Notifier = (*Notifier)(nil)

// Notifier posts status report drafts to a Slack channel
type Notifier struct {
	service   *Service
	channelID string
}

// NewNotifier creates a Notifier posting to channelID
func NewNotifier(service *Service, channelID string) *Notifier {
	return &Notifier{
		service:   service,
		channelID: channelID,
	}
}

// Notify posts the draft to the configured channel
func (n *Notifier) Notify(ctx context.Context, draft *model.EmailDraft) error {
	if n.channelID == "" {
		return goerr.New("Slack channel is not configured")
	}

	channel, ts, err := n.service.PostMessage(ctx, n.channelID,
		slack.MsgOptionText(FallbackText(draft), false),
		slack.MsgOptionBlocks(BuildReportBlocks(draft)...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post status report",
			goerr.V("subject", draft.Subject))
	}

	ctxlog.From(ctx).Debug("Status report posted to Slack",
		"channel", channel,
		"ts", ts,
	)
	return nil
}
