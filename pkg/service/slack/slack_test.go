package slack_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/checkin/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	slackSvc "github.com/secmon-lab/checkin/pkg/service/slack"
	"github.com/slack-go/slack"
)

func testDraft() *model.EmailDraft {
	return &model.EmailDraft{
		To:          []string{"leadership@company.com", "stakeholders@company.com"},
		CC:          []string{"pm-reports@company.com"},
		Subject:     "Weekly Project Status Update - Customer Portal Redesign",
		Body:        "Hi Team,\n\nReport Period: Dec 2025 - Week 2\nHealth Status: Green",
		Attachments: []string{model.DefaultAttachment},
	}
}

func TestBuildReportBlocks(t *testing.T) {
	blocks := slackSvc.BuildReportBlocks(testDraft())
	gt.Equal(t, len(blocks), 5)

	header, ok := blocks[0].(*slack.HeaderBlock)
	gt.True(t, ok)
	gt.Equal(t, header.Text.Text, "Weekly Project Status Update - Customer Portal Redesign")

	recipients, ok := blocks[1].(*slack.ContextBlock)
	gt.True(t, ok)
	gt.Equal(t, len(recipients.ContextElements.Elements), 2)

	_, ok = blocks[2].(*slack.DividerBlock)
	gt.True(t, ok)

	body, ok := blocks[3].(*slack.SectionBlock)
	gt.True(t, ok)
	gt.S(t, body.Text.Text).Contains("Health Status: Green")

	attachments, ok := blocks[4].(*slack.ContextBlock)
	gt.True(t, ok)
	text, ok := attachments.ContextElements.Elements[0].(*slack.TextBlockObject)
	gt.True(t, ok)
	gt.S(t, text.Text).Contains("Weekly_Status_Report.pdf")
}

func TestBuildReportBlocks_WithoutCCAndAttachments(t *testing.T) {
	draft := testDraft()
	draft.CC = nil
	draft.Attachments = nil

	blocks := slackSvc.BuildReportBlocks(draft)
	gt.Equal(t, len(blocks), 4)
	recipients := blocks[1].(*slack.ContextBlock)
	gt.Equal(t, len(recipients.ContextElements.Elements), 1)
}

func TestBuildReportBlocks_LongContent(t *testing.T) {
	draft := testDraft()
	draft.Subject = strings.Repeat("s", 200)
	draft.Body = strings.Repeat(strings.Repeat("x", 99)+"\n", 70)

	blocks := slackSvc.BuildReportBlocks(draft)

	header := blocks[0].(*slack.HeaderBlock)
	gt.Equal(t, len([]rune(header.Text.Text)), 150)

	var sections []string
	for _, b := range blocks {
		if s, ok := b.(*slack.SectionBlock); ok {
			gt.True(t, len([]rune(s.Text.Text)) <= 3000)
			sections = append(sections, s.Text.Text)
		}
	}
	gt.Equal(t, len(sections), 3)
	gt.Equal(t, strings.Join(sections, ""), draft.Body)
}

func TestNotifier_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("posts to configured channel", func(t *testing.T) {
		client := &mocks.SlackClientMock{
			PostMessageContextFunc: func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
				return channelID, "1234567890.123456", nil
			},
		}
		notifier := slackSvc.NewNotifier(slackSvc.NewWithClient(client), "C0123456")

		gt.NoError(t, notifier.Notify(ctx, testDraft()))
		calls := client.PostMessageContextCalls()
		gt.Equal(t, len(calls), 1)
		gt.Equal(t, calls[0].ChannelID, "C0123456")
		gt.Equal(t, len(calls[0].Options), 2)
	})

	t.Run("Slack error", func(t *testing.T) {
		client := &mocks.SlackClientMock{
			PostMessageContextFunc: func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
				return "", "", goerr.New("channel_not_found")
			},
		}
		notifier := slackSvc.NewNotifier(slackSvc.NewWithClient(client), "C0123456")

		err := notifier.Notify(ctx, testDraft())
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("channel_not_found")
	})

	t.Run("missing channel", func(t *testing.T) {
		client := &mocks.SlackClientMock{}
		notifier := slackSvc.NewNotifier(slackSvc.NewWithClient(client), "")
		gt.Error(t, notifier.Notify(ctx, testDraft()))
		gt.Equal(t, len(client.PostMessageContextCalls()), 0)
	})
}

func TestService_AuthTest(t *testing.T) {
	client := &mocks.SlackClientMock{
		AuthTestContextFunc: func(ctx context.Context) (*slack.AuthTestResponse, error) {
			return &slack.AuthTestResponse{TeamID: "T123", UserID: "U123"}, nil
		},
	}
	resp, err := slackSvc.NewWithClient(client).AuthTest(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, resp.TeamID, "T123")
}
