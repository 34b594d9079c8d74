package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Slack Block Kit limits
const (
	maxHeaderLength  = 150
	maxSectionLength = 3000
)

// BuildReportBlocks renders a status report draft as Slack blocks
func BuildReportBlocks(draft *model.EmailDraft) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, truncate(draft.Subject, maxHeaderLength), true, false),
		),
	}

	recipients := []slack.MixedElement{
		slack.NewTextBlockObject(slack.MarkdownType, "*To:* "+strings.Join(draft.To, ", "), false, false),
	}
	if len(draft.CC) > 0 {
		recipients = append(recipients,
			slack.NewTextBlockObject(slack.MarkdownType, "*CC:* "+strings.Join(draft.CC, ", "), false, false))
	}
	blocks = append(blocks, slack.NewContextBlock("", recipients...), slack.NewDividerBlock())

	for _, chunk := range splitText(draft.Body, maxSectionLength) {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, chunk, false, false),
			nil, nil,
		))
	}

	if len(draft.Attachments) > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf(":paperclip: %s", strings.Join(draft.Attachments, ", ")), false, false),
		))
	}

	return blocks
}

// FallbackText returns the notification text for clients that cannot render blocks
func FallbackText(draft *model.EmailDraft) string {
	return draft.Subject
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// splitText splits s into chunks of at most limit runes, preferring line breaks
func splitText(s string, limit int) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0
	for _, line := range strings.SplitAfter(s, "\n") {
		lineRunes := []rune(line)
		for len(lineRunes) > limit {
			if currentLen > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
				currentLen = 0
			}
			chunks = append(chunks, string(lineRunes[:limit]))
			lineRunes = lineRunes[limit:]
		}
		if currentLen+len(lineRunes) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		current.WriteString(string(lineRunes))
		currentLen += len(lineRunes)
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
