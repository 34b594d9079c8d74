package interfaces

//go:generate moq -out mocks/notifier_mock.go -pkg mocks . Notifier

import (
	"context"

	"github.com/secmon-lab/checkin/pkg/domain/model"
)

// Notifier delivers a composed status report email to its audience
type Notifier interface {
	Notify(ctx context.Context, draft *model.EmailDraft) error
}
