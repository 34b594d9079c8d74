package interfaces

//go:generate moq -out mocks/llm_mock.go -pkg mocks . Summarizer

import (
	"context"

	"github.com/secmon-lab/checkin/pkg/domain/model"
)

// Summarizer generates a short narrative summary of a check-in
type Summarizer interface {
	SummarizeCheckIn(ctx context.Context, project *model.Project, checkIn *model.CheckIn) (string, error)
}
