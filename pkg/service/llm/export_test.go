package llm

import "github.com/secmon-lab/checkin/pkg/domain/model"

// RenderSummaryPrompt exposes prompt rendering for tests
func RenderSummaryPrompt(project *model.Project, checkIn *model.CheckIn) (string, error) {
	return renderSummaryTemplate(buildTemplateData(project, checkIn))
}
