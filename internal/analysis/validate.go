package analysis

import (
	"fmt"

	"meeting-task-automation/internal/model"
)

// analysisPayload is the decode target for one LLM response. Its Validate
// makes schema drift count as a provider failure, so a model that answers
// with malformed candidates is retried on the fallback chain instead of
// poisoning the pipeline.
type analysisPayload struct {
	Candidates []model.TaskCandidate `json:"candidates"`
	Summary    string                `json:"summary"`
	Decisions  []string              `json:"decisions"`
}

func (p *analysisPayload) Validate() error {
	for i, c := range p.Candidates {
		if c.Title == "" {
			return fmt.Errorf("candidate %d: title is empty", i)
		}
		if !c.Priority.Valid() {
			return fmt.Errorf("candidate %d: unknown priority %q", i, c.Priority)
		}
		if c.Confidence < 0 || c.Confidence > 1 {
			return fmt.Errorf("candidate %d: confidence %v out of [0,1]", i, c.Confidence)
		}
		switch c.ExtractionType {
		case model.ExtractionExplicit, model.ExtractionImplicit:
		default:
			return fmt.Errorf("candidate %d: unknown extraction type %q", i, c.ExtractionType)
		}
	}
	return nil
}

func (p *analysisPayload) toAnalysis() model.MeetingAnalysis {
	return model.MeetingAnalysis{
		Candidates: p.Candidates,
		Summary:    p.Summary,
		Decisions:  p.Decisions,
	}
}
