package analysis

import (
	"context"
	"fmt"
	"strings"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/transcript"
	"meeting-task-automation/pkg/datemath"
	"meeting-task-automation/pkg/llmprovider"
)

// Analyze extracts task candidates from normalized transcript content.
// Content above the chunk budget is split on speaker boundaries, analyzed
// per chunk, and merged. A failed chunk fails the whole analysis so callers
// never persist a partial result.
func (o *Orchestrator) Analyze(ctx context.Context, content string, mctx Context) (model.MeetingAnalysis, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.MeetingAnalysis{}, ErrEmptyTranscript
	}

	chunks := transcript.PlanChunks(content, o.opts.MaxChunkChars)

	if len(chunks) == 1 {
		result, err := o.analyzeChunk(ctx, chunks[0], mctx, "")
		if err != nil {
			return model.MeetingAnalysis{}, err
		}
		return o.finalize(result, mctx), nil
	}

	o.l.Infof(ctx, "transcript over chunk budget, analyzing in %d parts: meeting=%q chars=%d",
		len(chunks), mctx.MeetingTitle, len(content))

	parts := make([]model.MeetingAnalysis, 0, len(chunks))
	for i, chunk := range chunks {
		if err := o.limiter.Wait(ctx); err != nil {
			return model.MeetingAnalysis{}, err
		}

		label := fmt.Sprintf("(part %d/%d)", i+1, len(chunks))
		result, err := o.analyzeChunk(ctx, chunk, mctx, label)
		if err != nil {
			return model.MeetingAnalysis{}, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, result)
	}

	return o.finalize(Merge(parts...), mctx), nil
}

func (o *Orchestrator) analyzeChunk(ctx context.Context, content string, mctx Context, partLabel string) (model.MeetingAnalysis, error) {
	req := &llmprovider.Request{
		SystemInstruction: systemInstruction,
		Prompt:            buildPrompt(mctx, content, partLabel),
		Temperature:       o.opts.Temperature,
		MaxTokens:         o.opts.MaxTokens,
		JSONResponse:      true,
	}

	var payload analysisPayload
	resp, err := o.llm.GenerateStructured(ctx, req, &payload)
	if err != nil {
		return model.MeetingAnalysis{}, fmt.Errorf("%w: %v", ErrExtractionUnavailable, err)
	}

	o.l.Debugf(ctx, "chunk analyzed: provider=%s candidates=%d", resp.ProviderName, len(payload.Candidates))

	result := payload.toAnalysis()
	pinExplicitConfidence(result.Candidates)
	return result, nil
}

// pinExplicitConfidence forces explicit extractions to confidence 1.0. This
// runs per chunk, before any merge, so cross-chunk dedup compares candidates
// on their final confidence.
func pinExplicitConfidence(candidates []model.TaskCandidate) {
	for i := range candidates {
		if candidates[i].ExtractionType == model.ExtractionExplicit {
			candidates[i].Confidence = 1.0
		}
	}
}

// finalize resolves merged candidates' due dates: spoken due expressions
// become absolute calendar dates. An expression the resolver does not
// understand is dropped rather than guessed at.
func (o *Orchestrator) finalize(result model.MeetingAnalysis, mctx Context) model.MeetingAnalysis {
	for i := range result.Candidates {
		c := &result.Candidates[i]

		if c.SuggestedDue == "" {
			continue
		}
		expr := strings.TrimSpace(c.SuggestedDue)
		if datemath.IsAbsolute(expr) {
			c.SuggestedDue = expr
			continue
		}
		if resolved, ok := o.resolver.Resolve(expr, mctx.ReferenceDate); ok {
			c.SuggestedDue = resolved
		} else {
			c.SuggestedDue = ""
		}
	}
	return result
}
