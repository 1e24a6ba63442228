package analysis_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"meeting-task-automation/internal/analysis"
	"meeting-task-automation/internal/model"
	"meeting-task-automation/pkg/llmprovider"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// scriptedProvider replays canned responses and records the prompts it saw.
type scriptedProvider struct {
	responses []string
	err       error
	prompts   []string
}

func (p *scriptedProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	p.prompts = append(p.prompts, req.Prompt)
	if p.err != nil {
		return nil, p.err
	}
	idx := len(p.prompts) - 1
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	return &llmprovider.Response{Text: p.responses[idx], ProviderName: "scripted"}, nil
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "scripted-model" }

func newOrchestrator(p llmprovider.Provider, opts analysis.Options) *analysis.Orchestrator {
	mgr := llmprovider.NewManager([]llmprovider.Provider{p}, &llmprovider.Config{
		FallbackEnabled: true,
		RetryAttempts:   1,
	}, &mockLogger{})
	return analysis.New(&mockLogger{}, mgr, opts)
}

func candidateJSON(title, due, extraction string, confidence float64) string {
	return fmt.Sprintf(`{"title":%q,"description":"","suggested_assignee":"","suggested_due":%q,"priority":"normal","source_quote":"q","confidence":%v,"extraction_type":%q}`,
		title, due, confidence, extraction)
}

func refDate() time.Time {
	return time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC) // a Tuesday
}

func TestAnalyzeResolvesRelativeDueDates(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"candidates":[` + candidateJSON("Send the report", "next friday", "explicit", 0.4) + `],"summary":"s","decisions":[]}`,
	}}

	result, err := newOrchestrator(provider, analysis.Options{}).Analyze(
		context.Background(), "Alice: I'll send the report next friday.",
		analysis.Context{MeetingTitle: "Weekly sync", ReferenceDate: refDate()},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates", len(result.Candidates))
	}
	got := result.Candidates[0]
	if got.SuggestedDue != "2026-02-06" {
		t.Fatalf("suggested due = %q, want 2026-02-06", got.SuggestedDue)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("explicit candidate confidence = %v, want pinned to 1.0", got.Confidence)
	}
}

func TestAnalyzeDropsUnresolvableDueDate(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"candidates":[` + candidateJSON("Fix flaky test", "whenever we get to it", "implicit", 0.5) + `],"summary":"","decisions":[]}`,
	}}

	result, err := newOrchestrator(provider, analysis.Options{}).Analyze(
		context.Background(), "Bob: we should fix that flaky test.",
		analysis.Context{ReferenceDate: refDate()},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if due := result.Candidates[0].SuggestedDue; due != "" {
		t.Fatalf("suggested due = %q, want dropped", due)
	}
}

func TestAnalyzeKeepsAbsoluteDueDate(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"candidates":[` + candidateJSON("Book the venue", "2026-03-15", "implicit", 0.9) + `],"summary":"","decisions":[]}`,
	}}

	result, err := newOrchestrator(provider, analysis.Options{}).Analyze(
		context.Background(), "Alice: venue by March 15.",
		analysis.Context{ReferenceDate: refDate()},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if due := result.Candidates[0].SuggestedDue; due != "2026-03-15" {
		t.Fatalf("suggested due = %q, want 2026-03-15", due)
	}
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"{}"}}

	_, err := newOrchestrator(provider, analysis.Options{}).Analyze(
		context.Background(), "   \n  ", analysis.Context{ReferenceDate: refDate()})
	if !errors.Is(err, analysis.ErrEmptyTranscript) {
		t.Fatalf("got %v, want ErrEmptyTranscript", err)
	}
	if len(provider.prompts) != 0 {
		t.Fatal("provider was called for an empty transcript")
	}
}

func TestAnalyzeProviderExhaustion(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("quota exceeded")}

	_, err := newOrchestrator(provider, analysis.Options{}).Analyze(
		context.Background(), "Alice: hello.", analysis.Context{ReferenceDate: refDate()})
	if !errors.Is(err, analysis.ErrExtractionUnavailable) {
		t.Fatalf("got %v, want ErrExtractionUnavailable", err)
	}
}

func TestAnalyzeChunkedTranscriptMergesParts(t *testing.T) {
	part := `{"candidates":[` + candidateJSON("Update database schema", "", "explicit", 1.0) + `],"summary":"part summary","decisions":[]}`
	provider := &scriptedProvider{responses: []string{part}}

	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("Alice: point number %d about the schema migration.", i))
	}
	content := strings.Join(lines, "\n")

	result, err := newOrchestrator(provider, analysis.Options{MaxChunkChars: 300}).Analyze(
		context.Background(), content,
		analysis.Context{MeetingTitle: "Planning", ReferenceDate: refDate()},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.prompts) < 2 {
		t.Fatalf("provider called %d times, want one call per chunk", len(provider.prompts))
	}
	for i, prompt := range provider.prompts {
		label := fmt.Sprintf("(part %d/%d)", i+1, len(provider.prompts))
		if !strings.Contains(prompt, label) {
			t.Fatalf("prompt %d missing part label %q", i, label)
		}
	}
	// Identical candidates from every chunk collapse to one.
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates after merge, want 1", len(result.Candidates))
	}
}

func TestAnalyzeChunkedPinsExplicitConfidenceBeforeMerge(t *testing.T) {
	// An explicit candidate reported with low confidence must already be
	// pinned to 1.0 when cross-chunk dedup compares it against a
	// high-confidence implicit duplicate from another chunk.
	explicit := `{"candidates":[` + candidateJSON("Update database schema", "", "explicit", 0.4) + `],"summary":"","decisions":[]}`
	implicit := `{"candidates":[` + candidateJSON("Update database schema for new user fields", "", "implicit", 0.9) + `],"summary":"","decisions":[]}`
	provider := &scriptedProvider{responses: []string{explicit, implicit}}

	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("Alice: point number %d about the schema migration.", i))
	}
	content := strings.Join(lines, "\n")

	result, err := newOrchestrator(provider, analysis.Options{MaxChunkChars: 300}).Analyze(
		context.Background(), content,
		analysis.Context{MeetingTitle: "Planning", ReferenceDate: refDate()},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(provider.prompts) < 2 {
		t.Fatalf("provider called %d times, want one call per chunk", len(provider.prompts))
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates after merge, want 1", len(result.Candidates))
	}
	got := result.Candidates[0]
	if got.ExtractionType != model.ExtractionExplicit {
		t.Fatalf("survivor is %s, want explicit", got.ExtractionType)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("survivor confidence = %v, want pinned to 1.0", got.Confidence)
	}
}

func TestAnalyzeSchemaDriftSurfacesAsUnavailable(t *testing.T) {
	// Valid JSON, invalid taxonomy: the provider chain rejects it.
	provider := &scriptedProvider{responses: []string{
		`{"candidates":[{"title":"x","priority":"someday","confidence":0.5,"extraction_type":"implicit"}],"summary":"","decisions":[]}`,
	}}

	_, err := newOrchestrator(provider, analysis.Options{}).Analyze(
		context.Background(), "Alice: hello.", analysis.Context{ReferenceDate: refDate()})
	if !errors.Is(err, analysis.ErrExtractionUnavailable) {
		t.Fatalf("got %v, want ErrExtractionUnavailable", err)
	}
}
