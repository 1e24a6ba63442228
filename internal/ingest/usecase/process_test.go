package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"meeting-task-automation/internal/analysis"
	"meeting-task-automation/internal/ingest"
	ingestUC "meeting-task-automation/internal/ingest/usecase"
	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/internal/taskset/repository/memory"
	tasksetUC "meeting-task-automation/internal/taskset/usecase"
)

// mock dependencies

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

type mockSource struct {
	files   map[string]ingest.FileMetadata
	content map[string]string
}

func (m *mockSource) FetchMetadata(ctx context.Context, fileID string) (ingest.FileMetadata, error) {
	meta, ok := m.files[fileID]
	if !ok {
		return ingest.FileMetadata{}, fmt.Errorf("file %s not found", fileID)
	}
	return meta, nil
}

func (m *mockSource) FetchContent(ctx context.Context, fileID string) (string, error) {
	return m.content[fileID], nil
}

func (m *mockSource) ListFolderFiles(ctx context.Context, folderID string) ([]ingest.FileMetadata, error) {
	var out []ingest.FileMetadata
	for _, meta := range m.files {
		if meta.FolderID == folderID {
			out = append(out, meta)
		}
	}
	return out, nil
}

type mockAnalyzer struct {
	result    model.MeetingAnalysis
	err       error
	lastInput string
	lastCtx   analysis.Context
	calls     int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, content string, mctx analysis.Context) (model.MeetingAnalysis, error) {
	m.calls++
	m.lastInput = content
	m.lastCtx = mctx
	if m.err != nil {
		return model.MeetingAnalysis{}, m.err
	}
	if strings.TrimSpace(content) == "" {
		return model.MeetingAnalysis{}, analysis.ErrEmptyTranscript
	}
	return m.result, nil
}

type mockNotifier struct {
	sets []model.PendingTaskSet
	err  error
}

func (m *mockNotifier) NotifyNewSet(ctx context.Context, set model.PendingTaskSet) error {
	m.sets = append(m.sets, set)
	return m.err
}

type mockTracker struct{}

func (m *mockTracker) CreateTask(ctx context.Context, input taskset.CreateTaskInput) (taskset.ExternalTask, error) {
	return taskset.ExternalTask{ID: "ext-1"}, nil
}

const sampleVTT = `WEBVTT

00:00:01.000 --> 00:00:04.000
<v Alice Nguyen>I'll send the report next friday.

00:00:05.000 --> 00:00:08.000
<v Bob Tran>Sounds good.`

func fixture() (*mockSource, *mockAnalyzer, *mockNotifier, taskset.UseCase) {
	source := &mockSource{
		files: map[string]ingest.FileMetadata{
			"file-1": {
				ID:           "file-1",
				Name:         "Weekly Sync 2026-02-03.vtt",
				MimeType:     "text/vtt",
				FolderID:     "folder-1",
				FolderName:   "Platform",
				ModifiedTime: time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC),
			},
		},
		content: map[string]string{"file-1": sampleVTT},
	}
	analyzer := &mockAnalyzer{result: model.MeetingAnalysis{
		Candidates: []model.TaskCandidate{{
			Title:          "Send the report",
			Priority:       model.PriorityNormal,
			Confidence:     1,
			ExtractionType: model.ExtractionExplicit,
		}},
		Summary: "s",
	}}
	notifier := &mockNotifier{}
	sets := tasksetUC.New(&mockLogger{}, memory.New(), &mockTracker{})
	return source, analyzer, notifier, sets
}

func TestProcessFile(t *testing.T) {
	source, analyzer, notifier, sets := fixture()
	uc := ingestUC.New(&mockLogger{}, source, analyzer, sets, notifier)

	set, err := uc.ProcessFile(context.Background(), "file-1")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if set.MeetingTitle != "Weekly Sync" {
		t.Fatalf("meeting title = %q", set.MeetingTitle)
	}
	if len(set.Candidates) != 1 {
		t.Fatalf("candidates = %d", len(set.Candidates))
	}

	// The analyzer sees normalized content, not raw VTT.
	if strings.Contains(analyzer.lastInput, "-->") || strings.Contains(analyzer.lastInput, "WEBVTT") {
		t.Fatalf("analyzer saw raw VTT: %q", analyzer.lastInput)
	}
	if !strings.Contains(analyzer.lastInput, "Alice Nguyen:") {
		t.Fatalf("speaker attribution lost: %q", analyzer.lastInput)
	}

	// The reference date comes from the file name, not the upload time.
	wantRef := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	if !analyzer.lastCtx.ReferenceDate.Equal(wantRef) {
		t.Fatalf("reference date = %v, want %v", analyzer.lastCtx.ReferenceDate, wantRef)
	}
	if len(analyzer.lastCtx.Attendees) != 2 {
		t.Fatalf("attendees = %v", analyzer.lastCtx.Attendees)
	}

	if len(notifier.sets) != 1 || notifier.sets[0].ID != set.ID {
		t.Fatal("notifier did not receive the new set")
	}
}

func TestProcessFileDuplicate(t *testing.T) {
	source, analyzer, notifier, sets := fixture()
	uc := ingestUC.New(&mockLogger{}, source, analyzer, sets, notifier)
	ctx := context.Background()

	if _, err := uc.ProcessFile(ctx, "file-1"); err != nil {
		t.Fatalf("first process: %v", err)
	}
	calls := analyzer.calls

	if _, err := uc.ProcessFile(ctx, "file-1"); !errors.Is(err, ingest.ErrAlreadyIngested) {
		t.Fatalf("got %v, want ErrAlreadyIngested", err)
	}
	if analyzer.calls != calls {
		t.Fatal("duplicate ingestion reached the analyzer")
	}
}

func TestProcessFileAnalyzerFailureLeavesNoTrace(t *testing.T) {
	source, analyzer, notifier, sets := fixture()
	analyzer.err = analysis.ErrExtractionUnavailable
	uc := ingestUC.New(&mockLogger{}, source, analyzer, sets, notifier)
	ctx := context.Background()

	if _, err := uc.ProcessFile(ctx, "file-1"); !errors.Is(err, analysis.ErrExtractionUnavailable) {
		t.Fatalf("got %v, want ErrExtractionUnavailable", err)
	}

	// Nothing persisted: the file can be retried.
	ingested, _ := sets.IsFileAlreadyIngested(ctx, "file-1")
	if ingested {
		t.Fatal("failed ingestion left a set behind")
	}
	if len(notifier.sets) != 0 {
		t.Fatal("failed ingestion sent a notification")
	}
}

func TestProcessFileEmptyTranscriptCreatesCompletedSet(t *testing.T) {
	source, analyzer, notifier, sets := fixture()
	source.content["file-1"] = "WEBVTT\n\n"
	uc := ingestUC.New(&mockLogger{}, source, analyzer, sets, notifier)

	set, err := uc.ProcessFile(context.Background(), "file-1")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if set.Status != model.SetStatusCompleted || len(set.Candidates) != 0 {
		t.Fatalf("set = status %s candidates %d, want empty completed", set.Status, len(set.Candidates))
	}
}

func TestProcessFileUnsupportedType(t *testing.T) {
	source, analyzer, notifier, sets := fixture()
	source.files["file-2"] = ingest.FileMetadata{ID: "file-2", Name: "recording.mp4", MimeType: "video/mp4"}
	uc := ingestUC.New(&mockLogger{}, source, analyzer, sets, notifier)

	if _, err := uc.ProcessFile(context.Background(), "file-2"); !errors.Is(err, ingest.ErrUnsupportedFile) {
		t.Fatalf("got %v, want ErrUnsupportedFile", err)
	}
}

func TestScanFolder(t *testing.T) {
	source, analyzer, notifier, sets := fixture()
	source.files["file-2"] = ingest.FileMetadata{
		ID: "file-2", Name: "Retro 2026-02-10.txt", MimeType: "text/plain", FolderID: "folder-1",
	}
	source.content["file-2"] = "Alice: let's improve the deploy process."
	source.files["file-3"] = ingest.FileMetadata{
		ID: "file-3", Name: "recording.mp4", MimeType: "video/mp4", FolderID: "folder-1",
	}
	uc := ingestUC.New(&mockLogger{}, source, analyzer, sets, notifier)
	ctx := context.Background()

	// file-1 was already ingested before the scan.
	if _, err := uc.ProcessFile(ctx, "file-1"); err != nil {
		t.Fatalf("pre-ingest: %v", err)
	}

	out, err := uc.ScanFolder(ctx, "folder-1")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out.Processed) != 1 || out.Processed[0] != "file-2" {
		t.Fatalf("processed = %v, want [file-2]", out.Processed)
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "file-1" {
		t.Fatalf("skipped = %v, want [file-1]", out.Skipped)
	}
	if len(out.Failed) != 0 {
		t.Fatalf("failed = %v", out.Failed)
	}
}
