package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/internal/taskset/repository/memory"
	"meeting-task-automation/internal/taskset/usecase"
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

type mockTracker struct {
	created []taskset.CreateTaskInput
	failOn  map[string]bool // titles that fail
}

func (m *mockTracker) CreateTask(ctx context.Context, input taskset.CreateTaskInput) (taskset.ExternalTask, error) {
	if m.failOn[input.Title] {
		return taskset.ExternalTask{}, errors.New("tracker unavailable")
	}
	m.created = append(m.created, input)
	return taskset.ExternalTask{
		ID:  fmt.Sprintf("ext-%d", len(m.created)),
		URL: fmt.Sprintf("https://tracker.example/t/%d", len(m.created)),
	}, nil
}

func newUseCase(t *testing.T) (taskset.UseCase, *mockTracker) {
	t.Helper()
	tracker := &mockTracker{failOn: map[string]bool{}}
	return usecase.New(&mockLogger{}, memory.New(), tracker), tracker
}

func createInput(fileID string, titles ...string) taskset.CreateInput {
	input := taskset.CreateInput{
		SourceFileID:   fileID,
		SourceFolderID: "folder-1",
		MeetingTitle:   "Weekly sync",
		Analysis:       model.MeetingAnalysis{Summary: "summary"},
	}
	for _, title := range titles {
		input.Analysis.Candidates = append(input.Analysis.Candidates, model.TaskCandidate{
			Title:          title,
			Priority:       model.PriorityNormal,
			Confidence:     1,
			ExtractionType: model.ExtractionExplicit,
		})
	}
	return input
}

func TestCreateAndDuplicateGuard(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	set, err := uc.Create(ctx, createInput("file-1", "Task A", "Task B"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if set.Status != model.SetStatusPending {
		t.Fatalf("status = %s, want pending", set.Status)
	}

	ingested, err := uc.IsFileAlreadyIngested(ctx, "file-1")
	if err != nil || !ingested {
		t.Fatalf("IsFileAlreadyIngested = %v, %v; want true, nil", ingested, err)
	}

	if _, err := uc.Create(ctx, createInput("file-1", "Task A")); !errors.Is(err, taskset.ErrDuplicateIngestion) {
		t.Fatalf("second create: got %v, want ErrDuplicateIngestion", err)
	}
}

func TestCreateEmptyAnalysisCompletesImmediately(t *testing.T) {
	uc, _ := newUseCase(t)

	set, err := uc.Create(context.Background(), createInput("file-empty"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if set.Status != model.SetStatusCompleted {
		t.Fatalf("status = %s, want completed for a zero-candidate set", set.Status)
	}

	// The completed set still blocks re-ingestion.
	ingested, _ := uc.IsFileAlreadyIngested(context.Background(), "file-empty")
	if !ingested {
		t.Fatal("zero-candidate set does not guard against re-ingestion")
	}
}

func TestResolveCreatedAndCompletionMonotonicity(t *testing.T) {
	uc, tracker := newUseCase(t)
	ctx := context.Background()

	set, _ := uc.Create(ctx, createInput("file-1", "Task A", "Task B"))

	out, err := uc.ResolveCreated(ctx, set.ID, 0)
	if err != nil {
		t.Fatalf("resolve 0: %v", err)
	}
	if out.Candidate.Resolution != model.ResolutionCreated {
		t.Fatalf("resolution = %s", out.Candidate.Resolution)
	}
	if out.Candidate.ExternalTaskID == "" || out.Candidate.ExternalTaskURL == "" {
		t.Fatal("external task identity not recorded")
	}
	if out.Set.Status != model.SetStatusPending {
		t.Fatalf("status = %s after partial resolution, want pending", out.Set.Status)
	}

	out, err = uc.ResolveDismissed(ctx, set.ID, 1)
	if err != nil {
		t.Fatalf("dismiss 1: %v", err)
	}
	if out.Set.Status != model.SetStatusCompleted {
		t.Fatalf("status = %s after last resolution, want completed", out.Set.Status)
	}

	if len(tracker.created) != 1 {
		t.Fatalf("tracker received %d creates, want 1", len(tracker.created))
	}
}

func TestTerminalReResolutionIsAnError(t *testing.T) {
	uc, tracker := newUseCase(t)
	ctx := context.Background()

	set, _ := uc.Create(ctx, createInput("file-1", "Task A"))
	if _, err := uc.ResolveCreated(ctx, set.ID, 0); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	if _, err := uc.ResolveCreated(ctx, set.ID, 0); !errors.Is(err, taskset.ErrCandidateResolved) {
		t.Fatalf("re-approve: got %v, want ErrCandidateResolved", err)
	}
	if _, err := uc.ResolveDismissed(ctx, set.ID, 0); !errors.Is(err, taskset.ErrCandidateResolved) {
		t.Fatalf("dismiss after approve: got %v, want ErrCandidateResolved", err)
	}
	// No second tracker write happened.
	if len(tracker.created) != 1 {
		t.Fatalf("tracker received %d creates, want 1", len(tracker.created))
	}
}

func TestResolveIndexOutOfRange(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	set, _ := uc.Create(ctx, createInput("file-1", "Task A"))
	if _, err := uc.ResolveCreated(ctx, set.ID, 5); !errors.Is(err, taskset.ErrIndexOutOfRange) {
		t.Fatalf("got %v, want ErrIndexOutOfRange", err)
	}
	if _, err := uc.ResolveDismissed(ctx, set.ID, -1); !errors.Is(err, taskset.ErrIndexOutOfRange) {
		t.Fatalf("got %v, want ErrIndexOutOfRange", err)
	}
}

func TestResolveUnknownSet(t *testing.T) {
	uc, _ := newUseCase(t)
	if _, err := uc.ResolveCreated(context.Background(), "missing", 0); !errors.Is(err, taskset.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestEditCandidate(t *testing.T) {
	uc, tracker := newUseCase(t)
	ctx := context.Background()

	set, _ := uc.Create(ctx, createInput("file-1", "Task A"))

	title := "Renamed task"
	due := "2026-09-15"
	priority := model.PriorityHigh
	updated, err := uc.EditCandidate(ctx, set.ID, 0, taskset.CandidateEdit{
		Title:        &title,
		SuggestedDue: &due,
		Priority:     &priority,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	got := updated.Candidates[0]
	if got.Title != title || got.SuggestedDue != due || got.Priority != priority {
		t.Fatalf("edit not applied: %+v", got)
	}

	// Approval uses the edited fields.
	if _, err := uc.ResolveCreated(ctx, set.ID, 0); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tracker.created[0].Title != title || tracker.created[0].Due != due {
		t.Fatalf("tracker saw %+v, want edited values", tracker.created[0])
	}
}

func TestEditValidation(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	set, _ := uc.Create(ctx, createInput("file-1", "Task A"))

	empty := "  "
	if _, err := uc.EditCandidate(ctx, set.ID, 0, taskset.CandidateEdit{Title: &empty}); !errors.Is(err, taskset.ErrInvalidEdit) {
		t.Fatalf("empty title: got %v, want ErrInvalidEdit", err)
	}

	relative := "next friday"
	if _, err := uc.EditCandidate(ctx, set.ID, 0, taskset.CandidateEdit{SuggestedDue: &relative}); !errors.Is(err, taskset.ErrInvalidEdit) {
		t.Fatalf("relative due: got %v, want ErrInvalidEdit", err)
	}

	bad := model.Priority("someday")
	if _, err := uc.EditCandidate(ctx, set.ID, 0, taskset.CandidateEdit{Priority: &bad}); !errors.Is(err, taskset.ErrInvalidEdit) {
		t.Fatalf("bad priority: got %v, want ErrInvalidEdit", err)
	}
}

func TestEditTerminalCandidateRejected(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	set, _ := uc.Create(ctx, createInput("file-1", "Task A"))
	if _, err := uc.ResolveDismissed(ctx, set.ID, 0); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	title := "Too late"
	if _, err := uc.EditCandidate(ctx, set.ID, 0, taskset.CandidateEdit{Title: &title}); !errors.Is(err, taskset.ErrCandidateResolved) {
		t.Fatalf("got %v, want ErrCandidateResolved", err)
	}
}

func TestResolveAllPartialFailure(t *testing.T) {
	uc, tracker := newUseCase(t)
	ctx := context.Background()
	tracker.failOn["Task B"] = true

	set, _ := uc.Create(ctx, createInput("file-1", "Task A", "Task B", "Task C"))

	out, err := uc.ResolveAll(ctx, set.ID)
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}

	if len(out.Created) != 2 {
		t.Fatalf("created = %v, want indices 0 and 2", out.Created)
	}
	if len(out.Failed) != 1 || out.Failed[0].Index != 1 {
		t.Fatalf("failed = %+v, want index 1 only", out.Failed)
	}
	// The failed candidate stays pending and the set stays open.
	if out.Set.Candidates[1].Resolution != model.ResolutionPending {
		t.Fatalf("failed candidate resolution = %s, want pending", out.Set.Candidates[1].Resolution)
	}
	if out.Set.Status != model.SetStatusPending {
		t.Fatalf("status = %s, want pending after partial bulk", out.Set.Status)
	}

	// A retry picks up only the leftover.
	tracker.failOn = map[string]bool{}
	out, err = uc.ResolveAll(ctx, set.ID)
	if err != nil {
		t.Fatalf("second resolve all: %v", err)
	}
	if len(out.Created) != 1 || out.Created[0] != 1 {
		t.Fatalf("second pass created = %v, want [1]", out.Created)
	}
	if out.Set.Status != model.SetStatusCompleted {
		t.Fatalf("status = %s, want completed", out.Set.Status)
	}
}

func TestResolveAllSkipsAlreadyResolved(t *testing.T) {
	uc, tracker := newUseCase(t)
	ctx := context.Background()

	set, _ := uc.Create(ctx, createInput("file-1", "Task A", "Task B"))
	if _, err := uc.ResolveDismissed(ctx, set.ID, 0); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	out, err := uc.ResolveAll(ctx, set.ID)
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}
	if len(out.Created) != 1 || out.Created[0] != 1 {
		t.Fatalf("created = %v, want [1]", out.Created)
	}
	if len(tracker.created) != 1 {
		t.Fatalf("tracker received %d creates, want 1", len(tracker.created))
	}
	if out.Set.Status != model.SetStatusCompleted {
		t.Fatalf("status = %s, want completed", out.Set.Status)
	}
}
