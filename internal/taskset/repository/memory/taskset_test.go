package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset/repository"
	"meeting-task-automation/internal/taskset/repository/memory"
)

func sampleSet(id, fileID string, candidates int) model.PendingTaskSet {
	set := model.PendingTaskSet{
		ID:           id,
		SourceFileID: fileID,
		Status:       model.SetStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	for i := 0; i < candidates; i++ {
		set.Candidates = append(set.Candidates, model.PendingCandidate{
			TaskCandidate: model.TaskCandidate{Title: "task", Priority: model.PriorityNormal},
			Resolution:    model.ResolutionPending,
		})
	}
	return set
}

func TestCreateGetFind(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if err := store.Create(ctx, sampleSet("set-1", "file-1", 2)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, sampleSet("set-1", "file-2", 1)); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Fatalf("duplicate id: got %v", err)
	}
	if err := store.Create(ctx, sampleSet("set-2", "file-1", 1)); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Fatalf("duplicate file: got %v", err)
	}

	got, err := store.Get(ctx, "set-1")
	if err != nil || got.ID != "set-1" {
		t.Fatalf("get: %v %v", got.ID, err)
	}

	byFile, err := store.FindBySourceFile(ctx, "file-1")
	if err != nil || byFile.ID != "set-1" {
		t.Fatalf("find by file: %v %v", byFile.ID, err)
	}
	if _, err := store.FindBySourceFile(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing file: got %v", err)
	}
}

func TestUpdateMutateErrorAbortsCommit(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	boom := errors.New("boom")

	if err := store.Create(ctx, sampleSet("set-1", "file-1", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := store.Update(ctx, "set-1", func(set *model.PendingTaskSet) error {
		set.Candidates[0].Resolution = model.ResolutionCreated
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want mutate error", err)
	}

	got, _ := store.Get(ctx, "set-1")
	if got.Candidates[0].Resolution != model.ResolutionPending {
		t.Fatal("aborted mutation leaked into the store")
	}
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if err := store.Create(ctx, sampleSet("set-1", "file-1", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _ := store.Get(ctx, "set-1")
	got.Candidates[0].Resolution = model.ResolutionDismissed

	again, _ := store.Get(ctx, "set-1")
	if again.Candidates[0].Resolution != model.ResolutionPending {
		t.Fatal("caller mutation reached the stored copy")
	}
}

func TestConcurrentUpdatesAllSurvive(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	const n = 16

	if err := store.Create(ctx, sampleSet("set-1", "file-1", n)); err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			_, err := store.Update(ctx, "set-1", func(set *model.PendingTaskSet) error {
				set.Candidates[index].Resolution = model.ResolutionCreated
				set.RefreshStatus()
				return nil
			})
			if err != nil {
				t.Errorf("update %d: %v", index, err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := store.Get(ctx, "set-1")
	for i, c := range got.Candidates {
		if c.Resolution != model.ResolutionCreated {
			t.Fatalf("candidate %d resolution = %s, lost update", i, c.Resolution)
		}
	}
	if got.Status != model.SetStatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
}

func TestListFilterAndOrder(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	older := sampleSet("set-1", "file-1", 1)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := sampleSet("set-2", "file-2", 0)
	newer.Status = model.SetStatusCompleted

	if err := store.Create(ctx, older); err != nil {
		t.Fatalf("create older: %v", err)
	}
	if err := store.Create(ctx, newer); err != nil {
		t.Fatalf("create newer: %v", err)
	}

	all, err := store.List(ctx, repository.ListOptions{})
	if err != nil || len(all) != 2 {
		t.Fatalf("list all: %d %v", len(all), err)
	}
	if all[0].ID != "set-2" {
		t.Fatalf("order: first = %s, want newest", all[0].ID)
	}

	pending, _ := store.List(ctx, repository.ListOptions{Status: model.SetStatusPending})
	if len(pending) != 1 || pending[0].ID != "set-1" {
		t.Fatalf("pending filter: %+v", pending)
	}

	limited, _ := store.List(ctx, repository.ListOptions{Limit: 1})
	if len(limited) != 1 {
		t.Fatalf("limit: got %d", len(limited))
	}
}
