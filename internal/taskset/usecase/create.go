package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/internal/taskset/repository"
)

func (uc *implUseCase) Create(ctx context.Context, input taskset.CreateInput) (model.PendingTaskSet, error) {
	if input.SourceFileID == "" {
		return model.PendingTaskSet{}, fmt.Errorf("source file ID is required")
	}

	ingested, err := uc.IsFileAlreadyIngested(ctx, input.SourceFileID)
	if err != nil {
		return model.PendingTaskSet{}, err
	}
	if ingested {
		return model.PendingTaskSet{}, taskset.ErrDuplicateIngestion
	}

	set := model.PendingTaskSet{
		ID:             uuid.NewString(),
		SourceFileID:   input.SourceFileID,
		SourceFolderID: input.SourceFolderID,
		MeetingTitle:   input.MeetingTitle,
		Summary:        input.Analysis.Summary,
		Decisions:      input.Analysis.Decisions,
		Candidates:     make([]model.PendingCandidate, 0, len(input.Analysis.Candidates)),
		Status:         model.SetStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	for _, c := range input.Analysis.Candidates {
		set.Candidates = append(set.Candidates, model.PendingCandidate{
			TaskCandidate: c,
			Resolution:    model.ResolutionPending,
		})
	}
	// A file that yielded no candidates still gets a completed set so it is
	// never re-ingested.
	set.RefreshStatus()

	if err := uc.repo.Create(ctx, set); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return model.PendingTaskSet{}, taskset.ErrDuplicateIngestion
		}
		return model.PendingTaskSet{}, err
	}

	uc.l.Infof(ctx, "task set created: id=%s file=%s candidates=%d", set.ID, set.SourceFileID, len(set.Candidates))
	return set, nil
}

func (uc *implUseCase) Get(ctx context.Context, id string) (model.PendingTaskSet, error) {
	set, err := uc.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.PendingTaskSet{}, taskset.ErrNotFound
	}
	return set, err
}

func (uc *implUseCase) List(ctx context.Context, input taskset.ListInput) ([]model.PendingTaskSet, error) {
	return uc.repo.List(ctx, repository.ListOptions{
		Status: input.Status,
		Limit:  input.Limit,
	})
}

func (uc *implUseCase) IsFileAlreadyIngested(ctx context.Context, fileID string) (bool, error) {
	_, err := uc.repo.FindBySourceFile(ctx, fileID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}
