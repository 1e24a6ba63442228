package usecase

import (
	"context"
	"errors"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/internal/taskset/repository"
)

// ResolveAll approves every pending candidate in the set. Candidates are
// pushed to the tracker one at a time; a failed push marks that candidate
// failed in the output and leaves it pending, without touching the others.
// The set sits in processing status for the duration and only completes if
// every candidate ends terminal.
func (uc *implUseCase) ResolveAll(ctx context.Context, setID string) (taskset.ResolveAllOutput, error) {
	set, err := uc.markProcessing(ctx, setID)
	if err != nil {
		return taskset.ResolveAllOutput{}, err
	}

	out := taskset.ResolveAllOutput{Set: set}
	for index := range set.Candidates {
		if set.Candidates[index].Resolution.Terminal() {
			continue
		}

		result, err := uc.ResolveCreated(ctx, setID, index)
		if err != nil {
			// Another actor may have resolved it mid-bulk; that is not a
			// failure of this candidate.
			if errors.Is(err, taskset.ErrCandidateResolved) {
				continue
			}
			out.Failed = append(out.Failed, taskset.ResolveFailure{Index: index, Reason: err.Error()})
			continue
		}
		out.Created = append(out.Created, index)
		out.Set = result.Set
	}

	final, err := uc.settleProcessing(ctx, setID)
	if err != nil {
		return taskset.ResolveAllOutput{}, err
	}
	out.Set = final

	uc.l.Infof(ctx, "bulk approve finished: set=%s created=%d failed=%d status=%s",
		setID, len(out.Created), len(out.Failed), final.Status)
	return out, nil
}

func (uc *implUseCase) markProcessing(ctx context.Context, setID string) (model.PendingTaskSet, error) {
	set, err := uc.repo.Update(ctx, setID, func(set *model.PendingTaskSet) error {
		if set.Status != model.SetStatusCompleted {
			set.Status = model.SetStatusProcessing
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return model.PendingTaskSet{}, taskset.ErrNotFound
	}
	return set, err
}

// settleProcessing returns the set to pending when the bulk pass left
// unresolved candidates behind, or lets RefreshStatus complete it.
func (uc *implUseCase) settleProcessing(ctx context.Context, setID string) (model.PendingTaskSet, error) {
	set, err := uc.repo.Update(ctx, setID, func(set *model.PendingTaskSet) error {
		if set.Status == model.SetStatusProcessing {
			set.Status = model.SetStatusPending
		}
		set.RefreshStatus()
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return model.PendingTaskSet{}, taskset.ErrNotFound
	}
	return set, err
}
