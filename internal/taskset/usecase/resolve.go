package usecase

import (
	"context"
	"errors"
	"fmt"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/internal/taskset/repository"
)

func (uc *implUseCase) ResolveCreated(ctx context.Context, setID string, index int) (taskset.ResolveOutput, error) {
	set, err := uc.Get(ctx, setID)
	if err != nil {
		return taskset.ResolveOutput{}, err
	}
	candidate, err := pendingCandidate(set, index)
	if err != nil {
		return taskset.ResolveOutput{}, err
	}

	external, err := uc.tracker.CreateTask(ctx, taskset.CreateTaskInput{
		Title: candidate.Title,
		Notes: trackerNotes(set, candidate),
		Due:   candidate.SuggestedDue,
	})
	if err != nil {
		return taskset.ResolveOutput{}, fmt.Errorf("%w: %v", taskset.ErrTrackerCreate, err)
	}

	updated, err := uc.resolve(ctx, setID, index, func(c *model.PendingCandidate) {
		c.Resolution = model.ResolutionCreated
		c.ExternalTaskID = external.ID
		c.ExternalTaskURL = external.URL
	})
	if err != nil {
		// The tracker write cannot be undone; a concurrent resolution
		// leaves this task orphaned in the tracker.
		uc.l.Warnf(ctx, "resolution lost after tracker create: set=%s index=%d external=%s err=%v",
			setID, index, external.ID, err)
		return taskset.ResolveOutput{}, err
	}

	uc.l.Infof(ctx, "candidate approved: set=%s index=%d external=%s", setID, index, external.ID)
	return taskset.ResolveOutput{Set: updated, Index: index, Candidate: updated.Candidates[index]}, nil
}

func (uc *implUseCase) ResolveDismissed(ctx context.Context, setID string, index int) (taskset.ResolveOutput, error) {
	updated, err := uc.resolve(ctx, setID, index, func(c *model.PendingCandidate) {
		c.Resolution = model.ResolutionDismissed
	})
	if err != nil {
		return taskset.ResolveOutput{}, err
	}

	uc.l.Infof(ctx, "candidate dismissed: set=%s index=%d", setID, index)
	return taskset.ResolveOutput{Set: updated, Index: index, Candidate: updated.Candidates[index]}, nil
}

// resolve commits a terminal transition for one candidate. The pending check
// runs inside the store transaction so a candidate can only ever be resolved
// once, whatever races.
func (uc *implUseCase) resolve(ctx context.Context, setID string, index int, apply func(*model.PendingCandidate)) (model.PendingTaskSet, error) {
	updated, err := uc.repo.Update(ctx, setID, func(set *model.PendingTaskSet) error {
		if index < 0 || index >= len(set.Candidates) {
			return taskset.ErrIndexOutOfRange
		}
		if set.Candidates[index].Resolution.Terminal() {
			return taskset.ErrCandidateResolved
		}
		apply(&set.Candidates[index])
		set.RefreshStatus()
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return model.PendingTaskSet{}, taskset.ErrNotFound
	}
	return updated, err
}

// pendingCandidate bounds-checks and pre-screens a candidate before any
// external side effect. The authoritative check still happens in resolve.
func pendingCandidate(set model.PendingTaskSet, index int) (model.PendingCandidate, error) {
	if index < 0 || index >= len(set.Candidates) {
		return model.PendingCandidate{}, taskset.ErrIndexOutOfRange
	}
	c := set.Candidates[index]
	if c.Resolution.Terminal() {
		return model.PendingCandidate{}, taskset.ErrCandidateResolved
	}
	return c, nil
}

// trackerNotes builds the tracker task description from the candidate and
// its meeting provenance.
func trackerNotes(set model.PendingTaskSet, c model.PendingCandidate) string {
	notes := c.Description
	if c.SourceQuote != "" {
		if notes != "" {
			notes += "\n\n"
		}
		notes += "From: " + c.SourceQuote
	}
	if set.MeetingTitle != "" {
		if notes != "" {
			notes += "\n"
		}
		notes += "Meeting: " + set.MeetingTitle
	}
	return notes
}
