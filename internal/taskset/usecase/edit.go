package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/internal/taskset/repository"
	"meeting-task-automation/pkg/datemath"
)

func (uc *implUseCase) EditCandidate(ctx context.Context, setID string, index int, edit taskset.CandidateEdit) (model.PendingTaskSet, error) {
	if err := validateEdit(edit); err != nil {
		return model.PendingTaskSet{}, err
	}

	updated, err := uc.repo.Update(ctx, setID, func(set *model.PendingTaskSet) error {
		if index < 0 || index >= len(set.Candidates) {
			return taskset.ErrIndexOutOfRange
		}
		c := &set.Candidates[index]
		if c.Resolution.Terminal() {
			return taskset.ErrCandidateResolved
		}

		if edit.Title != nil {
			c.Title = strings.TrimSpace(*edit.Title)
		}
		if edit.Description != nil {
			c.Description = *edit.Description
		}
		if edit.SuggestedAssignee != nil {
			c.SuggestedAssignee = strings.TrimSpace(*edit.SuggestedAssignee)
		}
		if edit.SuggestedDue != nil {
			c.SuggestedDue = strings.TrimSpace(*edit.SuggestedDue)
		}
		if edit.Priority != nil {
			c.Priority = *edit.Priority
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return model.PendingTaskSet{}, taskset.ErrNotFound
	}
	if err != nil {
		return model.PendingTaskSet{}, err
	}

	uc.l.Infof(ctx, "candidate edited: set=%s index=%d", setID, index)
	return updated, nil
}

func validateEdit(edit taskset.CandidateEdit) error {
	if edit.Title != nil && strings.TrimSpace(*edit.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", taskset.ErrInvalidEdit)
	}
	if edit.Priority != nil && !edit.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", taskset.ErrInvalidEdit, *edit.Priority)
	}
	if edit.SuggestedDue != nil {
		due := strings.TrimSpace(*edit.SuggestedDue)
		if due != "" && !datemath.IsAbsolute(due) {
			return fmt.Errorf("%w: due date must be YYYY-MM-DD", taskset.ErrInvalidEdit)
		}
	}
	return nil
}
