package repository

import (
	"context"
	"errors"

	"meeting-task-automation/internal/model"
)

// Store errors shared by all backends.
var (
	ErrNotFound      = errors.New("task set not found in store")
	ErrAlreadyExists = errors.New("task set already exists")
)

// ListOptions filters set listings. Results are ordered by creation time,
// newest first.
type ListOptions struct {
	Status model.SetStatus
	Limit  int
}

// Repository is the persistence interface for pending task sets. Update is
// the only mutation primitive: the backend loads the current document,
// applies mutate, and commits the whole document atomically. A mutate error
// aborts the commit and is returned unchanged.
type Repository interface {
	Create(ctx context.Context, set model.PendingTaskSet) error
	Get(ctx context.Context, id string) (model.PendingTaskSet, error)
	FindBySourceFile(ctx context.Context, fileID string) (model.PendingTaskSet, error)
	List(ctx context.Context, opt ListOptions) ([]model.PendingTaskSet, error)
	Update(ctx context.Context, id string, mutate func(*model.PendingTaskSet) error) (model.PendingTaskSet, error)
}
