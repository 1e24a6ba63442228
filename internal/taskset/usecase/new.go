package usecase

import (
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/internal/taskset/repository"
	pkgLog "meeting-task-automation/pkg/log"
)

type implUseCase struct {
	l       pkgLog.Logger
	repo    repository.Repository
	tracker taskset.TaskTracker
}

// New creates a new taskset UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository, tracker taskset.TaskTracker) taskset.UseCase {
	return &implUseCase{
		l:       l,
		repo:    repo,
		tracker: tracker,
	}
}
