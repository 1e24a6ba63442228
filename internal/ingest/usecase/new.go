package usecase

import (
	"meeting-task-automation/internal/ingest"
	"meeting-task-automation/internal/taskset"
	pkgLog "meeting-task-automation/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	source   ingest.FileSource
	analyzer ingest.Analyzer
	sets     taskset.UseCase
	notifier ingest.Notifier // nil disables notifications
}

// New creates a new ingest UseCase instance.
func New(
	l pkgLog.Logger,
	source ingest.FileSource,
	analyzer ingest.Analyzer,
	sets taskset.UseCase,
	notifier ingest.Notifier,
) ingest.UseCase {
	return &implUseCase{
		l:        l,
		source:   source,
		analyzer: analyzer,
		sets:     sets,
		notifier: notifier,
	}
}
