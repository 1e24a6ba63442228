package taskset

import (
	"context"

	"meeting-task-automation/internal/model"
)

// UseCase defines the business logic interface for the pending-task-set
// lifecycle: one durable set per ingested file, candidates resolved one at a
// time or in bulk through human approval.
type UseCase interface {
	// Create persists a new pending set from an analysis result. It fails
	// with ErrDuplicateIngestion when the source file already has a set.
	Create(ctx context.Context, input CreateInput) (model.PendingTaskSet, error)

	// Get returns one set by ID.
	Get(ctx context.Context, id string) (model.PendingTaskSet, error)

	// List returns sets, most recent first.
	List(ctx context.Context, input ListInput) ([]model.PendingTaskSet, error)

	// IsFileAlreadyIngested reports whether a set already exists for the
	// source file. This is the sole duplicate-ingestion guard.
	IsFileAlreadyIngested(ctx context.Context, fileID string) (bool, error)

	// ResolveCreated approves one pending candidate: the task is created in
	// the external tracker and the candidate becomes terminal "created".
	ResolveCreated(ctx context.Context, setID string, index int) (ResolveOutput, error)

	// ResolveDismissed rejects one pending candidate.
	ResolveDismissed(ctx context.Context, setID string, index int) (ResolveOutput, error)

	// EditCandidate updates the editable fields of a pending candidate.
	EditCandidate(ctx context.Context, setID string, index int, edit CandidateEdit) (model.PendingTaskSet, error)

	// ResolveAll approves every remaining pending candidate. Failures on
	// individual candidates are reported, not rolled back.
	ResolveAll(ctx context.Context, setID string) (ResolveAllOutput, error)
}

// TaskTracker creates tasks in the external tracker when a candidate is
// approved.
type TaskTracker interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (ExternalTask, error)
}
