package taskset

import "errors"

// Domain-specific errors for the taskset package.
var (
	ErrNotFound           = errors.New("task set not found")
	ErrDuplicateIngestion = errors.New("source file already ingested")
	ErrCandidateResolved  = errors.New("candidate already resolved")
	ErrIndexOutOfRange    = errors.New("candidate index out of range")
	ErrInvalidEdit        = errors.New("invalid candidate edit")
	ErrTrackerCreate      = errors.New("failed to create task in tracker")
)
