package http

import (
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/pkg/log"
)

type handler struct {
	l  log.Logger
	uc taskset.UseCase
}

// New creates a new HTTP handler for the taskset domain.
func New(l log.Logger, uc taskset.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
