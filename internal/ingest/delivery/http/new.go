package http

import (
	"meeting-task-automation/internal/ingest"
	"meeting-task-automation/pkg/log"
)

type handler struct {
	l  log.Logger
	uc ingest.UseCase
}

// New creates a new HTTP handler for manual ingestion triggers.
func New(l log.Logger, uc ingest.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
