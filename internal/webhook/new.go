package webhook

import (
	"meeting-task-automation/internal/ingest"
	pkgLog "meeting-task-automation/pkg/log"
)

type Handler struct {
	ingestUC       ingest.UseCase
	security       *SecurityValidator
	watchedFolders []string
	l              pkgLog.Logger
}

func NewHandler(
	ingestUC ingest.UseCase,
	securityConfig SecurityConfig,
	watchedFolders []string,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		ingestUC:       ingestUC,
		security:       NewSecurityValidator(securityConfig),
		watchedFolders: watchedFolders,
		l:              l,
	}
}
