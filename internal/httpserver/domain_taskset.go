package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	ingestHTTP "meeting-task-automation/internal/ingest/delivery/http"
	tasksetHTTP "meeting-task-automation/internal/taskset/delivery/http"
)

// setupTaskSetDomain wires the task-set review API under /api/v1/task-sets.
func (srv HTTPServer) setupTaskSetDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := tasksetHTTP.New(srv.l, srv.taskSetUC)
	tasksetHTTP.RegisterRoutes(api, h)

	srv.l.Infof(ctx, "Task set domain registered")
	return nil
}

// setupIngestDomain wires the manual ingestion triggers under
// /api/v1/ingest. Skipped when Drive is not configured.
func (srv HTTPServer) setupIngestDomain(ctx context.Context, api *gin.RouterGroup) error {
	if srv.ingestUC == nil {
		srv.l.Infof(ctx, "Ingest usecase not configured, skipping ingest routes")
		return nil
	}

	h := ingestHTTP.New(srv.l, srv.ingestUC)
	ingestHTTP.RegisterRoutes(api, h)

	srv.l.Infof(ctx, "Ingest domain registered")
	return nil
}
