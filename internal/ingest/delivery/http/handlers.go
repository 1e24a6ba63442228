package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"meeting-task-automation/internal/ingest"
	"meeting-task-automation/pkg/response"
)

// ProcessFile godoc
// @Summary     Ingest one transcript file
// @Description Fetches, analyzes, and persists one transcript file as a pending task set.
// @Tags        Ingest
// @Accept      json
// @Produce     json
// @Param       id path string true "Source file ID"
// @Success     200 {object} processResp
// @Failure     409 {object} response.Resp "Conflict - file already ingested"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/ingest/files/{id} [POST]
func (h *handler) ProcessFile(c *gin.Context) {
	ctx := c.Request.Context()

	set, err := h.uc.ProcessFile(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessFile: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newProcessResp(set))
}

// ScanFolder godoc
// @Summary     Scan a folder for new transcripts
// @Description Ingests every not-yet-ingested file in the folder. Per-file failures are reported, not fatal.
// @Tags        Ingest
// @Accept      json
// @Produce     json
// @Param       id path string true "Source folder ID"
// @Success     200 {object} scanResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/ingest/folders/{id}/scan [POST]
func (h *handler) ScanFolder(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ScanFolder(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.ScanFolder: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newScanResp(output))
}

// respondError translates ingestion errors into HTTP responses.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrAlreadyIngested):
		response.Conflict(c, err)
	case errors.Is(err, ingest.ErrUnsupportedFile):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
