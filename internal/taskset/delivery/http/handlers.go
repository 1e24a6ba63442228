package http

import (
	"github.com/gin-gonic/gin"

	"meeting-task-automation/pkg/response"
)

// List godoc
// @Summary     List pending task sets
// @Description Returns task sets, most recent first, with optional status filter.
// @Tags        TaskSets
// @Accept      json
// @Produce     json
// @Param       status query string false "Filter by status (pending/processing/completed)"
// @Param       limit  query int    false "Max results (default: 20)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/task-sets [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get a task set
// @Description Returns one task set with all its candidates by ID.
// @Tags        TaskSets
// @Accept      json
// @Produce     json
// @Param       id path string true "Task set ID"
// @Success     200 {object} setResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/task-sets/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Get(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Get: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newSetResp(output))
}

// Approve godoc
// @Summary     Approve a candidate
// @Description Creates the candidate in the external tracker and marks it created.
// @Tags        TaskSets
// @Accept      json
// @Produce     json
// @Param       id    path string true "Task set ID"
// @Param       index path int    true "Candidate index (0-based)"
// @Success     200 {object} resolveResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - candidate already resolved"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/task-sets/{id}/candidates/{index}/approve [POST]
func (h *handler) Approve(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processResolveReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ResolveCreated(ctx, req.SetID, req.Index)
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveCreated: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newResolveResp(output))
}

// Dismiss godoc
// @Summary     Dismiss a candidate
// @Description Marks the candidate dismissed without creating a tracker task.
// @Tags        TaskSets
// @Accept      json
// @Produce     json
// @Param       id    path string true "Task set ID"
// @Param       index path int    true "Candidate index (0-based)"
// @Success     200 {object} resolveResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - candidate already resolved"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/task-sets/{id}/candidates/{index}/dismiss [POST]
func (h *handler) Dismiss(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processResolveReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ResolveDismissed(ctx, req.SetID, req.Index)
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveDismissed: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newResolveResp(output))
}

// Edit godoc
// @Summary     Edit a pending candidate
// @Description Partially updates a pending candidate. Resolved candidates cannot be edited.
// @Tags        TaskSets
// @Accept      json
// @Produce     json
// @Param       id    path string  true "Task set ID"
// @Param       index path int     true "Candidate index (0-based)"
// @Param       body  body editReq true "Fields to update"
// @Success     200 {object} setResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - candidate already resolved"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/task-sets/{id}/candidates/{index} [PATCH]
func (h *handler) Edit(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processEditReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.EditCandidate(ctx, req.SetID, req.Index, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.EditCandidate: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newSetResp(output))
}

// ApproveAll godoc
// @Summary     Approve all pending candidates
// @Description Creates every remaining pending candidate in the tracker. Individual failures are reported per candidate.
// @Tags        TaskSets
// @Accept      json
// @Produce     json
// @Param       id path string true "Task set ID"
// @Success     200 {object} bulkResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/task-sets/{id}/approve-all [POST]
func (h *handler) ApproveAll(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ResolveAll(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveAll: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newBulkResp(output))
}
