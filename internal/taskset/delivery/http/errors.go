package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/pkg/response"
)

// respondError translates domain errors into HTTP responses. Unknown errors
// are hidden behind a generic 500.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, taskset.ErrNotFound):
		response.NotFound(c, err)
	case errors.Is(err, taskset.ErrCandidateResolved),
		errors.Is(err, taskset.ErrDuplicateIngestion):
		response.Conflict(c, err)
	case errors.Is(err, taskset.ErrIndexOutOfRange),
		errors.Is(err, taskset.ErrInvalidEdit):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
