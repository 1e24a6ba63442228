package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	sets := rg.Group("/task-sets")
	{
		sets.GET("", h.List)
		sets.GET("/:id", h.Detail)
		sets.POST("/:id/approve-all", h.ApproveAll)
		sets.POST("/:id/candidates/:index/approve", h.Approve)
		sets.POST("/:id/candidates/:index/dismiss", h.Dismiss)
		sets.PATCH("/:id/candidates/:index", h.Edit)
	}
}
