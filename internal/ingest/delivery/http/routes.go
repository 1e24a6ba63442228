package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	ing := rg.Group("/ingest")
	{
		ing.POST("/files/:id", h.ProcessFile)
		ing.POST("/folders/:id/scan", h.ScanFolder)
	}
}
