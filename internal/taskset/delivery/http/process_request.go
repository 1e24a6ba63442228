package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// processListReq binds and validates the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processResolveReq reads the set ID and candidate index from the URI.
func (h *handler) processResolveReq(c *gin.Context) (resolveReq, error) {
	req := resolveReq{SetID: c.Param("id")}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return req, fmt.Errorf("invalid candidate index %q", c.Param("index"))
	}
	req.Index = index
	return req, nil
}

// processEditReq binds the edit request body plus URI params.
func (h *handler) processEditReq(c *gin.Context) (editReq, error) {
	var req editReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}

	req.SetID = c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return req, fmt.Errorf("invalid candidate index %q", c.Param("index"))
	}
	req.Index = index
	return req, nil
}
