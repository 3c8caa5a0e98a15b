package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"

	mcpE "github.com/flarexio/agrimithra/mcp"
)

func MCPStreamableHandler(endpoints map[mcp.MCPMethod]mcpE.MCPEndpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mcpE.JSONRPCRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusBadRequest,
				mcpE.ErrorResponse(req.ID, mcp.PARSE_ERROR, err.Error()))
			return
		}

		endpoint, ok := endpoints[req.Method]
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound,
				mcpE.ErrorResponse(req.ID, mcp.METHOD_NOT_FOUND, "method not found"))
			return
		}

		ctx := c.Request.Context()
		resp := endpoint(ctx, req)

		c.JSON(http.StatusOK, &resp)
	}
}
