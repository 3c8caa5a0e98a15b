package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flarexio/agrimithra"

	mcpE "github.com/flarexio/agrimithra/mcp"
)

const Version = "1.0.0"

func AddRouters(r *gin.Engine, endpoints agrimithra.EndpointSet) {
	r.GET("/", HealthHandler(Version))

	api := r.Group("/api")
	{
		ask := AskHandler(endpoints.Ask)
		api.POST("/rag-chatbot", ask)
		api.POST("/chat", ask)

		api.GET("/search", SearchHandler(endpoints.Retrieve))
		api.GET("/categorize", CategorizeHandler(endpoints.Categorize))
		api.POST("/compose", ComposeHandler(endpoints.Compose))
		api.GET("/categories", CategoriesHandler(endpoints.Categories))
		api.POST("/documents", AddDocumentHandler(endpoints.AddDocument))
		api.GET("/guide", GuideHandler(endpoints.Guide))
		api.GET("/status", StatusHandler(endpoints.Status))
	}
}

func AddStreamableRouters(r *gin.Engine, endpoints map[mcp.MCPMethod]mcpE.MCPEndpoint) {
	mcp := r.Group("/mcp")
	{
		mcp.POST("/", MCPStreamableHandler(endpoints))
	}
}
