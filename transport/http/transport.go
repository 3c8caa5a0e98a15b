package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/endpoint"

	"github.com/flarexio/agrimithra"
)

func AskHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req agrimithra.AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			c.String(http.StatusExpectationFailed, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func SearchHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req agrimithra.RetrieveRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			c.String(http.StatusExpectationFailed, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func CategorizeHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("query")

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, query)
		if err != nil {
			c.String(http.StatusExpectationFailed, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"query":    query,
			"category": resp,
		})
	}
}

func ComposeHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req agrimithra.ComposeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			c.String(http.StatusExpectationFailed, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"query":  req.Query,
			"answer": resp,
		})
	}
}

func CategoriesHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			c.String(http.StatusExpectationFailed, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"categories": resp,
		})
	}
}

// AddDocumentHandler always answers with the add status, so that clients
// can tell a partial success from a failure.
func AddDocumentHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc agrimithra.Document
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, doc)
		if err != nil {
			code := http.StatusExpectationFailed
			switch {
			case errors.Is(err, agrimithra.ErrDocumentExists):
				code = http.StatusConflict

			case errors.Is(err, agrimithra.ErrInvalidDocument):
				code = http.StatusBadRequest
			}

			c.Error(err)
			c.AbortWithStatusJSON(code, &resp)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func GuideHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		label := c.Query("label")
		if label == "" {
			err := errors.New("label is required")
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, label)
		if err != nil {
			code := http.StatusExpectationFailed
			if errors.Is(err, agrimithra.ErrGuideNotFound) {
				code = http.StatusNotFound
			}

			c.String(code, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		guide, _ := resp.(string)

		c.JSON(http.StatusOK, gin.H{
			"label": label,
			"plant": agrimithra.ParseLabel(label),
			"guide": guide,
		})
	}
}

func StatusHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			c.String(http.StatusExpectationFailed, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func HealthHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "online",
			"service": "AgriMithra RAG Service",
			"version": version,
		})
	}
}
