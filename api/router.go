package api

import (
	"net/http"
	"time"

	"api_catalog/internal/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InitRoutes registers the product endpoints on the given Gin engine.
// The reset endpoint is only bound when the catalog implements Resetter.
func InitRoutes(e *gin.Engine, c catalog.Catalog, logger *zap.Logger) {
	h := NewProductsHandler(c, logger)

	e.GET("/products", h.handleListProducts)
	e.GET("/products/:id", h.handleGetProduct)
	e.POST("/products", h.handleCreateProduct)
	e.PATCH("/products/:id", h.handleUpdateProduct)

	if r, ok := c.(Resetter); ok {
		e.POST("/admin/reset", h.handleReset(r))
	}

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}

// NewRouter returns an engine with recovery, request logging and every route.
func NewRouter(c catalog.Catalog, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := gin.New()
	e.Use(gin.Recovery(), RequestLogger(logger))
	InitRoutes(e, c, logger)
	return e
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
