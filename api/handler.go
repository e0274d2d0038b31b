package api

import (
	"context"
	"errors"
	"net/http"

	"api_catalog/internal/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Resetter is implemented by catalogs that can be restored to their seed data.
type Resetter interface {
	Reset(ctx context.Context) error
}

// productsHandler holds the catalog and implements HTTP handlers for product operations.
type productsHandler struct {
	catalog catalog.Catalog
	logger  *zap.Logger
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(c catalog.Catalog, logger *zap.Logger) *productsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productsHandler{
		catalog: c,
		logger:  logger,
	}
}

// handleListProducts handles the GET /products endpoint.
func (h *productsHandler) handleListProducts(ctx *gin.Context) {
	products, err := h.catalog.List(ctx.Request.Context())
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": products, "metadata": catalog.Summarize(products)})
}

// handleGetProduct handles the GET /products/:id endpoint.
func (h *productsHandler) handleGetProduct(ctx *gin.Context) {
	product, err := h.catalog.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// handleCreateProduct handles the POST /products endpoint.
func (h *productsHandler) handleCreateProduct(ctx *gin.Context) {
	var req catalog.ProductInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.catalog.Create(ctx.Request.Context(), req)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	h.logger.Info("product created", zap.String("product_id", product.ID))
	ctx.JSON(http.StatusCreated, product)
}

// handleUpdateProduct handles the PATCH /products/:id endpoint.
func (h *productsHandler) handleUpdateProduct(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req catalog.ProductPatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.String("product_id", productID), zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.catalog.Update(ctx.Request.Context(), productID, req)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	h.logger.Info("product updated", zap.String("product_id", product.ID))
	ctx.JSON(http.StatusOK, product)
}

func (h *productsHandler) handleReset(r Resetter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := r.Reset(ctx.Request.Context()); err != nil {
			h.writeError(ctx, err)
			return
		}
		h.logger.Info("catalog reset to seed data")
		ctx.JSON(http.StatusOK, gin.H{"message": "catalog reset to seed data"})
	}
}

// writeError maps catalog errors to status codes.
func (h *productsHandler) writeError(ctx *gin.Context, err error) {
	var (
		verr *catalog.ValidationError
		nerr *catalog.NotFoundError
		cerr *catalog.ConflictError
	)

	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "field": verr.Field, "detail": verr.Message})
	case errors.As(err, &nerr):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found", "product_id": nerr.ID})
	case errors.Is(err, catalog.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.As(err, &cerr):
		ctx.JSON(http.StatusConflict, gin.H{"error": "product id already exists", "product_id": cerr.ID})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("request abandoned", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		h.logger.Error("catalog operation failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
