package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateStockRequest leaves range checks to the service so a negative level and a
// missing one get different messages.
type UpdateStockRequest struct {
	StockLevel *int `json:"stock_level"`
}

// ListProductStock returns every product with its stock level
func (h *Handler) ListProductStock(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProductStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_name": product.Name, "stock_level": product.StockLevel})
}

// UpdateProductStock overwrites one product's stock level
func (h *Handler) UpdateProductStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	// An unknown product is a 404 whatever the body holds.
	if _, err := h.products.Get(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid request body.", "details": err.Error()})
		return
	}
	if req.StockLevel == nil {
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Stock level field is required in the request."})
		return
	}
	product, err := h.products.UpdateStockLevel(c.Request.Context(), id, *req.StockLevel)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Product stock level updated successfully!", "stock_level": product.StockLevel})
}

// RestockProducts resets every product below the restock threshold to the target level
func (h *Handler) RestockProducts(c *gin.Context) {
	n, err := h.products.RestockSweep(c.Request.Context(), h.restock.Threshold, h.restock.Target)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusOK, gin.H{"Message": "No products below restock threshold.", "restocked": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Products restocked successfully.", "restocked": n})
}
