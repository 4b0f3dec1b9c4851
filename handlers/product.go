package handlers

import (
	"net/http"

	"ecommerce-api/models"
	"ecommerce-api/service"

	"github.com/gin-gonic/gin"
)

type CreateProductRequest struct {
	Name       string   `json:"product_name" binding:"required,notblank,max=255"`
	Price      *float64 `json:"price" binding:"required,gte=0"`
	StockLevel int      `json:"stock_level" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name  *string  `json:"product_name" binding:"omitempty,max=255"`
	Price *float64 `json:"price" binding:"omitempty,gte=0"`
}

// productResponse is the catalogue view of a product, without stock.
type productResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"product_name"`
	Price float64 `json:"price"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{ID: p.ID, Name: p.Name, Price: p.Price}
}

// CreateProduct adds a product to the catalogue
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product := models.Product{Name: req.Name, Price: *req.Price, StockLevel: req.StockLevel}
	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"Message": "New product successfully added!", "id": product.ID})
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// UpdateProduct changes name and/or price; past order totals are unaffected
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := service.ProductPatch{Name: req.Name, Price: req.Price}
	if _, err := h.products.Update(c.Request.Context(), id, patch); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Product details have been updated!"})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Product successfully deleted!"})
}
