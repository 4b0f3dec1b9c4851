package handlers

import (
	"net/http"

	"ecommerce-api/models"
	"ecommerce-api/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type PlaceOrderRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	Items      []uint `json:"items" binding:"required,min=1,dive,gt=0"`
}

type UpdateOrderRequest struct {
	CustomerID      *uint   `json:"customer_id" binding:"omitempty,gt=0"`
	Status          *string `json:"status" binding:"omitempty,max=50"`
	ShipmentDetails *string `json:"shipment_details" binding:"omitempty,max=255"`
}

type orderResponse struct {
	ID                   uint                        `json:"id"`
	CustomerID           uint                        `json:"customer_id"`
	Items                []productResponse           `json:"items"`
	OrderDate            string                      `json:"order_date"`
	ExpectedDeliveryDate string                      `json:"expected_delivery_date"`
	ShipmentDetails      string                      `json:"shipment_details"`
	Status               models.OrderStatus          `json:"status"`
	TotalPrice           float64                     `json:"total_price"`
	StatusHistory        []models.OrderStatusHistory `json:"status_history,omitempty"`
}

func toOrderResponse(o models.Order) orderResponse {
	items := make([]productResponse, 0, len(o.Products))
	for _, p := range o.Products {
		items = append(items, toProductResponse(p))
	}
	return orderResponse{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		Items:                items,
		OrderDate:            o.OrderDate.Format(dateLayout),
		ExpectedDeliveryDate: o.ExpectedDeliveryDate.Format(dateLayout),
		ShipmentDetails:      o.ShipmentDetails,
		Status:               o.Status,
		TotalPrice:           o.TotalPrice,
		StatusHistory:        o.History,
	}
}

func toOrderResponses(orders []models.Order) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

// PlaceOrder creates an order from a list of product ids
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orders.Create(c.Request.Context(), req.CustomerID, req.Items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"Message": "New order placed!",
		"id":      order.ID,
		"order":   toOrderResponse(*order),
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// GetOrderItems returns the order with its items reduced to id and name
func (h *Handler) GetOrderItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	items := make([]gin.H, 0, len(order.Products))
	for _, p := range order.Products {
		items = append(items, gin.H{"id": p.ID, "product_name": p.Name})
	}
	resp := toOrderResponse(*order)
	c.JSON(http.StatusOK, gin.H{
		"id":                     resp.ID,
		"customer_id":            resp.CustomerID,
		"items":                  items,
		"order_date":             resp.OrderDate,
		"expected_delivery_date": resp.ExpectedDeliveryDate,
		"shipment_details":       resp.ShipmentDetails,
		"status":                 resp.Status,
		"total_price":            resp.TotalPrice,
	})
}

// UpdateOrder patches customer, status and shipment details
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := service.OrderPatch{
		CustomerID:      req.CustomerID,
		Status:          req.Status,
		ShipmentDetails: req.ShipmentDetails,
	}
	if _, err := h.orders.Update(c.Request.Context(), id, patch); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Order details have been updated!"})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Order successfully deleted!"})
}

// CancelOrder cancels an order that has not shipped or completed
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.orders.Cancel(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Order canceled successfully!"})
}
