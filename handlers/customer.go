package handlers

import (
	"net/http"

	"ecommerce-api/models"
	"ecommerce-api/service"

	"github.com/gin-gonic/gin"
)

type CreateCustomerRequest struct {
	Name  string `json:"customer_name" binding:"required,notblank,max=75"`
	Email string `json:"email" binding:"omitempty,email,max=150"`
	Phone string `json:"phone" binding:"omitempty,max=16"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"customer_name" binding:"omitempty,max=75"`
	Email *string `json:"email" binding:"omitempty,email,max=150"`
	Phone *string `json:"phone" binding:"omitempty,max=16"`
}

// CreateCustomer adds a customer
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer := models.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := h.customers.Create(c.Request.Context(), &customer); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"Message": "New customer added successfully!", "id": customer.ID})
}

// ListCustomers returns every customer
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer overwrites the supplied fields only
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := service.CustomerPatch{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if _, err := h.customers.Update(c.Request.Context(), id, patch); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Customer details have been updated!"})
}

// DeleteCustomer removes the customer along with its account and orders
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Customer successfully deleted!"})
}

// GetOrderHistory lists a customer's orders; no orders is an empty list, not an error
func (h *Handler) GetOrderHistory(c *gin.Context) {
	id, ok := parseID(c, "customer_id")
	if !ok {
		return
	}
	orders, err := h.orders.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}
