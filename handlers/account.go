package handlers

import (
	"net/http"

	"ecommerce-api/middleware"
	"ecommerce-api/service"

	"github.com/gin-gonic/gin"
)

type CreateAccountRequest struct {
	Username   string `json:"username" binding:"required,notblank,max=50"`
	Password   string `json:"password" binding:"required,min=6"`
	CustomerID uint   `json:"customer_id" binding:"required"`
}

type UpdateAccountRequest struct {
	Username *string `json:"username" binding:"omitempty,max=50"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateAccount registers a login for a customer
func (h *Handler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	acc, err := h.accounts.Create(c.Request.Context(), req.Username, req.Password, req.CustomerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"Message": "Customer account created successfully!", "id": acc.ID})
}

func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) GetAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	acc, err := h.accounts.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// UpdateAccount changes username and/or password
func (h *Handler) UpdateAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := service.AccountPatch{Username: req.Username, Password: req.Password}
	if _, err := h.accounts.Update(c.Request.Context(), id, patch); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Customer account details have been updated!"})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": "Customer account successfully deleted!"})
}

// Login authenticates an account and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	acc, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	token, err := h.tokens.GenerateToken(acc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Message": "Login successful",
		"token":   token,
		"account": acc,
	})
}

// GetProfile returns the authenticated account and its customer
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	acc, err := h.accounts.Get(ctx, middleware.GetAccountID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	customer, err := h.customers.Get(ctx, acc.CustomerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": acc, "customer": customer})
}
