package routes

import (
	"ecommerce-api/handlers"
	"ecommerce-api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *middleware.Tokens) {
	r.GET("/", handlers.Home)
	r.GET("/health", handlers.Health)
	r.GET("/order_statuses", handlers.GetOrderStatuses)

	// ── Customers ──────────────────────────────────────────────────
	customers := r.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
		customers.GET("/order_history/:customer_id", h.GetOrderHistory)
	}

	// ── Customer accounts ──────────────────────────────────────────
	accounts := r.Group("/customer_accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.POST("/login", h.Login)
		accounts.GET("/me", middleware.AuthRequired(tokens), h.GetProfile)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.PUT("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}

	// ── Products & stock ───────────────────────────────────────────
	products := r.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/stock", h.ListProductStock)
		products.GET("/stock/:id", h.GetProductStock)
		products.PUT("/stock/:id", h.UpdateProductStock)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
	r.GET("/restock_products", h.RestockProducts)

	// ── Orders ─────────────────────────────────────────────────────
	orders := r.Group("/orders")
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.PUT("/cancel/:id", h.CancelOrder)
	}
	r.GET("/order_items/:id", h.GetOrderItems)
}

// NewRouter builds the engine with the standard middleware chain and every route.
func NewRouter(h *handlers.Handler, tokens *middleware.Tokens, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS(),
	)
	SetupRoutes(r, h, tokens)
	return r
}
