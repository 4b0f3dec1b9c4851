package handlers

import (
	"net/http"

	"ecommerce-api/statemachine"

	"github.com/gin-gonic/gin"
)

func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"Message": "Welcome to the ecommerce app!",
		"health":  "/health",
		"docs":    "/order_statuses",
	})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "E-commerce Order API",
		"version": "1.0.0",
	})
}

// GetOrderStatuses documents the statuses the service writes and the cancel guard
func GetOrderStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"initial_status": "Pending",
		"known_statuses": statemachine.KnownStatuses(),
		"guards":         statemachine.GetAllRules(),
		"description":    "Status is free text; only the guards above are enforced.",
	})
}
