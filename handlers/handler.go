package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ecommerce-api/middleware"
	"ecommerce-api/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RestockPolicy configures the restock sweep: stock below Threshold is reset to Target.
type RestockPolicy struct {
	Threshold int
	Target    int
}

// Handler serves every HTTP route. It holds no state besides its collaborators.
type Handler struct {
	customers *service.CustomerService
	accounts  *service.AccountService
	products  *service.ProductService
	orders    *service.OrderService
	tokens    *middleware.Tokens
	restock   RestockPolicy
	log       *zap.Logger
}

func New(db *gorm.DB, tokens *middleware.Tokens, restock RestockPolicy, log *zap.Logger) *Handler {
	return &Handler{
		customers: service.NewCustomerService(db, log),
		accounts:  service.NewAccountService(db, log),
		products:  service.NewProductService(db, log),
		orders:    service.NewOrderService(db, log),
		tokens:    tokens,
		restock:   restock,
		log:       log,
	}
}

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return v.RegisterValidation("notblank", validators.NotBlank)
}

// parseID reads a numeric path parameter, answering 400 itself when it is not one.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid " + name + ": " + c.Param(name)})
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds and validates the body, answering 400 itself on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Error": err.Error()})
		return false
	}
	return true
}

// respondError maps service errors onto status codes. Unexpected errors are logged
// and reported without their detail.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"Error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"Error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"Error": err.Error()})
	default:
		_ = c.Error(err)
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
	}
}
