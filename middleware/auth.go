package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ecommerce-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxAccountID  = "accountID"
	ctxCustomerID = "customerID"
	ctxUsername   = "username"
)

type Claims struct {
	AccountID  uint   `json:"account_id"`
	CustomerID uint   `json:"customer_id"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies account JWTs.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken creates a signed JWT for an account
func (t *Tokens) GenerateToken(acc *models.CustomerAccount) (string, error) {
	now := t.now()
	claims := Claims{
		AccountID:  acc.ID,
		CustomerID: acc.CustomerID,
		Username:   acc.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ParseToken verifies signature, algorithm and expiry.
func (t *Tokens) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AuthRequired validates the JWT and injects the account claims into context
func AuthRequired(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Error": "Authorization header required (Bearer <token>)"})
			return
		}
		claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Error": "Invalid or expired token"})
			return
		}
		c.Set(ctxAccountID, claims.AccountID)
		c.Set(ctxCustomerID, claims.CustomerID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// GetAccountID extracts the caller's account ID from context
func GetAccountID(c *gin.Context) uint {
	return c.GetUint(ctxAccountID)
}

// GetCustomerID extracts the caller's customer ID from context
func GetCustomerID(c *gin.Context) uint {
	return c.GetUint(ctxCustomerID)
}
