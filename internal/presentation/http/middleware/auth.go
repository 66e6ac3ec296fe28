package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	infraRepo "github.com/quickbill/billing-api/internal/infrastructure/repository"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/response"
	"github.com/quickbill/billing-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. On success the
// account identity is set in the gin context for handlers and threaded into
// the request context so every repository call downstream is account-scoped.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("account_email", claims.Email)

		ctx := infraRepo.WithAccount(c.Request.Context(), claims.AccountID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
