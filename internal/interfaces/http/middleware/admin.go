package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medistore/backend/internal/domain/identity"
	"github.com/medistore/backend/internal/interfaces/http/dto"
)

// RequireAdmin rejects requests whose authenticated role is not admin.
// It must run after JWTAuthMiddleware so the role is present in context.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(string(identity.RoleAdmin))
}

// RequireRole rejects requests whose authenticated role does not match
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
			return
		}

		c.Next()
	}
}
