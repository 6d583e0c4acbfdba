// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/baghaus/marketplace-backend/internal/i18n"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
			c.Abort()
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		isAdmin, exists := c.Get("is_admin")
		if !exists || isAdmin != true {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAdminAccessDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the user context when a valid token is present but never
// rejects the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}
