package middleware

import (
	"net/http"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through when the session role is one of roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in session")
			return
		}

		for _, r := range roles {
			if string(r) == role {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
