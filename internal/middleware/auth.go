package middleware

import (
	"context"
	"net/http"
	"strings"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionResolver turns a bearer token into the signed-in user.
type SessionResolver interface {
	GetCurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// JWTAuth requires a valid session token and stores the user, its ID, role
// and the raw token in the gin context.
func JWTAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		token := strings.TrimSpace(parts[1])
		user, err := sessions.GetCurrentUser(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired session")
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))
		c.Set("token", token)
		c.Next()
	}
}

// CurrentUser returns the user stored by JWTAuth.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
