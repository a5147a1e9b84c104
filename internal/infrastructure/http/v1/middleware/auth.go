package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	appctx "stockyard/internal/core/context"
)

// JWTValidator validates an access token and returns the user it identifies.
type JWTValidator interface {
	ValidateToken(token string) (*appctx.UserContext, error)
}

// Auth requires a valid Bearer token and stores the user in the request context.
func Auth(validator JWTValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, validator)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", user.UserID)
		c.Set("permissions", user.Permissions)

		c.Next()
	}
}

// OptionalAuth populates the user context when a valid token is present but
// lets anonymous requests through.
func OptionalAuth(validator JWTValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := authenticate(c, validator); err == nil {
			ctx := appctx.WithUser(c.Request.Context(), user)
			c.Request = c.Request.WithContext(ctx)
			c.Set("user_id", user.UserID)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, validator JWTValidator) (*appctx.UserContext, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, apperror.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperror.NewUnauthorized("invalid authorization header format")
	}

	user, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, err
	}
	return user, nil
}
