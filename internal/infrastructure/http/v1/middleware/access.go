package middleware

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	appctx "stockyard/internal/core/context"
	"stockyard/internal/core/security"
	"stockyard/pkg/logger"
)

// RequireAccess enforces a compiled authorization policy. Must run after Auth.
func RequireAccess(policy *security.AccessPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user := appctx.GetUser(ctx)
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		allowed, err := policy.Allow(user)
		if err != nil {
			logger.Error(ctx, "access policy evaluation failed",
				"policy", policy.Expr(),
				"error", err.Error(),
			)
			_ = c.Error(apperror.NewInternal(err))
			c.Abort()
			return
		}

		if !allowed {
			_ = c.Error(
				apperror.NewForbidden("insufficient permissions").
					WithDetail("policy", policy.Expr()),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
