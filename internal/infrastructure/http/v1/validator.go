package v1

import (
	appctx "stockyard/internal/core/context"
	"stockyard/internal/domain/auth"
	"stockyard/internal/infrastructure/http/v1/middleware"
)

// jwtValidator adapts the auth JWT service to the middleware contract.
type jwtValidator struct {
	jwt *auth.JWTService
}

// NewJWTValidator wraps a JWT service for use by the auth middleware.
func NewJWTValidator(svc *auth.JWTService) middleware.JWTValidator {
	return &jwtValidator{jwt: svc}
}

func (v *jwtValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	claims, err := v.jwt.Verify(token)
	if err != nil {
		return nil, err
	}

	return &appctx.UserContext{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Roles:       claims.Roles,
		Permissions: claims.Permissions,
		IsAdmin:     claims.IsAdmin,
	}, nil
}
