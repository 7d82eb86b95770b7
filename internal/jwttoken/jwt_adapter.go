package jwttoken

import (
	"context"

	"freightdesk/internal/platform/middleware"
)

// MiddlewareAdapter bridges JWTService to the middleware.JWTValidator
// interface so the transport layer stays decoupled from claim internals.
type MiddlewareAdapter struct {
	service *JWTService
}

func NewMiddlewareAdapter(service *JWTService) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) ValidateToken(ctx context.Context, tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
		JTI:    claims.ID,
	}, nil
}
