package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/balanceai/wellness-backend/internal/types"
)

// IAuthService is the surface handlers and middleware need from the auth
// service.
type IAuthService interface {
	Register(ctx context.Context, email, password, displayName string, age int, fitnessLevel string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	LinkChild(ctx context.Context, parentID uuid.UUID, childEmail string) error
	ValidateToken(token string) (*types.TokenClaims, error)
}

var _ IAuthService = (*AuthService)(nil)
