package auth

import (
	"context"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/jwt"
)

// IdentityRepository stores credentials.
type IdentityRepository interface {
	Create(ctx context.Context, id *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Delete(ctx context.Context, id string) error
}

// ProfileGateway is the part of the backend gateway auth depends on.
type ProfileGateway interface {
	GetProfile(ctx context.Context, id string) (*domain.User, error)
	CreateProfile(ctx context.Context, u *domain.User) error
}

type tokenService interface {
	GenerateToken(userID, role string) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}
