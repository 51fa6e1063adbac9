package ports

import (
	"context"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	TokenVerifier
}

// TokenVerifier validates a raw bearer token and returns the identity it carries.
type TokenVerifier interface {
	VerifyToken(raw string) (*domain.Identity, error)
}
