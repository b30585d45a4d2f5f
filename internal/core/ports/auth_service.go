package ports

import (
	"context"

	"github.com/gestionstock/product-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// TokenIssuer signs identity claims into a bearer token.
type TokenIssuer interface {
	Issue(username, role string) (string, error)
}

// TokenVerifier checks a bearer token and returns the claims it carries.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}
