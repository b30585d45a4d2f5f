package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gestionstock/product-api/internal/core/domain"
	"github.com/gestionstock/product-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	ClaimsKey   = "claims"
	UsernameKey = "username"
	RoleKey     = "role"
)

// Auth verifies the bearer token and injects its claims into the context.
// A missing header yields ErrAuthenticationRequired; a malformed header or a
// token that fails verification yields ErrInvalidToken. Both render as 401.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrAuthenticationRequired
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrInvalidToken
			}

			claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(ClaimsKey, claims)
			c.Set(UsernameKey, claims.Username)
			c.Set(RoleKey, claims.Role)

			return next(c)
		}
	}
}

// ClaimsFrom returns the claims injected by Auth, or nil when the route is
// not behind it.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(ClaimsKey).(*domain.Claims)
	return claims
}
