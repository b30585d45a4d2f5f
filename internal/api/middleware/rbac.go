package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gestionstock/product-api/internal/api/metrics"
	"github.com/gestionstock/product-api/internal/core/authz"
)

// Authorize lets the request through only when the caller's role holds
// capability under policy. It must run after Auth.
func Authorize(policy *authz.Policy, capability authz.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := policy.Authorize(ClaimsFrom(c), capability); err != nil {
				metrics.AuthorizationDecisionsTotal.WithLabelValues(string(capability), "deny").Inc()
				return err
			}
			metrics.AuthorizationDecisionsTotal.WithLabelValues(string(capability), "allow").Inc()
			return next(c)
		}
	}
}
