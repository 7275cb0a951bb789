package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityContextKey = "identity"

// Authenticate resolves an optional bearer token into the request identity.
// Requests without an Authorization header proceed anonymously; a header that
// does not resolve is rejected.
func Authenticate(resolver *auth.Resolver, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			identity, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				logger.Debug("rejected credentials", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(identityContextKey, identity)
			c.SetRequest(c.Request().WithContext(auth.WithIdentity(c.Request().Context(), identity)))
			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Identity(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			return next(c)
		}
	}
}

// Identity returns the identity Authenticate attached, or nil
func Identity(c echo.Context) *auth.Identity {
	if id, ok := c.Get(identityContextKey).(*auth.Identity); ok {
		return id
	}
	return auth.FromContext(c.Request().Context())
}
