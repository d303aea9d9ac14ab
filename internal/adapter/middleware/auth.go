package middleware

import (
	"net/http"
	"strings"

	"library-backend/pkg/token"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// JWT authenticates the request from the Authorization bearer token and
// stores the claims in the echo context. It never authorizes anything beyond
// identity; ownership checks stay inside the usecases.
func JWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims, err := token.Parse(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			SetPrincipal(c, claims)
			return next(c)
		}
	}
}

// RequireRole gates a route on the authenticated principal's role. Must run
// after JWT.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Principal(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}
			if claims.Role != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated claims, if any.
func Principal(c echo.Context) (*token.Claims, bool) {
	claims, ok := c.Get(principalKey).(*token.Claims)
	return claims, ok
}

// SetPrincipal stores claims in the request context. Handler tests use it to
// skip the JWT round trip.
func SetPrincipal(c echo.Context, claims *token.Claims) { c.Set(principalKey, claims) }
