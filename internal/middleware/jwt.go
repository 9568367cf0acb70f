package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/print-shop-booking/internal/utils"
)

// Context keys set by JWTAuth.
const (
	ctxAdmin = "admin"
	ctxRole  = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// issued by /login and stores the admin username and role in the context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			// Role is type-asserted downstream by RequireRole.
			c.Set(ctxAdmin, claims["sub"])
			c.Set(ctxRole, claims["role"])
			return next(c)
		}
	}
}
