package middleware

import "github.com/labstack/echo/v4"

// currentAdmin returns the username JWTAuth stored in the context, or
// "anon" for unauthenticated requests.
func currentAdmin(c echo.Context) string {
	if v, ok := c.Get(ctxAdmin).(string); ok && v != "" {
		return v
	}
	return "anon"
}
