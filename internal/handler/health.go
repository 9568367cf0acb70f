package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root answers GET / with the banner the booking front end pings on load.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "HELLO SERVER")
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
