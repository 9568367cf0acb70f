package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/print-shop-booking/internal/middleware"
	"github.com/iliyamo/print-shop-booking/internal/utils"
)

// RegisterStaff registers the reservation management and catalog
// maintenance endpoints. When STAFF_AUTH_REQUIRED is set they require an
// ADMIN access token from /login.
func RegisterStaff(e *echo.Echo, d Deps) {
	// Per-route middleware; a root group would also guard unmatched paths.
	var guard []echo.MiddlewareFunc
	if d.Cfg.StaffAuthRequired {
		guard = append(guard, middleware.JWTAuth(d.Cfg.JWTSecret), middleware.RequireRole(utils.RoleAdmin))
	}
	with := func(extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append(append([]echo.MiddlewareFunc{}, guard...), extra...)
	}

	// ---- Reservations ----
	r := d.Reservations
	e.GET("/reservations", r.List, guard...)
	e.GET("/reservations/:id", r.Get, guard...)
	e.PUT("/reservations/:id", r.UpdateStatus, guard...)
	e.DELETE("/reservations/:id", r.Delete, guard...)
	e.POST("/reservations/:id/approve", r.Approve, guard...)
	e.POST("/reservations/:id/done", r.Done, guard...)
	e.POST("/reservations/:id/cancel", r.Cancel, guard...)
	e.GET("/approved", r.Approved, guard...)

	// ---- Catalog ----
	// Writes share the listing's cache namespace so a successful write
	// purges the cached listing.
	editors := middleware.NewRedisCache(d.Cache, d.Redis, nsEditors)
	services := middleware.NewRedisCache(d.Cache, d.Redis, nsServices)
	e.POST("/editors", d.Catalog.CreateEditor, with(editors)...)
	e.DELETE("/editors/:id", d.Catalog.DeleteEditor, with(editors)...)
	e.POST("/services", d.Catalog.CreateService, with(services)...)
	e.DELETE("/services/:id", d.Catalog.DeleteService, with(services)...)
}
