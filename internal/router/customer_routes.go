package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/print-shop-booking/internal/middleware"
)

// RegisterCustomer registers the endpoints the public booking site uses:
// submitting a reservation, looking one up, reading the catalog and the
// staff login form. Writes and lookups are rate limited; catalog reads are
// served from the Redis cache.
func RegisterCustomer(e *echo.Echo, d Deps) {
	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)

	e.POST("/reservations", d.Reservations.Create, limit)
	e.GET("/checkReservation/:id", d.Reservations.Check, limit)
	e.POST("/login", d.Auth.Login, limit)

	e.GET("/editors", d.Catalog.ListEditors, middleware.NewRedisCache(d.Cache, d.Redis, nsEditors))
	e.GET("/services", d.Catalog.ListServices, middleware.NewRedisCache(d.Cache, d.Redis, nsServices))
}
