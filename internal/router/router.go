package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/print-shop-booking/internal/config"
	"github.com/iliyamo/print-shop-booking/internal/handler"
)

// Cache namespaces. Each cached listing is purged by writes registered
// with the same namespace.
const (
	nsEditors  = "editors"
	nsServices = "services"
)

// Deps carries everything the route groups need. Redis may be nil, which
// turns caching and rate limiting off.
type Deps struct {
	Cfg          config.Config
	Cache        config.CacheConfig
	RateLimit    config.RateLimitConfig
	Redis        *redis.Client
	Reservations *handler.ReservationHandler
	Catalog      *handler.CatalogHandler
	Auth         *handler.AuthHandler
}

// RegisterRoutes registers routes that do not touch the database.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
}

// Register wires every route group.
func Register(e *echo.Echo, d Deps) {
	RegisterRoutes(e)
	RegisterCustomer(e, d)
	RegisterStaff(e, d)
}
