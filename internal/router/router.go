package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/config"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/handler"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the authenticated API surface.  All routes live
// under /v1 and require a valid access token.  Write operations are
// additionally restricted by role:
//
//   - dock registry writes: OPERATOR
//   - appointment writes and transitions: OPERATOR or PLANNER
//   - cancellation: OPERATOR, PLANNER or CARRIER (carriers may cancel
//     their own bookings through the dedicated endpoint)
//   - reads: any authenticated role
//
// The heavy read endpoints (availability grid, slot search, calendar)
// are served through the Redis response cache when a Redis client is
// available; rdb may be nil, in which case caching and rate limiting
// are skipped entirely.
func RegisterAPI(e *echo.Echo, d *handler.DockHandler, a *handler.AppointmentHandler, av *handler.AvailabilityHandler, jwtSecret string, rdb *redis.Client) {
    api := e.Group("/v1")
    api.Use(middleware.JWTAuth(jwtSecret))

    if rdb != nil {
        api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    }

    // Dock registry.  Reads are open to any authenticated user; only
    // operators may register or edit docks.
    api.GET("/docks", d.ListDocks)
    api.POST("/docks", d.CreateDock, middleware.RequireRole("OPERATOR"))
    api.PATCH("/docks/:id", d.UpdateDock, middleware.RequireRole("OPERATOR"))

    // Appointment booking and lifecycle.
    planner := middleware.RequireRole("OPERATOR", "PLANNER")
    api.GET("/appointments", a.ListAppointments)
    api.GET("/appointments/:id", a.GetAppointment)
    api.POST("/appointments", a.CreateAppointment, planner)
    api.PATCH("/appointments/:id", a.UpdateAppointment, planner)
    api.POST("/appointments/:id/transition", a.TransitionAppointment, planner)
    api.POST("/appointments/:id/cancel", a.CancelAppointment,
        middleware.RequireRole("OPERATOR", "PLANNER", "CARRIER"))

    // Planning reads.  These recompute full grids per request, so the
    // short-TTL response cache in front of them absorbs dashboard
    // refresh storms without serving meaningfully stale data.
    if rdb != nil {
        cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
        api.GET("/availability", av.GetAvailability, cached)
        api.GET("/availability/search", av.SearchSlots, cached)
        api.GET("/calendar", av.GetCalendar, cached)
    } else {
        api.GET("/availability", av.GetAvailability)
        api.GET("/availability/search", av.SearchSlots)
        api.GET("/calendar", av.GetCalendar)
    }
    api.GET("/reports/utilization", av.GetUtilization)
}
