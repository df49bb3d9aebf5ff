package httpapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/xerschedule/core/internal/config"
	"github.com/xerschedule/core/internal/metrics"
)

// Router wraps an Echo instance configured with every schedule-core route.
type Router struct {
	echo     *echo.Echo
	handlers *Handlers
}

// NewRouter builds a Router over cfg, wiring a metrics registry (which
// may be nil to disable metrics entirely).
func NewRouter(cfg config.HostConfig, reg *metrics.Registry) *Router {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	r := &Router{echo: e, handlers: NewHandlers(cfg, reg)}
	r.registerRoutes(reg)
	return r
}

func (r *Router) registerRoutes(reg *metrics.Registry) {
	r.echo.GET("/api/health", r.handlers.Health)
	r.echo.POST("/api/v1/schedules:parse", r.handlers.Parse)
	r.echo.POST("/api/v1/schedules:analyze", r.handlers.Analyze)
	if reg != nil {
		r.echo.GET("/metrics", echo.WrapHandler(reg.Handler()))
	}
}

// Start runs the HTTP server on addr, blocking until it stops.
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// up to ctx's deadline before closing listeners.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}
