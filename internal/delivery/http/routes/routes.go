package routes

import (
	"trademart/internal/delivery/http/handler"
	"trademart/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Registry struct {
	health  *handler.HealthHandler
	match   *handler.MatchHandler
	stats   *handler.StatsHandler
	catalog *handler.CatalogHandler
	metrics *metrics.Metrics
}

func NewRegistry(
	health *handler.HealthHandler,
	match *handler.MatchHandler,
	stats *handler.StatsHandler,
	catalog *handler.CatalogHandler,
	m *metrics.Metrics,
) *Registry {
	return &Registry{health: health, match: match, stats: stats, catalog: catalog, metrics: m}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(r.metrics.Handler()))

	api := app.Group("/api")
	r.match.RegisterRoutes(api)
	r.stats.RegisterRoutes(api)
	r.catalog.RegisterRoutes(api)
}
