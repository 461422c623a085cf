package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	// Health check routes
	app.Get("/health", deps.HealthHandler.Health)
	app.Get("/healthz", deps.HealthHandler.Health)
	app.Get("/livez", deps.HealthHandler.Live)
	app.Get("/live", deps.HealthHandler.Live)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	// Chart generation
	charts := v1.Group("/charts")
	charts.Post("/callback-scheduling", deps.ChartsHandler.CreateSchedulingChart)
	charts.Post("/timeseries", deps.ChartsHandler.CreateTimeSeriesChart)
	charts.Post("/export", deps.ChartsHandler.ExportChart)

	// Chart presets
	presets := v1.Group("/presets")
	presets.Post("/", deps.PresetsHandler.CreatePreset)
	presets.Get("/", deps.PresetsHandler.ListPresets)
	presets.Get("/:presetId", deps.PresetsHandler.GetPreset)
	presets.Patch("/:presetId", deps.PresetsHandler.UpdatePreset)
	presets.Delete("/:presetId", deps.PresetsHandler.DeletePreset)
}
