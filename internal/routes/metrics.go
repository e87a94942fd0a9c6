package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// RegisterMetricsRoute exposes the Prometheus scrape endpoint for the given
// registry.
func RegisterMetricsRoute(app *fiber.App, registry *prometheus.Registry) {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})
}
