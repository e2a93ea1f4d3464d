package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weather-dashboard/internal/services/citylist"
	"weather-dashboard/internal/services/suggest"
	"weather-dashboard/pkg/observe"
)

type routes struct {
	manager   *citylist.Manager
	suggester *suggest.Service
	l         *observe.Logger
}

func NewRouter(
	app *fiber.App,
	manager *citylist.Manager,
	suggester *suggest.Service,
	l *observe.Logger,
) {
	r := &routes{
		manager:   manager,
		suggester: suggester,
		l:         l,
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes
	app.Get("/dashboard", r.handleDashboard)
	app.Post("/cities", r.handleAddCity)
	app.Delete("/cities/:index", r.handleRemoveCity)
	app.Post("/geolocation/allow", r.handleAllowGeolocation)
	app.Post("/geolocation/deny", r.handleDenyGeolocation)
	app.Post("/refresh", r.handleRefresh)
	app.Get("/suggestions", r.handleSuggestions)
}
