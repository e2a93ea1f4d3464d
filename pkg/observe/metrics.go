package observe

import "github.com/prometheus/client_golang/prometheus"

var (
	// GeocodeLookups counts geocoding requests by kind (search, reverse)
	// and outcome (ok, not_found, error).
	GeocodeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_dashboard_geocode_lookups_total",
			Help: "Geocoding lookups by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	// ForecastFetches counts single-city forecast requests by outcome.
	ForecastFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_dashboard_forecast_fetches_total",
			Help: "Per-city forecast fetches by outcome.",
		},
		[]string{"outcome"},
	)

	// RefreshBatches counts fan-out refresh batches by outcome
	// (ok, failed, superseded).
	RefreshBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_dashboard_refresh_batches_total",
			Help: "Refresh batches by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(GeocodeLookups, ForecastFetches, RefreshBatches)
}
