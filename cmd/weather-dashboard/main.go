package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-dashboard/config"
	_ "weather-dashboard/docs"
	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/internal/geoloc"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/services/citylist"
	"weather-dashboard/internal/services/suggest"
	"weather-dashboard/internal/store"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/observe"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description A weather dashboard backend built with Go and Fiber.
// @description Tracks a small list of cities, resolves the device location and serves current conditions plus a three-day forecast from Open-Meteo.
// @termsOfService http://swagger.io/terms/

// @contact.name Weather Dashboard Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

// @tag.name Dashboard
// @tag.description City list and weather operations
// @tag.name Geolocation
// @tag.description Geolocation offer decisions
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}
	if cnf.Sentry.DSN != "" {
		writers = append(writers, observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.IsDevelopment(), cnf.Sentry.DSN))
	}
	l := observe.NewZapLogger(cnf.App.Name, writers...).WithEnv(cnf.App.Env)

	var st store.Store
	if cnf.UseRedisStore() {
		redisStore := store.NewRedisStore(cnf.Redis.Addr, cnf.Redis.Password, cnf.Redis.DB, cnf.Redis.StateKey, l)
		defer func() { _ = redisStore.Close() }()
		st = redisStore
	} else {
		l.Warning("no redis configured, dashboard state will not survive restarts")
		st = store.NewMemoryStore()
	}

	geocoder := repositories.NewOpenMeteoGeocoding(
		cnf.Geocoding.BaseURL,
		cnf.Geocoding.Language,
		cnf.Geocoding.Count,
		repositories.NewHTTPClient(time.Duration(cnf.Geocoding.Timeout)*time.Second),
		l,
	)
	forecasts := repositories.NewOpenMeteoForecast(
		cnf.Forecast.BaseURL,
		repositories.NewHTTPClient(time.Duration(cnf.Forecast.Timeout)*time.Second),
		l,
	)

	geoTimeout := time.Duration(cnf.Geolocation.Timeout) * time.Second
	positions := geoloc.NewIPAPIProvider(cnf.Geolocation.BaseURL, geoTimeout, repositories.NewHTTPClient(geoTimeout), l)

	manager := citylist.NewManager(st, geocoder, forecasts, positions, cnf.Cities.Capacity, l)
	if err := manager.Start(ctx); err != nil {
		// Startup survives a failed refresh; the last known weather stays.
		l.Warning("initial weather refresh failed", map[string]any{"err": err.Error()})
	}

	suggester := suggest.NewService(cnf.Cities.Suggestions)

	app := httpserver.InitFiberServer(cnf.App.Name)

	v1.NewRouter(
		app,
		manager,
		suggester,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port": cnf.Server.Port,
		"env":  cnf.App.Env,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
