// AccessDeck authorization core
//
// Runs the authorization store bootstrap (MongoDB connection, unique
// index enforcement) and the admin surface: liveness/readiness and
// Prometheus metrics. Role operations are a library consumed by the
// surrounding identity provider, not an HTTP API of this binary.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.accessdeck.tech/internal/common/health"
	"go.accessdeck.tech/internal/common/lifecycle"
	storemongo "go.accessdeck.tech/internal/common/mongo"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	setupLogging()

	slog.Info("Starting AccessDeck authorization core",
		"version", version,
		"build_time", buildTime)

	ctx := context.Background()

	// ========================================
	// 1. INFRASTRUCTURE INITIALIZATION
	// ========================================
	app, cleanup, err := lifecycle.Initialize(ctx, lifecycle.AppOptions{
		NeedsMongoDB: true,
	})
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// ========================================
	// 2. COMPONENT WIRING
	// ========================================

	// The role invariants (name uniqueness, single root role) are
	// enforced by unique indexes; readiness gates on them existing.
	var indexGate health.IndexGate
	if err := storemongo.NewIndexInitializer(app.Mongo).Initialize(ctx); err != nil {
		slog.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}
	indexGate.MarkReady()

	healthChecker := health.NewChecker()
	healthChecker.AddReadinessCheck(health.MongoDBCheck(func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.Mongo.Ping(pingCtx)
	}))
	healthChecker.AddReadinessCheck(indexGate.Check())

	httpRouter := setupHTTPRouter(app, healthChecker)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Config.HTTP.Port),
		Handler:      httpRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ========================================
	// 3. RUN UNTIL SHUTDOWN
	// ========================================
	httpService := lifecycle.NewHTTPService("accessdeck-admin", httpServer)

	slog.Info("AccessDeck ready", "port", app.Config.HTTP.Port)

	if err := lifecycle.Run(ctx, httpService); err != nil {
		slog.Error("Service error", "error", err)
		os.Exit(1)
	}

	slog.Info("AccessDeck stopped")
}

// setupLogging configures the slog default logger.
func setupLogging() {
	logLevel := slog.LevelInfo
	if os.Getenv("ACCESSDECK_DEV") == "true" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

// setupHTTPRouter creates the admin router with middleware.
func setupHTTPRouter(app *lifecycle.App, healthChecker *health.Checker) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.Config.HTTP.CORSOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health/live", healthChecker.HandleLive)
	r.Get("/health/ready", healthChecker.HandleReady)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
