package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ozzus/flypy/internal/api/http/handlers"
	"github.com/ozzus/flypy/internal/application/service"
	"github.com/ozzus/flypy/internal/config"
	"github.com/ozzus/flypy/internal/httpapp"
	"github.com/ozzus/flypy/internal/infrastructures/airports"
	"github.com/ozzus/flypy/internal/infrastructures/db/tracing"
	qpxclient "github.com/ozzus/flypy/internal/infrastructures/qpx/http/client"
	"github.com/ozzus/flypy/internal/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	tp, err := tracing.InitTracer("itinerary-api", cfg.Jaeger)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	log.Info("itinerary-api starting", zap.String("http_addr", cfg.HTTP.Address()), zap.String("env", cfg.Env))

	catalog, err := airports.LoadFile(cfg.Airports.Path)
	if err != nil {
		log.Error("airport catalog not loaded", zap.Error(err), zap.String("path", cfg.Airports.Path))
		catalog = airports.Unavailable(err)
	}

	registry := metrics.NewRegistry()
	tripSource := qpxclient.NewClient(log, cfg.QPX.BaseURL, cfg.QPX.APIKey, cfg.QPX.Solutions, cfg.QPX.Timeout)
	itineraryService := service.NewItineraryService(log, tripSource, registry)

	itineraryHandler := handlers.NewItineraryHandler(log, itineraryService, cfg.HTTP.SearchTimeout)
	airportHandler := handlers.NewAirportHandler(log, catalog)

	app := httpapp.New(log, cfg.HTTP, registry.HTTPRequests, func(mux *http.ServeMux) {
		mux.HandleFunc("/", handlers.Root)
		mux.HandleFunc("/healthz", handlers.Health)
		mux.HandleFunc("/airports", airportHandler.List)
		mux.HandleFunc("/v1/itineraries", itineraryHandler.Search)
		mux.HandleFunc("/v1/itineraries/assemble", itineraryHandler.Assemble)
		mux.Handle("/metrics", registry.Handler())
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		app.Stop()
	case err := <-errCh:
		if err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
	}
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
