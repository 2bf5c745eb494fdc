package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"media-parser/internal/consumer"
	"media-parser/internal/database"
	"media-parser/internal/handlers"
	"media-parser/internal/logging"
	"media-parser/internal/memory"
	"media-parser/internal/metrics"
	"media-parser/internal/middleware"
	"media-parser/internal/mimetypes"
	"media-parser/internal/parser"
	"media-parser/internal/startup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	startTime := time.Now()

	memory.ConfigureFromEnv()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)

	if err := parser.InitVips(); err != nil {
		logging.Warn("libvips unavailable, thumbnails fall back to PNG: %v", err)
	}
	defer parser.ShutdownVips()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbStart := time.Now()
	db, err := database.New(ctx, config.DatabasePath)
	if err != nil {
		startup.LogFatal("Database initialization failed: %v", err)
	}
	startup.LogDatabaseInit(time.Since(dbStart))

	mimeRegistry := mimetypes.NewRegistry(config.MimeRegistryPath)
	corrector := mimetypes.NewCorrector(mimeRegistry)
	consumer.RegisterMimeCorrection(db, corrector)

	declRegistry := consumer.NewRegistry()
	mediaDecl := consumer.MediaDeclaration(config.ScratchDir, mimeRegistry)
	declRegistry.Register(mediaDecl)

	startup.LogConsumerInit(config.ConsumeInterval)
	cons := consumer.New(db, declRegistry, mediaDecl, config.ConsumeDir, config.ConsumeInterval)
	cons.Start(ctx)
	startup.LogConsumerStarted()

	h := handlers.New(db, cons, declRegistry, mimeRegistry, handlers.Config{
		ConsumeDir: config.ConsumeDir,
		ScratchDir: config.ScratchDir,
	})

	router := mux.NewRouter()
	h.RegisterRoutes(router)

	router.Use(middleware.Auth(config.APITokenHash))
	router.Use(middleware.Logger(middleware.LoggingConfig{
		LogHealthChecks: config.LogHealthChecks,
	}))
	if config.MetricsEnabled {
		router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
	}

	startup.LogHTTPRoutes(router)

	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var metricsServer *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              ":" + config.MetricsPort,
			Handler:           metricsMux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startup.LogFatal("Server error: %v", err)
		}
	}()

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime).Round(time.Millisecond),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	startup.LogShutdownInitiated(sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	startup.LogShutdownStep("Stopping consumer")
	cons.Stop()
	cancel()
	startup.LogShutdownStepComplete("Consumer stopped")

	startup.LogShutdownStep("Stopping HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("HTTP server shutdown error: %v", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Metrics server shutdown error: %v", err)
		}
	}
	startup.LogShutdownStepComplete("HTTP server stopped")

	startup.LogShutdownStep("Closing database")
	if err := db.Close(); err != nil {
		logging.Error("Database close error: %v", err)
	}
	startup.LogShutdownStepComplete("Database closed")

	startup.LogShutdownComplete()
}
