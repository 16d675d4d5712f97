package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookkeeper/internal/api"
	"bookkeeper/internal/budget"
	"bookkeeper/internal/config"
	"bookkeeper/internal/ledger"
	"bookkeeper/internal/repository/memory"
	"bookkeeper/internal/service"
	"bookkeeper/pkg/metrics"
)

const (
	appName = "bookkeeper"
)

func main() {
	logger := setupLogger()
	logger.Info("Starting application",
		slog.String("name", appName))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	collector := metrics.NewCollector(logger)
	txRepo := memory.NewTransactionRepository()
	accountRepo := memory.NewAccountRepository()
	processor := ledger.NewProcessor(txRepo, accountRepo, collector, logger)

	alertService := service.NewAlertService(
		cfg.AlertWorkers,
		cfg.AlertQueueSize,
		logger,
		service.NewConsoleSink(os.Stdout),
		&overrunCounter{collector: collector},
	)
	budgets := budget.NewManager(alertService, logger)

	apiHandler := api.NewAPIHandler(processor, accountRepo, budgets, logger)
	metricsServer := collector.StartMetricsServer(cfg.MetricsAddr)
	httpServer := startHTTPServer(cfg.ListenAddr, apiHandler, logger)
	waitForShutdown(cfg, logger, httpServer, metricsServer, alertService, collector)
	logger.Info("Application shutdown complete")
}

// overrunCounter mirrors every budget alert into the Prometheus counter.
type overrunCounter struct {
	collector *metrics.Collector
}

func (c *overrunCounter) Deliver(alert service.Alert) error {
	c.collector.RecordBudgetOverrun(alert.Category)
	return nil
}

func setupLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

func startHTTPServer(addr string, apiHandler *api.APIHandler, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	apiHandler.RegisterRoutes(mux)

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"name": "%s", "status": "ok"}`, appName)
	})

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	return server
}

func waitForShutdown(
	cfg *config.Config,
	logger *slog.Logger,
	httpServer *http.Server,
	metricsServer *http.Server,
	alertService *service.AlertService,
	collector *metrics.Collector,
) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
	}

	if err := alertService.Shutdown(ctx); err != nil {
		logger.Error("Alert service shutdown failed", slog.String("error", err.Error()))
	}

	if err := collector.Shutdown(ctx); err != nil {
		logger.Error("Metrics collector shutdown failed", slog.String("error", err.Error()))
	}
}
