package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/http/api"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/http/swagger"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/rostersync"
	app "github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/app"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/config"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection; the service exports its own.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithCategories(cfg.Categories),
		app.WithScarcity(cfg.Scarcity),
		app.WithAgeCurve(cfg.AgeCurve),
		app.WithFairnessThreshold(cfg.FairnessThreshold),
		app.WithSlightMultiple(cfg.SlightMultiple),
		app.WithHeavyMultiple(cfg.HeavyMultiple),
		app.WithSearchBounds(cfg.MaxBundleSize, cfg.MaxCandidates, cfg.MaxProposals),
		app.WithMaxSuggestions(cfg.MaxSuggestions),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	snap, err := rostersync.LoadFile(cfg.SnapshotPath)
	if err != nil {
		log.Error(ctx, "failed to load league snapshot", logger.String("path", cfg.SnapshotPath), logger.Error(err))
		return
	}
	if err := svc.LoadSnapshot(ctx, snap); err != nil {
		log.Error(ctx, "failed to valuate league snapshot", logger.Error(err))
		return
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxRankingsLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
