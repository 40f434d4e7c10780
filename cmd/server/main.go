package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/pokerdash/internal/api"
	"github.com/vytor/pokerdash/internal/config"
	"github.com/vytor/pokerdash/internal/dashboard"
	"github.com/vytor/pokerdash/internal/db"
	"github.com/vytor/pokerdash/internal/jobs"
	"github.com/vytor/pokerdash/internal/logger"
	"github.com/vytor/pokerdash/internal/pokerapi"
	"github.com/vytor/pokerdash/internal/repository"
	"github.com/vytor/pokerdash/internal/repository/sqlite"
	"github.com/vytor/pokerdash/internal/services"
	"github.com/vytor/pokerdash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Poker Stats Dashboard Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("api_url=%s", cfg.APIURL)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("locale=%s", cfg.Locale)
	log.Debug("snapshot_db_path=%s", cfg.SnapshotDBPath)
	log.Debug("snapshot_ttl=%v", cfg.SnapshotTTL)
	log.Debug("fetch_timeout=%v", cfg.FetchTimeout)
	log.Debug("max_concurrent_fetch=%d", cfg.MaxConcurrentFetch)
	log.Debug("refresh_worker_count=%d", cfg.RefreshWorkerCount)
	log.Debug("refresh_queue_size=%d", cfg.RefreshQueueSize)
	log.Debug("blocked_user_ids=%v", cfg.BlockedUserIDs)

	loc, err := cfg.Location()
	if err != nil {
		log.Error("failed to load timezone: %v", err)
		os.Exit(1)
	}

	// Optional last-known-good store
	var (
		store    repository.SnapshotRepository
		database *db.DB
	)
	if cfg.SnapshotDBPath != "" {
		database, err = db.Open(cfg.SnapshotDBPath)
		if err != nil {
			log.Error("failed to open snapshot store: %v", err)
			os.Exit(1)
		}
		defer func() {
			log.Debug("closing snapshot store")
			database.Close()
		}()
		store = sqlite.NewSnapshotRepository(database.DB, loc)
	} else {
		log.Info("snapshot store disabled; failed fetches fall back to empty histories")
	}

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates("web/templates")
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	client := pokerapi.New(cfg.APIURL, cfg.FetchTimeout, loc)
	snapshots := services.NewSnapshotService(client, store, services.SnapshotConfig{
		MaxConcurrent:  cfg.MaxConcurrentFetch,
		TTL:            cfg.SnapshotTTL,
		BlockedUserIDs: cfg.BlockedUserIDs,
	})

	refreshPool := worker.NewPool(cfg.RefreshWorkerCount, cfg.RefreshQueueSize)

	srv := &api.Server{
		Snapshots: snapshots,
		Jobs:      jobs.NewWorkerQueue(refreshPool, snapshots),
		Renderer:  dashboard.NewChartJSRenderer(),
		Templates: tmpl,
		Location:  loc,
		Language:  cfg.Language(),
	}
	if database != nil {
		srv.Store = database
	}

	ctx, cancel := context.WithCancel(context.Background())
	refreshPool.Start(ctx)

	// Warm the snapshot in the background so the server answers probes right away.
	if err := refreshPool.Submit(&worker.RefreshSnapshotJob{Snapshots: snapshots}); err != nil {
		log.Warn("failed to schedule initial snapshot load: %v", err)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: api.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping refresh pool")
	cancel()
	refreshPool.Stop()

	log.Info("===========================================")
	log.Info("Poker Stats Dashboard Stopped")
	log.Info("===========================================")
}
