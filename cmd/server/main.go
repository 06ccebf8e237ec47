package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calmacil/dartscore/internal/api"
	"github.com/calmacil/dartscore/internal/config"
	"github.com/calmacil/dartscore/internal/db"
	"github.com/calmacil/dartscore/internal/docstore"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/jobs"
	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/migrate"
	"github.com/calmacil/dartscore/internal/prefs"
	"github.com/calmacil/dartscore/internal/repository/documents"
	"github.com/calmacil/dartscore/internal/services"
	"github.com/calmacil/dartscore/internal/worker"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Dartscore Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("migrate_on_boot=%v", cfg.MigrateOnBoot)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Document store and repositories
	store := docstore.New(database)
	playerRepo := documents.NewPlayerRepository(store)
	gameRepo := documents.NewGameRepository(store, playerRepo)

	// Preference stores
	prefsMgr := prefs.NewManager(services.PrefsNamespace, store)
	services.RegisterPrefStores(prefsMgr)

	// Worker pool
	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)

	// Initialize services
	playerService := services.NewPlayerService(playerRepo)
	gameService := services.NewGameService(gameRepo, playerRepo, prefsMgr)
	summaryService := services.NewSummaryService(gameRepo, playerRepo, prefsMgr, store)
	migrationService := services.NewMigrationService(migrate.New(gameRepo, playerRepo))

	queue := jobs.NewWorkerQueue(pool, migrationService, summaryService)

	srv := api.NewServer(
		playerService,
		gameService,
		summaryService,
		migrationService,
		prefsMgr,
		queue,
		database,
	)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	if cfg.MigrateOnBoot {
		log.Info("queueing document migrations")
		for _, gameType := range []string{games.GameType27, games.GameTypeBullseye} {
			if err := queue.EnqueueMigration(gameType); err != nil {
				log.Warn("failed to queue migration for %s: %v", gameType, err)
			}
		}
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	pool.Stop()

	log.Info("===========================================")
	log.Info("Dartscore Server Stopped")
	log.Info("===========================================")
}
