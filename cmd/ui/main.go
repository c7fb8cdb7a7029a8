package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/server"
	"trade-journal-go/internal/storage"
)

func main() {
	configDir := flag.String("config", "./configs", "directory containing config.yml")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Open the persistence backend and load the journal
	backend, err := storage.New(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	store := journal.NewStore(backend, cfg.Journal.StorageKey, log)
	store.Load()

	j := journal.New(store, journal.NewBuilder(journal.NewClockIDs()), log)
	api := server.NewAPIServer(cfg.Server.Port, j, log)
	errc := api.Start()

	// Wait for a shutdown signal or a listener failure
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigchan:
		log.Info("Shutdown signal received, gracefully shutting down...")
	case err := <-errc:
		log.Error("Web server failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := api.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Journal server has been shut down.")
}
