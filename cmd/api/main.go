package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/creature-barn/internal/batch"
	"github.com/jwebster45206/creature-barn/internal/cache"
	"github.com/jwebster45206/creature-barn/internal/config"
	"github.com/jwebster45206/creature-barn/internal/handlers"
	"github.com/jwebster45206/creature-barn/internal/logger"
	"github.com/jwebster45206/creature-barn/internal/middleware"
	"github.com/jwebster45206/creature-barn/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Creature Barn API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"db_path", cfg.DBPath,
		"cache_enabled", cfg.RedisURL != "")

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer storageCancel()

	store, err := storage.Open(storageCtx, cfg.DBPath, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to open storage")
		os.Exit(1)
	}
	log.Info("Storage opened successfully")

	// The processor and health check get a nil interface when caching is
	// disabled, never a nil *RedisCache.
	var recordCache cache.Cache
	var cachePinger handlers.Pinger
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.CacheTTL, log)
		if err != nil {
			logger.WithError(log, err).Error("Invalid REDIS_URL")
			os.Exit(1)
		}
		cacheCtx, cacheCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := redisCache.WaitForConnection(cacheCtx, 30, 2*time.Second); err != nil {
			cacheCancel()
			logger.WithError(log, err).Error("Failed to connect to cache")
			os.Exit(1)
		}
		cacheCancel()
		recordCache = redisCache
		cachePinger = redisCache
	}

	processor := batch.NewProcessor(cfg.BatchWorkers,
		batch.WithCache(recordCache),
		batch.WithLogger(log))

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, cachePinger, log)
	mux.Handle("/health", healthHandler)

	statblockHandler := handlers.NewStatblockHandler(processor, cfg.MaxBodyBytes, log)
	mux.Handle("/v1/statblocks", statblockHandler)

	creatureHandler := handlers.NewCreatureHandler(store, processor, cfg.MaxBodyBytes, log)
	mux.Handle("/v1/creatures", creatureHandler)
	mux.Handle("/v1/creatures/", creatureHandler)

	handler := middleware.LoggerWith(log, mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if recordCache != nil {
		if err := recordCache.Close(); err != nil {
			log.Error("Error closing cache connection", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing storage", "error", err)
	}

	log.Info("Server exited")
}
