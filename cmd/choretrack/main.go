package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/choretrack/internal/config"
	"github.com/dukerupert/choretrack/internal/database"
	"github.com/dukerupert/choretrack/internal/logging"
	"github.com/dukerupert/choretrack/internal/server"
	"github.com/dukerupert/choretrack/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel)

	var db *database.DB
	if cfg.DatabaseDriver == "postgres" {
		db, err = database.OpenURL("postgres", cfg.DatabaseURL)
	} else {
		db, err = database.Open(cfg.DatabasePath)
	}
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	srv := server.New(db, tokens, cfg.RateLimit, cfg.RateWindow, logger)

	// Periodically drop expired rate limit buckets.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-cleanupDone:
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("choretrack listening", "port", cfg.Port, "driver", cfg.DatabaseDriver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	close(cleanupDone)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
