package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mealplan/internal/database"
	"mealplan/internal/logging"
	"mealplan/internal/server"
)

func main() {
	logger := logging.Setup(os.Getenv("MEALPLAN_LOG_LEVEL"))

	port := os.Getenv("MEALPLAN_PORT")
	if port == "" {
		port = "50051"
	}

	dbPath := os.Getenv("MEALPLAN_DB_PATH")
	if dbPath == "" {
		dbPath = "mealplan.db"
	}

	cfg := server.Config{
		StrictAuth: os.Getenv("MEALPLAN_STRICT_AUTH") == "true",
	}
	if origins := os.Getenv("MEALPLAN_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, cfg, logger)

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: srv.Router(),
	}

	// Background cleanup of expired sessions and stale rate-limit entries.
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup", "error", err)
				} else if n > 0 {
					logger.Info("session cleanup", "deleted", n)
				}
				srv.RateLimiter().Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", port, "db", dbPath, "strict_auth", cfg.StrictAuth)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}
}
