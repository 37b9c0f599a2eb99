package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "toolshare-backend/internal/api/http"
	"toolshare-backend/internal/config"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/metrics"
	"toolshare-backend/internal/repository/postgres"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/session"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Toolshare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}

	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	healthChecks := map[string]httpapi.HealthCheck{"database": store.Ping}

	// Initialize session store
	var sessionStore session.Store
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		logger.Warn("Using in-memory session store; sessions are lost on restart")
		sessionStore = session.NewMemoryStore()
	default:
		client := session.NewRedisClient(cfg)
		defer client.Close()
		if err := session.Ping(ctx, client); err != nil {
			logger.Error("Failed to connect to Redis", "error", err, "address", cfg.GetRedisAddress())
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		logger.Info("Redis session store connected", "address", cfg.GetRedisAddress())
		sessionStore = session.NewRedisStore(client)
		healthChecks["sessions"] = func(ctx context.Context) error { return session.Ping(ctx, client) }
	}
	sessions := session.NewManager(sessionStore, security.NewTokenManager(cfg.Session.Secret), cfg.Session)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metrics.Register()
		metricsPath = cfg.Metrics.Path
		logger.Info("Metrics enabled", "path", metricsPath)
	}

	handler := httpapi.NewHandler(httpapi.Dependencies{
		Auth:         service.NewAuthService(store),
		Tools:        service.NewToolService(store),
		Bookings:     service.NewBookingService(store),
		Reviews:      service.NewReviewService(store),
		Sessions:     sessions,
		HealthChecks: healthChecks,
		MetricsPath:  metricsPath,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
