// Casedesk Core - Case Management Auth Service
//
// This is the main entry point for the Casedesk Core service: the
// credential and token-authentication backend for the firm's case
// management dashboard. It owns:
//   - Account registration and login (domain-restricted email/password)
//   - Stateless signed bearer tokens
//   - The credential store (SQLite) and its migrations
//   - The admin user listing and activity trail
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/illinoisestatelaw/casedesk-core/migrations"

	"github.com/illinoisestatelaw/casedesk-core/internal/api"
	"github.com/illinoisestatelaw/casedesk-core/internal/audit"
	"github.com/illinoisestatelaw/casedesk-core/internal/auth"
	"github.com/illinoisestatelaw/casedesk-core/internal/infrastructure/config"
	"github.com/illinoisestatelaw/casedesk-core/internal/infrastructure/database"
	"github.com/illinoisestatelaw/casedesk-core/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Casedesk Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration; a missing file falls back to defaults plus
	// environment variables so the service is deployable with env only.
	configPath := getConfigPath()
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	if cfg.UsingInsecureSecret() {
		log.Warn("running with the built-in signing secret; set CASEDESK_JWT_SECRET before exposing this service")
	}

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Repositories
	userRepo := auth.NewUserRepository(db.DB)
	auditRepo := audit.NewSQLiteRepository(db.DB)

	// Seed the initial admin on a fresh store. A populated store refuses
	// the seed; that is the normal case after first boot.
	if _, seedErr := auth.SeedAdmin(ctx, userRepo, log.Logger); seedErr != nil {
		if !errors.Is(seedErr, auth.ErrUsersExist) {
			return fmt.Errorf("seeding admin: %w", seedErr)
		}
	}

	// Start API server
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		Security: cfg.Security,
		Logger:   log,
		Users:    userRepo,
		Audit:    auditRepo,
		DB:       db,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	// Verify connections are healthy
	if err := healthCheck(ctx, db, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. Database

	log.Info("Casedesk Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses CASEDESK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("CASEDESK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, server *api.Server) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}
