// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Bhugol HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/bhugol/internal/api"
	"github.com/taibuivan/bhugol/internal/compose"
	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/enrollment"
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/core/verification"
	"github.com/taibuivan/bhugol/internal/docstore"
	"github.com/taibuivan/bhugol/internal/platform/config"
	"github.com/taibuivan/bhugol/internal/platform/constants"
	"github.com/taibuivan/bhugol/internal/platform/migration"
	pgstore "github.com/taibuivan/bhugol/internal/platform/postgres"
	redisstore "github.com/taibuivan/bhugol/internal/platform/redis"
	"github.com/taibuivan/bhugol/internal/platform/sec"
	"github.com/taibuivan/bhugol/internal/wizard"
	"github.com/taibuivan/bhugol/internal/wizard/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Verifier ─────────────────────────────────────────────────
	// Bearer tokens are issued by the program-office identity provider; this
	// service only verifies them.
	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")

	// ── 7. Document Storage ───────────────────────────────────────────────
	documents, err := docstore.NewFSStorage(cfg.DocumentDir)
	must(log, err, "initialize document storage")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	catalogRepo := catalog.NewCachedRepository(catalog.NewPostgresRepository(pool), rdb, log)
	catalogService := catalog.NewService(catalogRepo, log)
	catalogHandler := catalog.NewHandler(catalogService)

	registryRepo := registry.NewPostgresRepository(pool)
	registryService := registry.NewService(registryRepo, catalogRepo, log)

	verificationService := verification.NewService(registryService, catalogRepo, log)
	verificationHandler := verification.NewHandler(verificationService)

	enrollmentService := enrollment.NewService(registryRepo, catalogRepo, documents, log)
	enrollmentHandler := enrollment.NewHandler(enrollmentService)

	draftStore := session.NewStore(rdb)
	wizardService := wizard.NewService(draftStore, verificationService, enrollmentService, log)
	wizardHandler := wizard.NewHandler(wizardService)

	composeHandler := compose.NewHandler()

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Catalog:      catalogHandler,
		Verification: verificationHandler,
		Enrollment:   enrollmentHandler,
		Wizard:       wizardHandler,
		Compose:      composeHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
