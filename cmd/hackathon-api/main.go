// main is the entry point of the hackathon site API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (.env, then the YAML file, then env overrides)
//  2. Initialise the logger
//  3. Open (and set up) the SQLite database
//  4. Load the page content and create the registration session table
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, close the database
//
// RUNNING THE SERVER:
//
//	go run ./cmd/hackathon-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/hackathon-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aanand-mishra/hackathon-api/internal/config"
	"github.com/aanand-mishra/hackathon-api/internal/content"
	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/http/middleware"
	"github.com/aanand-mishra/hackathon-api/internal/http/router"
	"github.com/aanand-mishra/hackathon-api/internal/newsletter"
	"github.com/aanand-mishra/hackathon-api/internal/registration"
	"github.com/aanand-mishra/hackathon-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting hackathon-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage (Database) ──────────────────────────────────
	// The sqlite driver does not create missing directories.
	if dir := filepath.Dir(cfg.StoragePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("failed to create storage directory",
				slog.String("path", dir),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Content and Sessions ───────────────────────────────────────────
	catalog, err := content.Load(cfg.ContentPath)
	if err != nil {
		log.Error("failed to load content",
			slog.String("path", cfg.ContentPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessions := registration.NewSessions(storage,
		form.LogNotifier{Log: log, Form: "registration"},
		cfg.Registration.SessionTTL,
		cfg.Registration.CleanupInterval,
	)

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	handler := router.New(router.Deps{
		Log:        log,
		Store:      storage,
		Sessions:   sessions,
		Catalog:    catalog,
		Newsletter: newsletter.NewStub(cfg.Newsletter.Delay),
		Limiter:    middleware.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	})

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,

		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
	}

	if err := storage.Close(); err != nil {
		log.Error("failed to close storage",
			slog.String("error", err.Error()))
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON at DEBUG level.
// Production (prod): JSON at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
