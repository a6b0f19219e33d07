// main is the entry point of the roster comparison service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the SQLite run-history database
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/roster-diff-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/roster-diff-api
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

	"github.com/aanand-mishra/roster-diff/internal/config"
	"github.com/aanand-mishra/roster-diff/internal/http/handlers/comparison"
	"github.com/aanand-mishra/roster-diff/internal/metrics"
	"github.com/aanand-mishra/roster-diff/internal/storage/sqlite"
	"github.com/aanand-mishra/roster-diff/internal/types"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Handlers log through the default logger, so install ours as default.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting roster-diff-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
		slog.String("default_mode", cfg.Comparator.DefaultMode),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Only run summaries are stored; uploaded rosters never are.
	storage, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	// Route table:
	//   POST /api/comparisons        → compare two uploaded rosters
	//   GET  /api/comparisons        → list recorded runs
	//   GET  /api/comparisons/{id}   → one recorded run
	//   GET  /api/modes              → available comparison modes
	//   GET  /metrics                → prometheus metrics (if enabled)
	m := metrics.New()
	defaultMode := types.Mode(cfg.Comparator.DefaultMode)

	router := http.NewServeMux()

	router.HandleFunc("POST /api/comparisons", comparison.New(storage, m, comparison.Options{
		DefaultMode:    defaultMode,
		MaxUploadBytes: cfg.HTTPServer.MaxUploadBytes,
	}))
	router.HandleFunc("GET /api/comparisons", comparison.GetList(storage))
	router.HandleFunc("GET /api/comparisons/{id}", comparison.GetByID(storage))
	router.HandleFunc("GET /api/modes", comparison.Modes(defaultMode))
	if cfg.Metrics.Enabled {
		router.Handle("GET "+cfg.Metrics.Path, m.Handler())
	}

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected — we don't want to log it as an error.
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
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
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
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
