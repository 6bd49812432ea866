// Package main implements the entry point for the ClassPlay API server, which
// serves teachers' classes and saved resources and generates school content
// with language models.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/classplay/classplay-api/internal/config"
	"github.com/classplay/classplay-api/internal/platform/logger"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run database migrations: up, down, status or version")
	seed := flag.Bool("seed", false, "Create the demo accounts and classes when absent")
	flag.Parse()

	if err := run(*migrateCmd, *seed); err != nil {
		slog.Error("classplay-api failed", "error", err)
		os.Exit(1)
	}
}

// run loads configuration and either executes a one-off command or serves
// HTTP until SIGINT or SIGTERM.
func run(migrateCmd string, seed bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database connection", "error", err)
		}
	}()

	switch {
	case migrateCmd != "":
		return runMigrations(ctx, db, migrateCmd, log)
	case seed:
		return seedDemoData(ctx, db, log)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
