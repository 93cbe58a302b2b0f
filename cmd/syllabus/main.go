package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/syllabus/internal/cli"
	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/metrics"
	"github.com/alexanderramin/syllabus/internal/reminder"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	m := metrics.New()
	observers := service.Observers{
		service.NewLogObserver(logger),
		service.NewMetricsObserver(m),
	}

	tracker := service.NewTracker(repository.NewSQLiteBlobStore(database),
		service.WithStorageKey(cfg.StorageKey),
		service.WithObserver(observers),
		service.WithLogger(logger),
	)
	ctx := context.Background()
	tracker.Load(ctx)

	uow := db.NewSQLiteUnitOfWork(database)

	// Prompts and the TUI need a terminal on both ends.
	interactive := (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		isatty.IsTerminal(os.Stdout.Fd())

	app := &cli.App{
		Tracker:     tracker,
		Backup:      service.NewBackupService(tracker, uow, cfg.SnapshotKeep, observers),
		Notifier:    reminder.NewTerminalNotifier(os.Stdout, cfg.Notifications),
		Metrics:     m,
		Config:      cfg,
		Logger:      logger,
		Interactive: interactive,
	}

	err = cli.NewRootCmd(app).ExecuteContext(ctx)

	if cfg.MetricsFile != "" {
		if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Warn("writing metrics textfile failed", "path", cfg.MetricsFile, "error", werr)
		}
	}
	return err
}

// openLogger writes structured logs to the configured file. Logging is
// dropped when the file cannot be opened; it never goes to the terminal.
func openLogger(cfg config.Config) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	return slog.New(slog.NewJSONHandler(f, opts)), func() { _ = f.Close() }
}
