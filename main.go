package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/joho/godotenv"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	shouldInitSchema := flag.Bool("init-schema", false, "Whether to create tables and notify triggers on startup")
	shouldRelist := flag.Bool("relist", false, "Run one relist pass and exit")
	flag.Parse()

	// Secrets may live in a .env file; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", slog.Any("error", err))
	}

	cfg, err := merchant.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(logger.Options{
		Level:      cfg.Log.Level,
		AddSource:  cfg.Log.AddSource,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})))

	slog.Info("Starting skinmerchant",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := merchant.New(*cfg, version, commit)

	setupCtx, setupCancel := context.WithTimeout(ctx, 2*time.Minute)
	err = m.Setup(setupCtx)
	setupCancel()
	if err != nil {
		slog.Error("Failed to set up merchant", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		m.Close(closeCtx)
	}()

	if *shouldInitSchema {
		slog.Info("Initializing database schema...")
		if err := m.DB.InitializeSchema(ctx); err != nil {
			slog.Error("Failed to initialize database schema", slog.String("type", "db"), slog.Any("error", err))
			return
		}
		slog.Info("Database schema initialized successfully")
	}

	if *shouldRelist {
		edited, err := m.Relist(ctx)
		if err != nil {
			slog.Error("Relist failed", slog.String("type", "market"), slog.Any("error", err))
			return
		}
		slog.Info("Relist finished", slog.String("type", "market"), slog.Int("edited", edited))
		return
	}

	if err := m.Run(ctx); err != nil {
		slog.Error("Merchant stopped with error", slog.String("type", "sys"), slog.Any("error", err))
		return
	}
	slog.Info("Shutting down merchant...")
}
