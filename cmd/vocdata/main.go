package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/vocdata/internal/cli"
	"github.com/JonMunkholm/vocdata/internal/config"
	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envLoaded := godotenv.Overload() == nil

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded",
		"env_file", envLoaded,
		"data_dir", cfg.Data.BaseDir,
		"encoding", cfg.Data.Encoding,
		"sink", cfg.Export.Sink,
	)

	if err := cli.Execute(context.Background(), cfg, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
