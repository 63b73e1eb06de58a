package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/application-tracker/internal/config"
	"github.com/jonathan/application-tracker/internal/logger"
	"github.com/jonathan/application-tracker/internal/observability"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// app carries the configuration and shared services of one CLI invocation
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	printer *observability.Printer
}

var state *app

// flagKeys maps CLI flag names to the config keys they override
var flagKeys = map[string]string{
	"debug":        "log.debug",
	"json":         "log.json",
	"database-url": "database-url",
	"min-score":    "match.min-score",
	"max-results":  "match.max-results",
	"backfill":     "match.backfill",
	"concurrency":  "segment.concurrency",
}

// setup loads configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	v := config.NewViper()

	bindings := make(map[string]*pflag.Flag, len(flagKeys))
	for name, key := range flagKeys {
		bindings[key] = cmd.Flags().Lookup(name)
	}
	if err := config.BindFlags(v, bindings); err != nil {
		return err
	}

	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	state = &app{
		cfg:     cfg,
		logger:  log,
		printer: observability.NewPrinter(os.Stderr),
	}
	return nil
}

// openStore connects to the configured PostgreSQL chunk store.
func (a *app) openStore(ctx context.Context) (*store.Postgres, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required: set --database-url, TRACKER_DATABASE_URL or DATABASE_URL")
	}
	return store.Connect(ctx, a.cfg.DatabaseURL, a.logger)
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}
	jsonOutput = append(jsonOutput, '\n')

	if path == "" {
		_, err := os.Stdout.Write(jsonOutput)
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
