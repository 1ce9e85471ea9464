// # cmd/typefold/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"typefold/internal/core/app"
	"typefold/internal/core/config"
	"typefold/internal/shared/observability"
	"typefold/internal/shared/version"
)

var (
	configPath = flag.String("config", "./typefold.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run single scan and exit")
	fix        = flag.Bool("fix", false, "Apply fixes to source files")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	printVer   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *printVer {
		fmt.Printf("typefold %s\n", version.Version)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); err == nil {
			output = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config; a missing default file falls back to built-in defaults.
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./typefold.toml" && os.IsNotExist(err) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.WatchPaths = []string{flag.Arg(0)}
	}

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing(ctx)

	root, _ := os.Getwd()
	application, err := app.New(cfg, root)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if cfg.Observability.MetricsAddr != "" {
		server := observability.NewServer(cfg.Observability.MetricsAddr, func(ctx context.Context) any {
			return application.Health(ctx)
		})
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer server.Stop(ctx)
	}

	// Initial scan
	result, err := application.RunScan(ctx, *fix)
	if err != nil {
		slog.Error("initial scan failed", "error", err)
		os.Exit(1)
	}
	for _, warning := range result.Warnings {
		slog.Warn(warning)
	}

	if !*ui {
		printSummary(result)
	}

	if *once {
		os.Exit(0)
	}

	// Watch mode
	if err := application.StartWatcher(ctx); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := runUI(application, result); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "typefold", "typefold.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "typefold", "typefold.log")
	}

	return "typefold.log"
}
