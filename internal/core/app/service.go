// # internal/core/app/service.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"typefold/internal/core/errors"
	"typefold/internal/core/watcher"
	"typefold/internal/data/history"
	"typefold/internal/shared/observability"
	"typefold/internal/ui/report"

	"go.opentelemetry.io/otel/trace"
)

// ScanResult summarizes one full pass over the project.
type ScanResult struct {
	Files        []report.FileDiagnostics
	FilesScanned int
	FixesApplied int
	Duration     time.Duration
	Warnings     []string
}

// RunScan performs one full analysis pass: discover files, analyze each,
// optionally apply fixes, write reports, and record the run. Per-file
// failures become warnings, never a failed run.
func (a *App) RunScan(ctx context.Context, applyFixes bool) (ScanResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.RunScan", trace.WithAttributes())
	defer span.End()

	if err := ctx.Err(); err != nil {
		return ScanResult{}, err
	}

	start := time.Now()
	warnings := make([]string, 0)

	paths := normalizeScanPaths(a.Config.WatchPaths, a.Root)
	files, err := a.ScanDirectories(paths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return ScanResult{}, errors.AddContext(err, errors.CtxOperation, "scan_directories")
	}

	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			return ScanResult{}, err
		}
		if _, err := a.ProcessFile(filePath); err != nil {
			warnings = append(warnings, fmt.Sprintf("process file %s: %v", filePath, err))
		}
	}

	results := a.CurrentResults()

	fixesApplied := 0
	if applyFixes || a.Config.Fix.Enabled {
		applied, err := a.ApplyFixes(results)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("apply fixes: %v", err))
		}
		fixesApplied = applied
	}

	if err := a.GenerateOutputs(results); err != nil {
		warnings = append(warnings, fmt.Sprintf("generate outputs: %v", err))
	}

	result := ScanResult{
		Files:        results,
		FilesScanned: len(files),
		FixesApplied: fixesApplied,
		Duration:     time.Since(start),
		Warnings:     warnings,
	}

	a.recordRun(result)
	return result, nil
}

func (a *App) recordRun(result ScanResult) {
	if a.store == nil {
		return
	}
	runID, err := a.store.SaveRun(history.Run{
		FilesScanned: result.FilesScanned,
		Diagnostics:  report.TotalDiagnostics(result.Files),
		Fixable:      report.TotalFixable(result.Files),
		FixesApplied: result.FixesApplied,
		Duration:     result.Duration,
	})
	if err != nil {
		slog.Warn("failed to record run history", "error", err)
		return
	}
	slog.Debug("recorded run history", "run_id", runID)
}

// StartWatcher begins watching the configured paths. Each debounced batch
// of changed files is re-analyzed and pushed to the update handler.
func (a *App) StartWatcher(ctx context.Context) error {
	if a.watcher != nil {
		return errors.New(errors.CodeConflict, "watcher already started")
	}

	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		func(paths []string) { a.onFilesChanged(ctx, paths) },
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "create watcher")
	}
	a.watcher = w

	watchPaths := normalizeScanPaths(a.Config.WatchPaths, a.Root)
	if err := w.Watch(watchPaths); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "start watcher")
	}

	slog.Info("watching for changes", "paths", watchPaths, "debounce", a.Config.Watch.Debounce)
	return nil
}

func (a *App) onFilesChanged(ctx context.Context, paths []string) {
	if ctx.Err() != nil {
		return
	}
	// Event storms (branch switches, generated trees) get dropped rather
	// than queued without bound.
	if !a.limiter.Allow(len(paths)) {
		slog.Warn("dropping change batch, rate limit exceeded", "files", len(paths))
		return
	}

	for _, path := range paths {
		if _, err := a.ProcessFile(path); err != nil {
			if errors.IsCode(err, errors.CodeNotSupported) {
				continue
			}
			slog.Warn("failed to process changed file", "path", path, "error", err)
		}
	}

	results := a.CurrentResults()

	if a.Config.Fix.Enabled {
		if _, err := a.ApplyFixes(results); err != nil {
			slog.Warn("failed to apply fixes", "error", err)
		}
	}
	if err := a.GenerateOutputs(results); err != nil {
		slog.Warn("failed to write outputs", "error", err)
	}

	update := Update{Files: results, GeneratedAt: time.Now()}
	a.updateMu.Lock()
	handler := a.updateHandler
	a.updateMu.Unlock()
	if handler != nil {
		handler(update)
	}
}

// SetUpdateHandler registers the callback invoked after each rescan.
func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.updateHandler = handler
}

// HealthStatus is served by the observability endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Watcher bool   `json:"watcher"`
	History bool   `json:"history"`
}

func (a *App) Health(ctx context.Context) HealthStatus {
	_ = ctx
	return HealthStatus{
		Status:  "up",
		Watcher: a.watcher != nil,
		History: a.store != nil,
	}
}

func normalizeScanPaths(paths []string, root string) []string {
	cleaned := make([]string, 0, len(paths))
	seen := make(map[string]bool)
	for _, p := range paths {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		if !filepath.IsAbs(trimmed) {
			trimmed = filepath.Join(root, trimmed)
		}
		abs := filepath.Clean(trimmed)
		if seen[abs] {
			continue
		}
		seen[abs] = true
		cleaned = append(cleaned, abs)
	}
	return cleaned
}
