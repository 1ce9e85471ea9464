// # internal/core/app/app.go
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"typefold/internal/core/config"
	"typefold/internal/core/errors"
	"typefold/internal/core/watcher"
	"typefold/internal/data/history"
	"typefold/internal/engine/analyze"
	"typefold/internal/engine/parser"
	"typefold/internal/shared/observability"
	"typefold/internal/shared/util"
	"typefold/internal/ui/report"

	"github.com/gobwas/glob"
)

// App wires the parser, analyzer, watcher and stores together. One App
// serves one project root for the lifetime of the process.
type App struct {
	Config  *config.Config
	Root    string
	parser  *parser.Parser
	store   *history.Store
	watcher *watcher.Watcher
	limiter *util.Limiter

	resultsMu sync.Mutex
	results   map[string][]analyze.Diagnostic

	updateMu      sync.Mutex
	updateHandler func(Update)
}

// Update is pushed to subscribers after each watch-triggered rescan.
type Update struct {
	Files       []report.FileDiagnostics
	GeneratedAt time.Time
}

func New(cfg *config.Config, root string) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err == nil {
		root = abs
	}

	a := &App{
		Config:  cfg,
		Root:    root,
		parser:  parser.NewParser(parser.NewGrammarLoader(), cfg.Limits.MaxFileSize),
		limiter: util.NewLimiter(cfg.Limits.EventsPerSecond, cfg.Limits.EventBurst),
		results: make(map[string][]analyze.Diagnostic),
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "open history store")
		}
		a.store = store
	}

	return a, nil
}

func (a *App) Close() error {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	return a.store.Close()
}

// ScanDirectories walks the given roots and returns every analyzable
// TypeScript file, honoring the configured exclude globs.
func (a *App) ScanDirectories(paths, excludeDirs, excludeFiles []string) ([]string, error) {
	compiledDirs, err := compileGlobs(excludeDirs)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "compile exclude.dirs")
	}
	compiledFiles, err := compileGlobs(excludeFiles)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "compile exclude.files")
	}

	files := make([]string, 0)
	for _, root := range paths {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if info.IsDir() {
				if matchAny(compiledDirs, base) {
					return filepath.SkipDir
				}
				return nil
			}
			if !a.parser.IsSupportedPath(path) || a.parser.IsTestFile(path) {
				return nil
			}
			if matchAny(compiledFiles, base) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeInternal, "walk directory"), errors.CtxPath, root)
		}
	}
	return files, nil
}

// ProcessFile parses and analyzes one file, stores the diagnostics, and
// returns them. Parse failures clear any stale result for the path.
func (a *App) ProcessFile(path string) ([]analyze.Diagnostic, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		a.clearResult(path)
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeInternal, "read file"), errors.CtxPath, path)
	}

	start := time.Now()
	parsed, err := a.parser.ParseFile(path, content)
	if err != nil {
		a.clearResult(path)
		return nil, err
	}
	defer parsed.Close()
	observability.ParsingDuration.WithLabelValues(parsed.Language).Observe(time.Since(start).Seconds())

	diagnostics := analyze.Analyze(parsed.Root, parsed.Source)
	observability.FilesAnalyzedTotal.Inc()
	for _, d := range diagnostics {
		observability.DiagnosticsTotal.WithLabelValues(strconv.FormatBool(d.Fixable())).Inc()
	}

	a.resultsMu.Lock()
	a.results[path] = diagnostics
	a.resultsMu.Unlock()

	return diagnostics, nil
}

func (a *App) clearResult(path string) {
	a.resultsMu.Lock()
	delete(a.results, path)
	a.resultsMu.Unlock()
}

// CurrentResults snapshots all stored diagnostics in path order.
func (a *App) CurrentResults() []report.FileDiagnostics {
	a.resultsMu.Lock()
	defer a.resultsMu.Unlock()

	out := make([]report.FileDiagnostics, 0, len(a.results))
	for _, path := range util.SortedStringKeys(a.results) {
		diags := a.results[path]
		if len(diags) == 0 {
			continue
		}
		out = append(out, report.FileDiagnostics{
			Path:        path,
			Diagnostics: append([]analyze.Diagnostic(nil), diags...),
		})
	}
	return out
}

// ApplyFixes rewrites each file that has fixable diagnostics and returns
// the number of fixes written. One failing file does not stop the rest.
func (a *App) ApplyFixes(files []report.FileDiagnostics) (int, error) {
	applied := 0
	var firstErr error

	for _, file := range files {
		edits := make([]analyze.TextEdit, 0)
		fixes := 0
		for _, diag := range file.Diagnostics {
			if diag.Fixable() {
				edits = append(edits, diag.Edits...)
				fixes++
			}
		}
		if fixes == 0 {
			continue
		}

		source, err := os.ReadFile(file.Path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		rewritten, err := analyze.ApplyEdits(source, edits)
		if err != nil {
			// Overlapping fixes within one file; apply nothing rather than
			// guess, the next run re-derives the survivors.
			slog.Warn("skipping fixes for file", "path", file.Path, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if a.Config.Fix.Backup {
			if err := os.WriteFile(file.Path+".orig", source, 0o644); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		}
		if err := os.WriteFile(file.Path, rewritten, 0o644); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		applied += fixes
		for i := 0; i < fixes; i++ {
			observability.FixesAppliedTotal.Inc()
		}
		slog.Info("applied fixes", "path", file.Path, "count", fixes)
	}

	return applied, firstErr
}

// GenerateOutputs writes the configured SARIF and JSON reports.
func (a *App) GenerateOutputs(files []report.FileDiagnostics) error {
	if target := strings.TrimSpace(a.Config.Output.SARIF); target != "" {
		data, err := report.GenerateSARIF(a.Root, files)
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "generate sarif")
		}
		if err := util.WriteFileWithDirs(target, data, 0o644); err != nil {
			return errors.AddContext(
				errors.Wrap(err, errors.CodeInternal, "write sarif"), errors.CtxPath, target)
		}
	}

	if target := strings.TrimSpace(a.Config.Output.JSON); target != "" {
		data, err := report.GenerateJSON(files)
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "generate json")
		}
		if err := util.WriteFileWithDirs(target, data, 0o644); err != nil {
			return errors.AddContext(
				errors.Wrap(err, errors.CodeInternal, "write json"), errors.CtxPath, target)
		}
	}

	return nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(util.NormalizePatternPath(pattern))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, value string) bool {
	for _, g := range globs {
		if g.Match(value) {
			return true
		}
	}
	return false
}
