// # internal/core/config/config_test.go
package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestLoad(t *testing.T) {
	content := `
watch_paths = ["./src"]

[exclude]
dirs = [".git", "node_modules"]
files = ["*.gen.ts"]

[watch]
debounce = "1s"

[fix]
enabled = true
backup = true

[output]
sarif = "out/typefold.sarif"
json = "out/typefold.json"

[history]
enabled = true
path = "data/typefold.db"

[observability]
metrics_addr = "127.0.0.1:9203"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.WatchPaths) != 1 || cfg.WatchPaths[0] != "./src" {
		t.Errorf("unexpected watch paths: %v", cfg.WatchPaths)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected 1s debounce, got %v", cfg.Watch.Debounce)
	}
	if !cfg.Fix.Enabled || !cfg.Fix.Backup {
		t.Errorf("fix settings not applied: %+v", cfg.Fix)
	}
	if cfg.Output.SARIF != "out/typefold.sarif" {
		t.Errorf("unexpected sarif output: %q", cfg.Output.SARIF)
	}
	if !cfg.History.Enabled || cfg.History.Path != "data/typefold.db" {
		t.Errorf("history settings not applied: %+v", cfg.History)
	}
	if cfg.Observability.MetricsAddr != "127.0.0.1:9203" {
		t.Errorf("unexpected metrics addr: %q", cfg.Observability.MetricsAddr)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if len(cfg.WatchPaths) != 1 || cfg.WatchPaths[0] != "." {
		t.Errorf("unexpected default watch paths: %v", cfg.WatchPaths)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("unexpected default debounce: %v", cfg.Watch.Debounce)
	}
	if cfg.History.Path != "typefold.db" {
		t.Errorf("unexpected default history path: %q", cfg.History.Path)
	}
	if cfg.History.BusyTimeout != 5*time.Second {
		t.Errorf("unexpected default busy timeout: %v", cfg.History.BusyTimeout)
	}
	if cfg.Limits.MaxFileSize != 10*1024*1024 {
		t.Errorf("unexpected default max file size: %d", cfg.Limits.MaxFileSize)
	}

	foundNodeModules := false
	for _, dir := range cfg.Exclude.Dirs {
		if dir == "node_modules" {
			foundNodeModules = true
		}
	}
	if !foundNodeModules {
		t.Errorf("expected node_modules in default exclude dirs, got %v", cfg.Exclude.Dirs)
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	_, err := Load(writeConfig(t, "version = 99\n"))
	if err == nil || !strings.Contains(err.Error(), "unsupported config version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestLoadRejectsOversizeLimit(t *testing.T) {
	_, err := Load(writeConfig(t, "[limits]\nmax_file_size = 999999999999\n"))
	if err == nil || !strings.Contains(err.Error(), "max_file_size") {
		t.Fatalf("expected limit error, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Limits.EventsPerSecond <= 0 || cfg.Limits.EventBurst <= 0 {
		t.Errorf("limiter defaults missing: %+v", cfg.Limits)
	}
}
