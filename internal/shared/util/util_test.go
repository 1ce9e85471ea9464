package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizePatternPath(t *testing.T) {
	cases := map[string]string{
		"./src/app":   "src/app",
		"src\\app":    "src/app",
		" src/app ":   "src/app",
		".":           "",
		"src/../lib":  "lib",
		"src//nested": "src/nested",
	}
	for input, want := range cases {
		if got := NormalizePatternPath(input); got != want {
			t.Errorf("NormalizePatternPath(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestHasPathPrefix(t *testing.T) {
	if !HasPathPrefix("src/app/main.ts", "src/app") {
		t.Errorf("expected prefix match")
	}
	if HasPathPrefix("src/application/main.ts", "src/app") {
		t.Errorf("partial segment must not match")
	}
	if !HasPathPrefix("src", "src") {
		t.Errorf("equal paths must match")
	}
}

func TestIsTypeScriptFile(t *testing.T) {
	yes := []string{"a.ts", "a.tsx", "a.mts", "a.cts", "dir/b.TS"}
	for _, p := range yes {
		if !IsTypeScriptFile(p) {
			t.Errorf("expected %q to be a TypeScript file", p)
		}
	}

	no := []string{"a.js", "a.d.ts", "a.json", "a", "a.ts.bak"}
	for _, p := range no {
		if IsTypeScriptFile(p) {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}

func TestSortedStringKeys(t *testing.T) {
	keys := SortedStringKeys(map[string]int{"b": 1, "a": 2, "c": 3})
	want := []string{"a", "b", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}
}

func TestWriteFileWithDirs(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "deep", "out.json")
	if err := WriteFileWithDirs(target, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFileWithDirs failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("unexpected content: %q", data)
	}
}
