// # internal/ui/report/report.go
package report

import (
	"typefold/internal/engine/analyze"
)

// FileDiagnostics groups one file's findings for the output formatters.
type FileDiagnostics struct {
	Path        string
	Diagnostics []analyze.Diagnostic
}

// TotalDiagnostics counts findings across all files.
func TotalDiagnostics(files []FileDiagnostics) int {
	total := 0
	for _, f := range files {
		total += len(f.Diagnostics)
	}
	return total
}

// TotalFixable counts findings that carry an automatic fix.
func TotalFixable(files []FileDiagnostics) int {
	total := 0
	for _, f := range files {
		for _, d := range f.Diagnostics {
			if d.Fixable() {
				total++
			}
		}
	}
	return total
}
