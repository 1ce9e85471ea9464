// # cmd/typefold/summary.go
package main

import (
	"fmt"
	"time"

	"typefold/internal/core/app"
	"typefold/internal/ui/report"
)

func printSummary(result app.ScanResult) {
	fmt.Print(report.RenderText(result.Files))
	fmt.Printf("scanned %d file(s) in %v", result.FilesScanned, result.Duration.Round(time.Millisecond))
	if result.FixesApplied > 0 {
		fmt.Printf(", applied %d fix(es)", result.FixesApplied)
	}
	fmt.Println()
}
