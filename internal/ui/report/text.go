// # internal/ui/report/text.go
package report

import (
	"fmt"
	"strings"
)

// RenderText prints the human-readable run summary used by the CLI.
func RenderText(files []FileDiagnostics) string {
	var b strings.Builder

	for _, file := range files {
		for _, diag := range file.Diagnostics {
			marker := " "
			if diag.Fixable() {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s %s:%d:%d %s %s\n",
				marker, file.Path, diag.Location.Line, diag.Location.Column, diag.RuleID, diag.Message)
		}
	}

	total := TotalDiagnostics(files)
	fixable := TotalFixable(files)
	if total == 0 {
		b.WriteString("no single-use type declarations found\n")
	} else {
		fmt.Fprintf(&b, "\n%d finding(s), %d fixable (*)\n", total, fixable)
	}
	return b.String()
}
