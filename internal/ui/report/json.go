// # internal/ui/report/json.go
package report

import (
	"encoding/json"
	"time"

	"typefold/internal/engine/analyze"
	"typefold/internal/shared/version"
)

// jsonReport is the machine-readable run summary, one entry per finding.
type jsonReport struct {
	Tool        string        `json:"tool"`
	Version     string        `json:"version"`
	GeneratedAt time.Time     `json:"generated_at"`
	Files       int           `json:"files"`
	Findings    []jsonFinding `json:"findings"`
}

type jsonFinding struct {
	Path        string     `json:"path"`
	Rule        string     `json:"rule"`
	Declaration string     `json:"declaration"`
	Message     string     `json:"message"`
	Line        int        `json:"line"`
	Column      int        `json:"column"`
	Fixable     bool       `json:"fixable"`
	Edits       []jsonEdit `json:"edits,omitempty"`
}

type jsonEdit struct {
	Start   uint   `json:"start"`
	End     uint   `json:"end"`
	NewText string `json:"new_text"`
}

// GenerateJSON renders all findings as an indented JSON document.
func GenerateJSON(files []FileDiagnostics) ([]byte, error) {
	findings := make([]jsonFinding, 0, TotalDiagnostics(files))
	for _, file := range files {
		for _, diag := range file.Diagnostics {
			findings = append(findings, jsonFinding{
				Path:        file.Path,
				Rule:        diag.RuleID,
				Declaration: diag.DeclarationName,
				Message:     diag.Message,
				Line:        diag.Location.Line,
				Column:      diag.Location.Column,
				Fixable:     diag.Fixable(),
				Edits:       jsonEdits(diag.Edits),
			})
		}
	}

	return json.MarshalIndent(jsonReport{
		Tool:        "typefold",
		Version:     version.Version,
		GeneratedAt: time.Now().UTC(),
		Files:       len(files),
		Findings:    findings,
	}, "", "  ")
}

func jsonEdits(edits []analyze.TextEdit) []jsonEdit {
	out := make([]jsonEdit, 0, len(edits))
	for _, edit := range edits {
		out = append(out, jsonEdit{Start: edit.Range.Start, End: edit.Range.End, NewText: edit.NewText})
	}
	return out
}
