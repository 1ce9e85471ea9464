// # internal/ui/report/sarif.go
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"typefold/internal/engine/analyze"
	"typefold/internal/shared/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	CharOffset  int `json:"charOffset,omitempty"`
	CharLength  int `json:"charLength,omitempty"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Replacements     []sarifReplacement    `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion           `json:"deletedRegion"`
	InsertedContent *sarifInsertedContent `json:"insertedContent,omitempty"`
}

type sarifInsertedContent struct {
	Text string `json:"text"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from analysis results.
// All file URIs are made relative to projectRoot; absolute paths are never
// included so that reports are safe to share.
func GenerateSARIF(projectRoot string, files []FileDiagnostics) ([]byte, error) {
	results := make([]sarifResult, 0)

	for _, file := range files {
		uri := relativeURI(projectRoot, file.Path)
		artifact := sarifArtifactLocation{URI: uri, URIBaseID: "%SRCROOT%"}

		for _, diag := range file.Diagnostics {
			result := sarifResult{
				RuleID:  diag.RuleID,
				Level:   "warning",
				Message: sarifMessage{Text: diag.Message},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: artifact,
						Region: &sarifRegion{
							StartLine:   diag.Location.Line,
							StartColumn: diag.Location.Column,
						},
					},
				}},
			}
			if diag.Fixable() {
				result.Fixes = []sarifFix{{
					Description: sarifMessage{
						Text: fmt.Sprintf("Inline type %q at its parameter annotation", diag.DeclarationName),
					},
					ArtifactChanges: []sarifArtifactChange{{
						ArtifactLocation: artifact,
						Replacements:     replacementsFromEdits(diag.Edits),
					}},
				}}
			}
			results = append(results, result)
		}
	}

	rules := []sarifRule{}
	if len(results) > 0 {
		rules = append(rules, sarifRule{
			ID:               analyze.RuleID,
			Name:             "SingleUseTypeDeclaration",
			ShortDescription: sarifMessage{Text: "A named type declaration is used exactly once, as a function parameter annotation."},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
		})
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "typefold",
						Version: version.Version,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

func replacementsFromEdits(edits []analyze.TextEdit) []sarifReplacement {
	out := make([]sarifReplacement, 0, len(edits))
	for _, edit := range edits {
		rep := sarifReplacement{
			DeletedRegion: sarifRegion{
				CharOffset: int(edit.Range.Start),
				CharLength: int(edit.Range.End - edit.Range.Start),
			},
		}
		if edit.NewText != "" {
			rep.InsertedContent = &sarifInsertedContent{Text: edit.NewText}
		}
		out = append(out, rep)
	}
	return out
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	// SARIF URIs use forward slashes.
	return filepath.ToSlash(filePath)
}
