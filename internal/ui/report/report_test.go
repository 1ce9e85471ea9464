// # internal/ui/report/report_test.go
package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typefold/internal/engine/analyze"
)

func sampleFiles() []FileDiagnostics {
	return []FileDiagnostics{
		{
			Path: "/project/src/handlers.ts",
			Diagnostics: []analyze.Diagnostic{
				{
					RuleID:          analyze.RuleID,
					DeclarationName: "Opts",
					Message:         `type alias "Opts" is used once, as a parameter annotation; inline its body there`,
					Range:           analyze.Range{Start: 0, End: 26},
					Location:        analyze.Location{Line: 1, Column: 1},
					Edits: []analyze.TextEdit{
						{Range: analyze.Range{Start: 0, End: 27}, NewText: ""},
						{Range: analyze.Range{Start: 38, End: 44}, NewText: ": { a: string }"},
					},
				},
				{
					RuleID:          analyze.RuleID,
					DeclarationName: "Wrapped",
					Message:         `type alias "Wrapped" is used once, as a parameter annotation; inline its body there`,
					Range:           analyze.Range{Start: 60, End: 90},
					Location:        analyze.Location{Line: 3, Column: 1},
				},
			},
		},
	}
}

func TestTotals(t *testing.T) {
	files := sampleFiles()
	assert.Equal(t, 2, TotalDiagnostics(files))
	assert.Equal(t, 1, TotalFixable(files))
}

func TestGenerateSARIF(t *testing.T) {
	data, err := GenerateSARIF("/project", sampleFiles())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2.1.0", doc["version"])

	runs := doc["runs"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)

	driver := run["tool"].(map[string]any)["driver"].(map[string]any)
	assert.Equal(t, "typefold", driver["name"])
	rules := driver["rules"].([]any)
	require.Len(t, rules, 1)
	assert.Equal(t, analyze.RuleID, rules[0].(map[string]any)["id"])

	results := run["results"].([]any)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	assert.Equal(t, analyze.RuleID, first["ruleId"])
	fixes := first["fixes"].([]any)
	require.Len(t, fixes, 1)
	changes := fixes[0].(map[string]any)["artifactChanges"].([]any)
	replacements := changes[0].(map[string]any)["replacements"].([]any)
	assert.Len(t, replacements, 2)

	// relative URI, no absolute path leaks
	loc := first["locations"].([]any)[0].(map[string]any)
	uri := loc["physicalLocation"].(map[string]any)["artifactLocation"].(map[string]any)["uri"].(string)
	assert.Equal(t, "src/handlers.ts", uri)

	// unfixable result carries no fixes
	second := results[1].(map[string]any)
	_, hasFixes := second["fixes"]
	assert.False(t, hasFixes)
}

func TestGenerateJSON(t *testing.T) {
	data, err := GenerateJSON(sampleFiles())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "typefold", doc["tool"])
	assert.Equal(t, float64(1), doc["files"])

	findings := doc["findings"].([]any)
	require.Len(t, findings, 2)
	first := findings[0].(map[string]any)
	assert.Equal(t, "Opts", first["declaration"])
	assert.Equal(t, true, first["fixable"])
	second := findings[1].(map[string]any)
	assert.Equal(t, false, second["fixable"])
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleFiles())
	assert.Contains(t, out, "/project/src/handlers.ts:1:1")
	assert.Contains(t, out, "2 finding(s), 1 fixable")
	assert.True(t, strings.HasPrefix(out, "* "), "fixable findings are starred: %q", out)
}

func TestRenderTextEmpty(t *testing.T) {
	out := RenderText(nil)
	assert.Contains(t, out, "no single-use type declarations found")
}
