// # internal/engine/analyze/analyze.go
//
// Single-pass analysis of one TypeScript file: find named, non-generic,
// non-exported type declarations whose only use is a function parameter's
// type annotation, and propose inlining the declaration body there.
package analyze

import (
	"fmt"
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// RuleID identifies the single rule this engine implements.
const RuleID = "TF001"

// Analyze is a pure function from (tree, text) to diagnostics: one
// traversal builds the usage index, classification consumes it, and the
// rewriter attaches edits where the reference context is safe. Failure to
// compute a fix for one declaration never aborts the rest of the file.
func Analyze(root *sitter.Node, source []byte) []Diagnostic {
	idx := Collect(root, source)
	results := Classify(idx)

	diagnostics := make([]Diagnostic, 0, len(results))
	for _, res := range results {
		decl := res.Declaration
		diag := Diagnostic{
			RuleID:          RuleID,
			DeclarationName: decl.Name,
			Message: fmt.Sprintf("type %s %q is used once, as a parameter annotation; inline its body there",
				decl.Kind, decl.Name),
			Range:    nodeRange(decl.Node),
			Location: decl.Location,
		}
		if res.Rewritable {
			diag.Edits = ComputeEdits(res, source)
		}
		diagnostics = append(diagnostics, diag)
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		return diagnostics[i].Range.Start < diagnostics[j].Range.Start
	})
	return diagnostics
}
