// # internal/engine/analyze/types.go
package analyze

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// DeclKind distinguishes the two declaration shapes the engine records.
type DeclKind int

const (
	KindAlias DeclKind = iota
	KindInterface
)

func (k DeclKind) String() string {
	if k == KindInterface {
		return "interface"
	}
	return "alias"
}

// Range is a half-open [Start, End) byte span into the source text.
type Range struct {
	Start uint
	End   uint
}

func nodeRange(node *sitter.Node) Range {
	return Range{Start: node.StartByte(), End: node.EndByte()}
}

// Location carries the 1-based line/column of a range start, for reporting.
type Location struct {
	Line   int
	Column int
}

// TypeDeclaration is one recorded named type declaration. Immutable once
// recorded; StatementRange covers the enclosing program-level statement,
// BodyRange the alias right-hand type or the interface member block.
type TypeDeclaration struct {
	Name           string
	Kind           DeclKind
	Exported       bool
	Node           *sitter.Node
	StatementRange Range
	BodyRange      Range
	Location       Location
}

// TypeReference is one syntactic occurrence of a name in type position.
// The parent node is kept so the classifier can tell a direct annotation
// type from a nested sub-expression without re-walking the tree.
type TypeReference struct {
	Name   string
	Node   *sitter.Node
	Parent *sitter.Node
}

// TextEdit replaces Range with NewText. Edits produced for one diagnostic
// never overlap and apply in a single pass over the original text.
type TextEdit struct {
	Range   Range
	NewText string
}

// Diagnostic is one finding: a single-use declaration that should be
// inlined at its only reference. Edits is nil when the reference context
// is not safe to rewrite automatically.
type Diagnostic struct {
	RuleID          string
	DeclarationName string
	Message         string
	Range           Range
	Location        Location
	Edits           []TextEdit
}

// Fixable reports whether the diagnostic carries an automatic fix.
func (d Diagnostic) Fixable() bool { return len(d.Edits) > 0 }
