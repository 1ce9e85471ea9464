// # internal/engine/analyze/collect.go
package analyze

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Tree-sitter TypeScript node kinds consulted by the engine.
const (
	kindProgram              = "program"
	kindExportStatement      = "export_statement"
	kindTypeAliasDeclaration = "type_alias_declaration"
	kindInterfaceDeclaration = "interface_declaration"
	kindClassDeclaration     = "class_declaration"
	kindAbstractClassDecl    = "abstract_class_declaration"
	kindEnumDeclaration      = "enum_declaration"
	kindTypeIdentifier       = "type_identifier"
	kindTypeParameter        = "type_parameter"
	kindTypeAnnotation       = "type_annotation"
	kindFormalParameters     = "formal_parameters"
	kindRequiredParameter    = "required_parameter"
	kindOptionalParameter    = "optional_parameter"
	kindFunctionDeclaration  = "function_declaration"
	kindFunctionExpression   = "function_expression"
	kindFunctionLegacy       = "function" // pre-0.20 grammar name for function expressions
	kindArrowFunction        = "arrow_function"

	fieldName           = "name"
	fieldValue          = "value"
	fieldBody           = "body"
	fieldTypeParameters = "type_parameters"
)

// Collect runs the single traversal over one file's tree, recording every
// non-generic alias/interface declaration and every occurrence of a name in
// type position. Declarations and references interleave in one DFS pass.
func Collect(root *sitter.Node, source []byte) *UsageIndex {
	idx := NewUsageIndex()
	if root == nil {
		return idx
	}

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		switch node.Kind() {
		case kindTypeAliasDeclaration, kindInterfaceDeclaration:
			recordDeclaration(node, source, idx)
		case kindTypeIdentifier:
			if ref, ok := referenceAt(node, source); ok {
				idx.AddReference(ref)
			}
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}
	walk(root)
	return idx
}

// recordDeclaration records one alias or interface declaration. Generic
// declarations are skipped entirely: inlining one would also require
// inlining its parameterization at the reference, which the engine does
// not attempt, so they are never candidates regardless of usage count.
func recordDeclaration(node *sitter.Node, source []byte, idx *UsageIndex) {
	if node.ChildByFieldName(fieldTypeParameters) != nil {
		return
	}

	nameNode := node.ChildByFieldName(fieldName)
	if nameNode == nil {
		return
	}

	kind := KindAlias
	bodyField := fieldValue
	if node.Kind() == kindInterfaceDeclaration {
		kind = KindInterface
		bodyField = fieldBody
	}
	bodyNode := node.ChildByFieldName(bodyField)
	if bodyNode == nil {
		return
	}

	exported := false
	if parent := node.Parent(); parent != nil && parent.Kind() == kindExportStatement {
		exported = true
	}

	start := node.StartPosition()
	idx.Record(TypeDeclaration{
		Name:           string(source[nameNode.StartByte():nameNode.EndByte()]),
		Kind:           kind,
		Exported:       exported,
		Node:           node,
		StatementRange: nodeRange(topLevelStatement(node)),
		BodyRange:      nodeRange(bodyNode),
		Location:       Location{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
	})
}

// referenceAt decides whether a type_identifier occurrence counts as a use
// of its name in type position. The declared name of an alias, interface,
// class, or enum is not a use, and neither is a declared type parameter.
// Everything else counts, including occurrences nested in generic
// instantiations, unions, tuples, other declarations' bodies, and a
// declaration's own self-reference. Counting every occurrence is what
// makes "used exactly once" exact.
func referenceAt(node *sitter.Node, source []byte) (TypeReference, bool) {
	parent := node.Parent()
	if parent == nil {
		return TypeReference{}, false
	}

	switch parent.Kind() {
	case kindTypeParameter:
		return TypeReference{}, false
	case kindTypeAliasDeclaration, kindInterfaceDeclaration, kindClassDeclaration, kindAbstractClassDecl, kindEnumDeclaration:
		if name := parent.ChildByFieldName(fieldName); name != nil && sameNode(name, node) {
			return TypeReference{}, false
		}
	}

	return TypeReference{
		Name:   string(source[node.StartByte():node.EndByte()]),
		Node:   node,
		Parent: parent,
	}, true
}

// topLevelStatement returns the smallest ancestor of node that sits
// directly under the program node, or node itself when no program
// ancestor exists (detached fragments during tests).
func topLevelStatement(node *sitter.Node) *sitter.Node {
	current := node
	for {
		parent := current.Parent()
		if parent == nil {
			return current
		}
		if parent.Kind() == kindProgram {
			return current
		}
		current = parent
	}
}

// sameNode reports node identity by span and kind. The tree owns its nodes
// top-down; comparing spans avoids relying on pointer identity across
// repeated lookups.
func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}
