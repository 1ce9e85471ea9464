// # internal/engine/analyze/classify.go
package analyze

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// EligibilityResult pairs a qualifying declaration with its single
// reference. Rewritable is false when the declaration should still be
// reported but no safe textual substitution exists; Annotation is the
// parameter type annotation enclosing the reference.
type EligibilityResult struct {
	Declaration TypeDeclaration
	Reference   TypeReference
	Annotation  *sitter.Node
	Rewritable  bool
}

// Classify consumes the index at end of traversal and returns the eligible
// declarations in recorded order: used exactly once, not exported, and the
// single use sits inside a function parameter's type annotation.
func Classify(idx *UsageIndex) []EligibilityResult {
	results := make([]EligibilityResult, 0)
	for _, decl := range idx.Declarations() {
		if idx.Count(decl.Name) != 1 {
			continue
		}
		// Exported declarations are public API surface; inlining would
		// break importers regardless of local usage count.
		if decl.Exported {
			continue
		}

		ref := idx.References(decl.Name)[0]
		annotation := enclosingParameterAnnotation(ref.Node)
		if annotation == nil {
			continue
		}

		results = append(results, EligibilityResult{
			Declaration: decl,
			Reference:   ref,
			Annotation:  annotation,
			// Safe only when the reference directly is the annotation's
			// type. Nested inside a wrapping type within the annotation,
			// a textual substitution is not well-defined: report the
			// diagnostic, withhold the edit.
			Rewritable: sameNode(ref.Parent, annotation),
		})
	}
	return results
}

// enclosingParameterAnnotation walks the reference's ancestor chain
// outward for the nearest type_annotation attached to a function
// parameter, whether the parameter is a plain identifier or a
// destructuring pattern. Annotations on variables, return types, class
// members, or method/function-type signatures do not qualify.
func enclosingParameterAnnotation(node *sitter.Node) *sitter.Node {
	for current := node.Parent(); current != nil; current = current.Parent() {
		if current.Kind() != kindTypeAnnotation {
			continue
		}
		if isFunctionParameterAnnotation(current) {
			return current
		}
	}
	return nil
}

func isFunctionParameterAnnotation(annotation *sitter.Node) bool {
	param := annotation.Parent()
	if param == nil {
		return false
	}
	switch param.Kind() {
	case kindRequiredParameter, kindOptionalParameter:
	default:
		return false
	}

	params := param.Parent()
	if params == nil || params.Kind() != kindFormalParameters {
		return false
	}

	owner := params.Parent()
	if owner == nil {
		return false
	}
	switch owner.Kind() {
	// Arrow functions bound through a variable declarator are still
	// arrow_function nodes; no extra case needed.
	case kindFunctionDeclaration, kindFunctionExpression, kindFunctionLegacy, kindArrowFunction:
		return true
	}
	return false
}
