// # internal/engine/analyze/rewrite.go
package analyze

import (
	"sort"

	"typefold/internal/core/errors"
)

// ComputeEdits builds the two-edit fix for a rewritable result: delete the
// declaration's program-level statement (plus at most one trailing line
// terminator) and replace the parameter's type annotation with the
// declaration's body text. Returns nil when either edit cannot be
// computed; the caller still reports the diagnostic without a fix.
func ComputeEdits(res EligibilityResult, source []byte) []TextEdit {
	if !res.Rewritable || res.Annotation == nil {
		return nil
	}

	body := res.Declaration.BodyRange
	if body.Start >= body.End || body.End > uint(len(source)) {
		return nil
	}

	stmt := res.Declaration.StatementRange
	if stmt.End > uint(len(source)) || stmt.Start >= stmt.End {
		return nil
	}
	stmt.End = trimOneLineTerminator(source, stmt.End)

	annotation := nodeRange(res.Annotation)
	if annotation.End > uint(len(source)) {
		return nil
	}
	// The annotation lives outside the deleted statement; anything else
	// means the reference context was misclassified, so emit no edit.
	if annotation.Start < stmt.End && stmt.Start < annotation.End {
		return nil
	}

	// Range-based slicing, not re-serialization: interior comments and doc
	// annotations in the body survive verbatim.
	bodyText := string(source[body.Start:body.End])

	return []TextEdit{
		{Range: stmt, NewText: ""},
		{Range: annotation, NewText: ": " + bodyText},
	}
}

// trimOneLineTerminator extends end past a single trailing line
// terminator, handling both two-character and single-character
// conventions, so deleting a statement does not leave a blank line.
func trimOneLineTerminator(source []byte, end uint) uint {
	n := uint(len(source))
	if end+1 < n && source[end] == '\r' && source[end+1] == '\n' {
		return end + 2
	}
	if end < n && (source[end] == '\n' || source[end] == '\r') {
		return end + 1
	}
	return end
}

// ApplyEdits applies non-overlapping edits to source in one pass over the
// original text and returns the rewritten bytes. Edits may arrive in any
// order; overlapping or out-of-bounds ranges are rejected.
func ApplyEdits(source []byte, edits []TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		return append([]byte(nil), source...), nil
	}

	sorted := append([]TextEdit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Range.Start < sorted[j].Range.Start })

	for i, edit := range sorted {
		if edit.Range.Start > edit.Range.End || edit.Range.End > uint(len(source)) {
			return nil, errors.New(errors.CodeValidationError, "edit range out of bounds")
		}
		if i > 0 && edit.Range.Start < sorted[i-1].Range.End {
			return nil, errors.New(errors.CodeConflict, "overlapping edit ranges")
		}
	}

	out := make([]byte, 0, len(source))
	cursor := uint(0)
	for _, edit := range sorted {
		out = append(out, source[cursor:edit.Range.Start]...)
		out = append(out, edit.NewText...)
		cursor = edit.Range.End
	}
	out = append(out, source[cursor:]...)
	return out, nil
}
