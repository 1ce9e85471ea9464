// # internal/engine/analyze/usage_test.go
package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageIndexRecordZeroInitializes(t *testing.T) {
	idx := NewUsageIndex()
	idx.Record(TypeDeclaration{Name: "A"})

	assert.Equal(t, 0, idx.Count("A"))
	assert.Empty(t, idx.References("A"))
}

func TestUsageIndexReferenceBeforeDeclaration(t *testing.T) {
	idx := NewUsageIndex()
	idx.AddReference(TypeReference{Name: "A"})
	idx.Record(TypeDeclaration{Name: "A"})

	// Record must not reset a count accumulated before the declaration
	// was reached in the traversal.
	assert.Equal(t, 1, idx.Count("A"))
	assert.Len(t, idx.References("A"), 1)
}

func TestUsageIndexLastDeclarationWins(t *testing.T) {
	idx := NewUsageIndex()
	idx.Record(TypeDeclaration{Name: "A", Kind: KindAlias})
	idx.Record(TypeDeclaration{Name: "A", Kind: KindInterface})

	decls := idx.Declarations()
	assert.Len(t, decls, 1)
	assert.Equal(t, KindInterface, decls[0].Kind)
}

func TestUsageIndexDeclarationOrder(t *testing.T) {
	idx := NewUsageIndex()
	idx.Record(TypeDeclaration{Name: "B"})
	idx.Record(TypeDeclaration{Name: "A"})
	idx.Record(TypeDeclaration{Name: "C"})

	decls := idx.Declarations()
	names := []string{decls[0].Name, decls[1].Name, decls[2].Name}
	assert.Equal(t, []string{"B", "A", "C"}, names)
}

func TestUsageIndexCountMatchesReferenceList(t *testing.T) {
	idx := NewUsageIndex()
	for i := 0; i < 3; i++ {
		idx.AddReference(TypeReference{Name: "X"})
	}

	assert.Equal(t, 3, idx.Count("X"))
	assert.Len(t, idx.References("X"), 3)
}
