// # internal/engine/analyze/rewrite_test.go
package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typefold/internal/core/errors"
)

func TestApplyEditsNoEditsCopies(t *testing.T) {
	source := []byte("unchanged")
	out, err := ApplyEdits(source, nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", string(out))

	// the returned slice is a copy
	out[0] = 'X'
	assert.Equal(t, "unchanged", string(source))
}

func TestApplyEditsSingleReplacement(t *testing.T) {
	out, err := ApplyEdits([]byte("abc def"), []TextEdit{
		{Range: Range{Start: 4, End: 7}, NewText: "xyz"},
	})
	require.NoError(t, err)
	assert.Equal(t, "abc xyz", string(out))
}

func TestApplyEditsUnsortedInput(t *testing.T) {
	out, err := ApplyEdits([]byte("abc def ghi"), []TextEdit{
		{Range: Range{Start: 8, End: 11}, NewText: "3"},
		{Range: Range{Start: 0, End: 3}, NewText: "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1 def 3", string(out))
}

func TestApplyEditsOutOfBounds(t *testing.T) {
	_, err := ApplyEdits([]byte("short"), []TextEdit{
		{Range: Range{Start: 2, End: 99}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestApplyEditsOverlapRejected(t *testing.T) {
	_, err := ApplyEdits([]byte("abcdefgh"), []TextEdit{
		{Range: Range{Start: 0, End: 4}, NewText: ""},
		{Range: Range{Start: 2, End: 6}, NewText: ""},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConflict))
}

func TestTrimOneLineTerminator(t *testing.T) {
	assert.Equal(t, uint(5), trimOneLineTerminator([]byte("abcd\nrest"), 4))
	assert.Equal(t, uint(6), trimOneLineTerminator([]byte("abcd\r\nrest"), 4))
	assert.Equal(t, uint(5), trimOneLineTerminator([]byte("abcd\rrest"), 4))
	// only one terminator is consumed
	assert.Equal(t, uint(5), trimOneLineTerminator([]byte("abcd\n\nrest"), 4))
	// nothing to trim at end of input
	assert.Equal(t, uint(4), trimOneLineTerminator([]byte("abcd"), 4))
}

func TestComputeEditsNotRewritable(t *testing.T) {
	res := EligibilityResult{Rewritable: false}
	assert.Nil(t, ComputeEdits(res, []byte("type X = 1;")))
}
