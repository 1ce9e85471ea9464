// # internal/engine/parser/parser_test.go
package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typefold/internal/core/errors"
)

func newTestParser() *Parser {
	return NewParser(NewGrammarLoader(), 1024*1024)
}

func TestDetectLanguage(t *testing.T) {
	p := newTestParser()

	assert.Equal(t, "typescript", p.GetLanguage("src/app.ts"))
	assert.Equal(t, "typescript", p.GetLanguage("src/app.mts"))
	assert.Equal(t, "typescript", p.GetLanguage("src/app.cts"))
	assert.Equal(t, "tsx", p.GetLanguage("src/App.tsx"))
	assert.Equal(t, "", p.GetLanguage("src/app.js"))
	assert.Equal(t, "", p.GetLanguage("src/app.d.ts"))
}

func TestIsTestFile(t *testing.T) {
	p := newTestParser()

	assert.True(t, p.IsTestFile("src/app.test.ts"))
	assert.True(t, p.IsTestFile("src/App.spec.tsx"))
	assert.False(t, p.IsTestFile("src/app.ts"))
}

func TestParseFile(t *testing.T) {
	p := newTestParser()

	parsed, err := p.ParseFile("app.ts", []byte("type A = string;\n"))
	require.NoError(t, err)
	defer parsed.Close()

	assert.Equal(t, "typescript", parsed.Language)
	assert.Equal(t, "program", parsed.Root.Kind())
	assert.False(t, parsed.Root.HasError())
}

func TestParseFileTSX(t *testing.T) {
	p := newTestParser()

	parsed, err := p.ParseFile("App.tsx", []byte("const x = <div>hello</div>;\n"))
	require.NoError(t, err)
	defer parsed.Close()

	assert.Equal(t, "tsx", parsed.Language)
	assert.False(t, parsed.Root.HasError())
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	p := newTestParser()

	_, err := p.ParseFile("styles.css", []byte("body {}"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotSupported))
}

func TestParseFileSizeLimit(t *testing.T) {
	p := NewParser(NewGrammarLoader(), 16)

	_, err := p.ParseFile("big.ts", []byte(strings.Repeat("x", 64)))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestParseFileRecoversFromSyntaxErrors(t *testing.T) {
	p := newTestParser()

	parsed, err := p.ParseFile("broken.ts", []byte("type A = {;\nfunction f( {\n"))
	require.NoError(t, err)
	defer parsed.Close()

	// A broken region is still a tree; analysis degrades per node.
	assert.True(t, parsed.Root.HasError())
}
