// # internal/engine/parser/parser.go
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"typefold/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type Parser struct {
	loader      *GrammarLoader
	maxFileSize int64
}

// ParsedFile holds one parsed source file. The tree keeps cgo-owned
// memory alive; callers must Close it when analysis is done.
type ParsedFile struct {
	Path     string
	Language string
	Source   []byte
	Tree     *sitter.Tree
	Root     *sitter.Node
}

func (f *ParsedFile) Close() {
	if f.Tree != nil {
		f.Tree.Close()
		f.Tree = nil
	}
}

func NewParser(loader *GrammarLoader, maxFileSize int64) *Parser {
	return &Parser{loader: loader, maxFileSize: maxFileSize}
}

// ParseFile parses content as the dialect implied by the file extension.
// A tree with syntax errors is still returned: tree-sitter recovers
// around bad regions and the analysis degrades per declaration rather
// than rejecting the file.
func (p *Parser) ParseFile(path string, content []byte) (*ParsedFile, error) {
	lang := p.detectLanguage(path)
	if lang == "" {
		return nil, errors.AddContext(
			errors.New(errors.CodeNotSupported, "unsupported language"), errors.CtxPath, path)
	}

	if p.maxFileSize > 0 && int64(len(content)) > p.maxFileSize {
		err := errors.New(errors.CodeValidationError,
			fmt.Sprintf("file exceeds size limit (%d bytes)", p.maxFileSize))
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("grammar not loaded: %s", lang))
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		err := errors.New(errors.CodeInternal, "parse failed")
		err = errors.AddContext(err, errors.CtxPath, path)
		return nil, errors.AddContext(err, errors.CtxLanguage, lang)
	}

	return &ParsedFile{
		Path:     path,
		Language: lang,
		Source:   content,
		Tree:     tree,
		Root:     tree.RootNode(),
	}, nil
}

func (p *Parser) detectLanguage(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".d.ts") {
		return ""
	}
	switch filepath.Ext(base) {
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "tsx"
	}
	return ""
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.detectLanguage(path) != ""
}

func (p *Parser) GetLanguage(path string) string {
	return p.detectLanguage(path)
}

// IsTestFile reports spec/test TypeScript files, which the watcher skips.
func (p *Parser) IsTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range []string{".test.ts", ".test.tsx", ".spec.ts", ".spec.tsx"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
