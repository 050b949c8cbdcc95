// Package goast adapts Go source files to the engine's generic tree model.
package goast

import (
	"encoding/json"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/cache"
)

// Provider parses Go files into generic trees. In full mode it carries
// cross-file reference counts loaded through go/packages; in plain mode the
// run is degraded to syntax-only analysis.
type Provider struct {
	semantics *ast.Semantics
	useCache  bool
}

type Option func(*Provider)

// WithCache enables the on-disk parse cache, keyed by file content.
func WithCache() Option {
	return func(p *Provider) { p.useCache = true }
}

// NewProvider returns a syntax-only provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{}
	for _, o := range opts {
		o(p)
	}
	return p
}

// NewProviderWithTypes loads the module under dir with type information and
// returns a provider carrying cross-file semantics.
func NewProviderWithTypes(dir string, opts ...Option) (*Provider, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo | packages.NeedDeps,
		Dir: dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, err
	}
	refs := map[string]int{}
	for _, pkg := range pkgs {
		if pkg.TypesInfo == nil {
			continue
		}
		for _, obj := range pkg.TypesInfo.Uses {
			if obj != nil {
				refs[obj.Name()]++
			}
		}
	}
	p := &Provider{semantics: &ast.Semantics{Refs: refs}}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Degraded reports whether semantic context is unavailable.
func (p *Provider) Degraded() bool { return p.semantics == nil }

const cacheTag = "goast-v1"

func (p *Provider) Parse(path string) (*ast.ParsedFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ast.ParseError{File: path, Detail: err.Error()}
	}

	var key string
	if p.useCache {
		key = cache.Key(cacheTag, string(src))
		if data, ok := cache.Load(key); ok {
			var root ast.Node
			if err := json.Unmarshal(data, &root); err == nil {
				return p.parsed(path, &root, src), nil
			}
		}
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, &ast.ParseError{File: path, Detail: err.Error()}
	}

	root := build(fset, file)
	root.Name = filepath.ToSlash(path)

	if p.useCache {
		if data, err := json.Marshal(root); err == nil {
			_ = cache.Store(key, data)
		}
	}
	return p.parsed(path, root, src), nil
}

func (p *Provider) parsed(path string, root *ast.Node, src []byte) *ast.ParsedFile {
	root.Name = filepath.ToSlash(path)
	return &ast.ParsedFile{
		Path:      filepath.ToSlash(path),
		Root:      root,
		Source:    src,
		Semantics: p.semantics,
	}
}
