package goast

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alyssa-glean/detekt/internal/ast"
)

const sample = `// Package demo exercises the tree mapping.
package demo

// detekt:ignore magic-number
var answer = 42

func Empty() {
}

func Add(a, b int) int {
	if a > b {
		return a + b
	}
	return b
}
`

func writeSample(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.go")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func collect(root *ast.Node, kind ast.Kind) []*ast.Node {
	var out []*ast.Node
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n.Kind == kind {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

func TestParseMapsKinds(t *testing.T) {
	path := writeSample(t, sample)
	pf, err := NewProvider().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pf.Root.Kind != ast.KindFile {
		t.Fatalf("root kind = %s", pf.Root.Kind)
	}
	if pf.Path != filepath.ToSlash(path) || pf.Root.Name != pf.Path {
		t.Errorf("path = %q, root name = %q", pf.Path, pf.Root.Name)
	}

	funcs := collect(pf.Root, ast.KindFunc)
	if len(funcs) != 2 {
		t.Fatalf("funcs = %d, want 2", len(funcs))
	}
	byName := map[string]*ast.Node{}
	for _, f := range funcs {
		byName[f.Name] = f
	}
	if byName["Empty"] == nil || byName["Add"] == nil {
		t.Fatalf("function names missing: %v", byName)
	}
}

func TestParseCountsParams(t *testing.T) {
	pf, err := NewProvider().Parse(writeSample(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range collect(pf.Root, ast.KindFunc) {
		var params int
		for _, c := range f.Children {
			if c.Kind == ast.KindParam {
				params++
			}
		}
		switch f.Name {
		case "Empty":
			if params != 0 {
				t.Errorf("Empty params = %d", params)
			}
		case "Add":
			// a and b share one field but count separately
			if params != 2 {
				t.Errorf("Add params = %d, want 2", params)
			}
		}
	}
}

func TestParseEmptyBlock(t *testing.T) {
	pf, err := NewProvider().Parse(writeSample(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range collect(pf.Root, ast.KindFunc) {
		if f.Name != "Empty" {
			continue
		}
		blocks := collect(f, ast.KindBlock)
		if len(blocks) != 1 {
			t.Fatalf("Empty has %d blocks", len(blocks))
		}
		if len(blocks[0].Children) != 0 {
			t.Errorf("empty body mapped with children: %+v", blocks[0].Children)
		}
		return
	}
	t.Fatal("Empty not found")
}

func TestParseAttachesDirectives(t *testing.T) {
	pf, err := NewProvider().Parse(writeSample(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	var carrier *ast.Node
	for _, d := range collect(pf.Root, ast.KindDecl) {
		for _, c := range d.Comments {
			if strings.Contains(c, "detekt:ignore magic-number") {
				carrier = d
			}
		}
	}
	if carrier == nil {
		t.Fatal("ignore directive not attached to the var declaration")
	}
	lits := collect(carrier, ast.KindLiteral)
	if len(lits) != 1 || lits[0].Text != "42" || lits[0].Name != "int" {
		t.Errorf("literal under directive carrier = %+v", lits)
	}
}

func TestParseCommentNodesUnderRoot(t *testing.T) {
	pf, err := NewProvider().Parse(writeSample(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	var comments []*ast.Node
	for _, c := range pf.Root.Children {
		if c.Kind == ast.KindComment {
			comments = append(comments, c)
		}
	}
	if len(comments) == 0 {
		t.Fatal("comment groups missing from file root")
	}
	for i := 1; i < len(pf.Root.Children); i++ {
		if pf.Root.Children[i-1].StartLine > pf.Root.Children[i].StartLine {
			t.Fatal("root children not in source order")
		}
	}
}

func TestParseFailure(t *testing.T) {
	path := writeSample(t, "package demo\nfunc {")
	_, err := NewProvider().Parse(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var pe *ast.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T", err)
	}
	if pe.File != path || pe.Detail == "" {
		t.Errorf("parse error = %+v", pe)
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := NewProvider().Parse(filepath.Join(t.TempDir(), "nope.go"))
	var pe *ast.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T", err)
	}
}
