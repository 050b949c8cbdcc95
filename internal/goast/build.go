package goast

import (
	goast "go/ast"
	"go/token"
	"sort"

	"github.com/alyssa-glean/detekt/internal/ast"
)

// build converts one parsed Go file into the generic tree. Statements the
// engine has no dedicated kind for become KindOther so that block emptiness
// and attached comments survive the mapping.
func build(fset *token.FileSet, file *goast.File) *ast.Node {
	b := &builder{
		fset: fset,
		cmap: goast.NewCommentMap(fset, file, file.Comments),
	}
	goast.Walk(b, file)
	root := b.root

	// comment groups become nodes of their own under the file root, so
	// comment-interested rules see them during the walk
	for _, g := range file.Comments {
		n := &ast.Node{Kind: ast.KindComment, Text: g.Text()}
		n.StartLine, n.EndLine, n.StartCol, n.EndCol = b.span(g)
		root.Children = append(root.Children, n)
	}
	sort.SliceStable(root.Children, func(i, j int) bool {
		a, c := root.Children[i], root.Children[j]
		if a.StartLine != c.StartLine {
			return a.StartLine < c.StartLine
		}
		return a.StartCol < c.StartCol
	})
	return root
}

type builder struct {
	fset *token.FileSet
	cmap goast.CommentMap
	// stack mirrors the Walk path; nil entries mark Go nodes without a
	// generic counterpart, whose children attach to the nearest mapped
	// ancestor instead.
	stack []*ast.Node
	root  *ast.Node
}

func (b *builder) Visit(n goast.Node) goast.Visitor {
	if n == nil {
		b.stack = b.stack[:len(b.stack)-1]
		return nil
	}
	node := b.convert(n)
	if node != nil {
		if parent := b.parent(); parent != nil {
			parent.Children = append(parent.Children, node)
		} else {
			b.root = node
		}
		b.attachComments(node, n)
	}
	b.stack = append(b.stack, node)
	return b
}

func (b *builder) parent() *ast.Node {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i] != nil {
			return b.stack[i]
		}
	}
	return nil
}

func (b *builder) attachComments(node *ast.Node, n goast.Node) {
	for _, g := range b.cmap[n] {
		for _, c := range g.List {
			node.Comments = append(node.Comments, c.Text)
		}
	}
}

func (b *builder) convert(n goast.Node) *ast.Node {
	var node *ast.Node
	switch x := n.(type) {
	case *goast.File:
		node = &ast.Node{Kind: ast.KindFile}
		if x.Doc != nil {
			for _, c := range x.Doc.List {
				node.Comments = append(node.Comments, c.Text)
			}
		}
	case *goast.FuncDecl:
		node = &ast.Node{Kind: ast.KindFunc, Name: x.Name.Name}
		for _, field := range x.Type.Params.List {
			names := field.Names
			if len(names) == 0 {
				// unnamed parameter still counts
				p := &ast.Node{Kind: ast.KindParam}
				p.StartLine, p.EndLine, p.StartCol, p.EndCol = b.span(field)
				node.Children = append(node.Children, p)
				continue
			}
			for _, name := range names {
				p := &ast.Node{Kind: ast.KindParam, Name: name.Name}
				p.StartLine, p.EndLine, p.StartCol, p.EndCol = b.span(name)
				node.Children = append(node.Children, p)
			}
		}
	case *goast.BlockStmt:
		node = &ast.Node{Kind: ast.KindBlock}
	case *goast.IfStmt:
		node = &ast.Node{Kind: ast.KindIf}
	case *goast.ForStmt:
		node = &ast.Node{Kind: ast.KindFor}
	case *goast.RangeStmt:
		node = &ast.Node{Kind: ast.KindFor}
	case *goast.SwitchStmt:
		node = &ast.Node{Kind: ast.KindSwitch}
	case *goast.TypeSwitchStmt:
		node = &ast.Node{Kind: ast.KindSwitch}
	case *goast.CaseClause:
		node = &ast.Node{Kind: ast.KindCase}
	case *goast.CallExpr:
		node = &ast.Node{Kind: ast.KindCall}
	case *goast.AssignStmt:
		node = &ast.Node{Kind: ast.KindAssign}
	case *goast.ReturnStmt:
		node = &ast.Node{Kind: ast.KindReturn}
	case *goast.GenDecl:
		node = &ast.Node{Kind: ast.KindDecl}
	case *goast.BasicLit:
		node = &ast.Node{Kind: ast.KindLiteral, Name: litClass(x.Kind), Text: x.Value}
	default:
		if _, ok := n.(goast.Stmt); ok {
			node = &ast.Node{Kind: ast.KindOther}
		}
	}
	if node != nil {
		node.StartLine, node.EndLine, node.StartCol, node.EndCol = b.span(n)
	}
	return node
}

func (b *builder) span(n goast.Node) (startLine, endLine, startCol, endCol int) {
	s := b.fset.Position(n.Pos())
	e := b.fset.Position(n.End())
	return s.Line, e.Line, s.Column, e.Column
}

func litClass(k token.Token) string {
	switch k {
	case token.INT:
		return "int"
	case token.FLOAT:
		return "float"
	case token.STRING:
		return "string"
	case token.CHAR:
		return "char"
	case token.IMAG:
		return "imag"
	}
	return "lit"
}
