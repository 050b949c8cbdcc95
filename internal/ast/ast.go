// Package ast defines the syntax-tree surface the engine consumes.
// Producing trees is a provider concern; the engine only walks them.
package ast

import "fmt"

type Kind string

const (
	KindFile    Kind = "file"
	KindDecl    Kind = "decl"
	KindFunc    Kind = "func"
	KindParam   Kind = "param"
	KindBlock   Kind = "block"
	KindIf      Kind = "if"
	KindFor     Kind = "for"
	KindSwitch  Kind = "switch"
	KindCase    Kind = "case"
	KindCall    Kind = "call"
	KindAssign  Kind = "assign"
	KindReturn  Kind = "return"
	KindLiteral Kind = "literal"
	KindComment Kind = "comment"
	KindOther   Kind = "other"
)

// Node is one typed syntax node. Children are in source order.
type Node struct {
	Kind      Kind     `json:"kind"`
	Name      string   `json:"name,omitempty"` // identifier / literal class, when meaningful
	Text      string   `json:"text,omitempty"` // raw text for literals and comments
	StartLine int      `json:"startLine"`
	EndLine   int      `json:"endLine"`
	StartCol  int      `json:"startCol"`
	EndCol    int      `json:"endCol"`
	Comments  []string `json:"comments,omitempty"` // comment text attached to this node
	Children  []*Node  `json:"children,omitempty"`
}

// Semantics carries cross-file context that plain parsing cannot supply.
// Nil when the run is degraded to syntax-only analysis.
type Semantics struct {
	// Refs counts references to a declared symbol from anywhere in the module,
	// excluding its own declaration site.
	Refs map[string]int
}

// ParsedFile is one file's tree plus the raw source it came from.
type ParsedFile struct {
	Path      string
	Root      *Node
	Source    []byte
	Semantics *Semantics
}

// Provider turns file paths into parsed trees.
type Provider interface {
	Parse(path string) (*ParsedFile, error)
}

// ParseError is returned by providers when a single file cannot be parsed.
type ParseError struct {
	File   string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.File, e.Detail)
}
