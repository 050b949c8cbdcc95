package rules

import (
	"fmt"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// deepNesting flags functions whose block nesting exceeds maxDepth.
func deepNesting() Rule {
	return Rule{
		ID:             "deep-nesting",
		Title:          "Deeply nested control flow",
		Severity:       model.SeverityWarning,
		Debt:           "20min",
		DefaultEnabled: true,
		Interest:       []ast.Kind{ast.KindFunc},
		Visit: func(n *ast.Node, ctx *Context, sink Sink) {
			max := ParamInt(ctx.Params, "maxDepth", 4)
			depth := blockDepth(n)
			if depth <= max {
				return
			}
			sink.Report(Report{
				Node:    n,
				Message: fmt.Sprintf("function %s nests %d blocks deep (allowed: %d)", n.Name, depth, max),
			})
		},
	}
}

func blockDepth(n *ast.Node) int {
	deepest := 0
	for _, c := range n.Children {
		d := blockDepth(c)
		if d > deepest {
			deepest = d
		}
	}
	if n.Kind == ast.KindBlock {
		deepest++
	}
	return deepest
}
