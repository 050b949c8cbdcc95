package rules

import (
	"fmt"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// tooManyParams flags functions with more parameters than the max parameter.
func tooManyParams() Rule {
	return Rule{
		ID:             "too-many-params",
		Title:          "Too many function parameters",
		Severity:       model.SeverityWarning,
		Debt:           "10min",
		DefaultEnabled: true,
		Interest:       []ast.Kind{ast.KindFunc},
		Visit: func(n *ast.Node, ctx *Context, sink Sink) {
			max := ParamInt(ctx.Params, "max", 5)
			count := 0
			for _, c := range n.Children {
				if c.Kind == ast.KindParam {
					count++
				}
			}
			if count <= max {
				return
			}
			sink.Report(Report{
				Node:    n,
				Message: fmt.Sprintf("function %s takes %d parameters (allowed: %d)", n.Name, count, max),
			})
		},
	}
}
