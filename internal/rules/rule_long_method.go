package rules

import (
	"fmt"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// longMethod flags functions whose body spans more lines than maxLines allows.
func longMethod() Rule {
	return Rule{
		ID:             "long-method",
		Title:          "Method is too long",
		Severity:       model.SeverityWarning,
		Debt:           "20min",
		DefaultEnabled: true,
		Interest:       []ast.Kind{ast.KindFunc},
		Visit: func(n *ast.Node, ctx *Context, sink Sink) {
			max := ParamInt(ctx.Params, "maxLines", 60)
			lines := n.EndLine - n.StartLine + 1
			if lines <= max {
				return
			}
			sink.Report(Report{
				Node:    n,
				Message: fmt.Sprintf("function %s is %d lines long (allowed: %d)", n.Name, lines, max),
			})
		},
	}
}
