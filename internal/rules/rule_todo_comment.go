package rules

import (
	"strings"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// todoComment flags TODO/FIXME markers left in comments.
func todoComment() Rule {
	return Rule{
		ID:             "todo-comment",
		Title:          "Forbidden comment marker",
		Severity:       model.SeverityStyle,
		Debt:           "5min",
		DefaultEnabled: false,
		Interest:       []ast.Kind{ast.KindComment},
		Visit: func(n *ast.Node, ctx *Context, sink Sink) {
			markers := ParamStrings(ctx.Params, "markers")
			if markers == nil {
				markers = []string{"TODO", "FIXME", "HACK"}
			}
			for _, m := range markers {
				if strings.Contains(n.Text, m) {
					sink.Report(Report{Node: n, Message: "comment contains marker " + m})
					return
				}
			}
		},
	}
}
