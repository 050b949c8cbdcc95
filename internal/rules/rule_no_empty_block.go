package rules

import (
	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// noEmptyBlock flags blocks that contain no statements at all.
func noEmptyBlock() Rule {
	return Rule{
		ID:             "no-empty-block",
		Title:          "Empty block",
		Severity:       model.SeverityStyle,
		Debt:           "5min",
		DefaultEnabled: true,
		Interest:       []ast.Kind{ast.KindBlock},
		Visit: func(n *ast.Node, ctx *Context, sink Sink) {
			if len(n.Children) > 0 {
				return
			}
			// a block holding only a comment is deliberate, keep it
			if len(n.Comments) > 0 {
				return
			}
			sink.Report(Report{Node: n, Message: "this block is empty"})
		},
	}
}
