package rules

import (
	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// emptyFile flags files that declare nothing.
func emptyFile() Rule {
	return Rule{
		ID:             "empty-file",
		Title:          "File contains no declarations",
		Severity:       model.SeverityStyle,
		Debt:           "5min",
		DefaultEnabled: true,
		Interest:       []ast.Kind{ast.KindFile},
		Visit: func(n *ast.Node, ctx *Context, sink Sink) {
			for _, c := range n.Children {
				if c.Kind != ast.KindComment {
					return
				}
			}
			sink.Report(Report{Node: n, Message: "file declares nothing"})
		},
	}
}
