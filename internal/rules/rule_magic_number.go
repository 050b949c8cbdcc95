package rules

import (
	"fmt"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// magicNumber flags numeric literals outside the allow list.
func magicNumber() Rule {
	return Rule{
		ID:             "magic-number",
		Title:          "Magic number",
		Severity:       model.SeverityStyle,
		Debt:           "10min",
		DefaultEnabled: true,
		Interest:       []ast.Kind{ast.KindLiteral},
		Visit: func(n *ast.Node, ctx *Context, sink Sink) {
			if n.Name != "int" && n.Name != "float" {
				return
			}
			allow := ParamStrings(ctx.Params, "allow")
			if allow == nil {
				allow = []string{"0", "1", "-1", "2"}
			}
			for _, a := range allow {
				if n.Text == a {
					return
				}
			}
			sink.Report(Report{Node: n, Message: fmt.Sprintf("magic number %s, extract it to a named constant", n.Text)})
		},
	}
}
