package rules

import (
	"unicode"
	"unicode/utf8"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// unusedPublicSymbol flags exported functions nothing in the module refers to.
// Needs cross-file reference counts, so it only runs when semantic context is
// available; the resolver disables it in degraded runs.
func unusedPublicSymbol() Rule {
	return Rule{
		ID:              "unused-public-symbol",
		Title:           "Exported symbol is never referenced",
		Severity:        model.SeverityWarning,
		Debt:            "10min",
		DefaultEnabled:  true,
		RequiresContext: true,
		Interest:        []ast.Kind{ast.KindFunc},
		Visit: func(n *ast.Node, ctx *Context, sink Sink) {
			if ctx.Semantics == nil || n.Name == "" || !exported(n.Name) {
				return
			}
			if n.Name == "main" || n.Name == "init" {
				return
			}
			if ctx.Semantics.Refs[n.Name] > 0 {
				return
			}
			sink.Report(Report{Node: n, Message: "exported function " + n.Name + " is never referenced"})
		},
	}
}

func exported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
