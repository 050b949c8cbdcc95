package rules

import (
	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
)

// Report is one violation as a rule sees it; the engine fills in location
// identity, fingerprint and severity when it turns the report into a finding.
type Report struct {
	Node    *ast.Node
	Message string
}

// Sink receives reports during a visit callback.
type Sink interface {
	Report(r Report)
}

// Context is handed to every visit invocation. Semantics is nil in degraded
// runs; rules with RequiresContext are disabled before that can matter.
type Context struct {
	Params    map[string]any
	Semantics *ast.Semantics
}

// VisitFunc inspects one node and reports violations to the sink.
type VisitFunc func(n *ast.Node, ctx *Context, sink Sink)

// Rule is an immutable descriptor. Registered once, never mutated.
type Rule struct {
	ID              string
	Title           string
	Severity        model.Severity
	Debt            string // opaque cost hint, e.g. "5min"
	DefaultEnabled  bool
	RequiresContext bool
	Interest        []ast.Kind
	Visit           VisitFunc
}

// ParamInt reads an integer parameter, tolerating YAML's int/float decoding.
func ParamInt(params map[string]any, key string, def int) int {
	v, ok := params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

// ParamStrings reads a string-list parameter.
func ParamStrings(params map[string]any, key string) []string {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
