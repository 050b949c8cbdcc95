package engine

import (
	"fmt"
	"strings"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/config"
	"github.com/alyssa-glean/detekt/internal/model"
	"github.com/alyssa-glean/detekt/internal/rules"
	"github.com/alyssa-glean/detekt/internal/util"
)

// FileOutcome is everything one file's analysis produced.
type FileOutcome struct {
	File               string
	Findings           []model.Finding
	Diagnostics        []model.Diagnostic
	BaselineSuppressed int
}

// reportSink buffers one rule invocation's reports.
type reportSink struct{ reports []rules.Report }

func (s *reportSink) Report(r rules.Report) { s.reports = append(s.reports, r) }

type traversal struct {
	pf       *ast.ParsedFile
	dispatch map[ast.Kind][]config.ActiveRule
	path     []string
	stack    suppressStack
	outcome  FileOutcome
}

// AnalyzeFile walks one file's tree exactly once, pre-order, dispatching every
// active rule interested in each node's kind. Rule order per node is ascending
// by id; both orders together make the finding sequence deterministic.
func AnalyzeFile(pf *ast.ParsedFile, cfg *config.EffectiveConfig) FileOutcome {
	dispatch := map[ast.Kind][]config.ActiveRule{}
	for _, ar := range cfg.Active() {
		for _, k := range ar.Rule.Interest {
			dispatch[k] = append(dispatch[k], ar)
		}
	}
	t := &traversal{
		pf:       pf,
		dispatch: dispatch,
		outcome:  FileOutcome{File: pf.Path},
	}
	t.walk(pf.Root, map[ast.Kind]int{})
	return t.outcome
}

func (t *traversal) walk(n *ast.Node, ordinals map[ast.Kind]int) {
	idx := ordinals[n.Kind]
	ordinals[n.Kind] = idx + 1

	t.path = append(t.path, segment(n, idx))
	// pre-order: the frame is pushed before any rule fires and before any
	// descendant is visited, so a directive covers its whole subtree.
	t.stack = append(t.stack, parseDirectives(n.Comments))

	for _, ar := range t.dispatch[n.Kind] {
		t.invoke(ar, n)
	}

	childOrdinals := map[ast.Kind]int{}
	for _, c := range n.Children {
		t.walk(c, childOrdinals)
	}

	t.stack = t.stack[:len(t.stack)-1]
	t.path = t.path[:len(t.path)-1]
}

// invoke runs one rule on one node behind a recover boundary. A panicking
// rule yields one internal-rule-error diagnostic for this node and the
// traversal moves on.
func (t *traversal) invoke(ar config.ActiveRule, n *ast.Node) {
	sink := &reportSink{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.outcome.Diagnostics = append(t.outcome.Diagnostics, model.Diagnostic{
					Kind:   model.DiagInternalRuleError,
					File:   t.pf.Path,
					RuleID: ar.Rule.ID,
					Line:   n.StartLine,
					Detail: fmt.Sprintf("rule panicked: %v", r),
				})
			}
		}()
		ar.Rule.Visit(n, &rules.Context{Params: ar.Params, Semantics: t.pf.Semantics}, sink)
	}()

	for _, r := range sink.reports {
		if t.stack.suppressed(ar.Rule.ID) {
			continue
		}
		t.outcome.Findings = append(t.outcome.Findings, t.finding(ar, n, r))
	}
}

func (t *traversal) finding(ar config.ActiveRule, visited *ast.Node, r rules.Report) model.Finding {
	node := r.Node
	if node == nil {
		node = visited
	}
	entity := strings.Join(t.path, "/")
	if node != visited {
		entity += "/" + childSegment(visited, node)
	}
	snippet := util.SnippetLines(t.pf.Source, node.StartLine, node.EndLine, 8)
	return model.Finding{
		RuleID:      ar.Rule.ID,
		Severity:    ar.Severity,
		File:        t.pf.Path,
		StartLine:   node.StartLine,
		EndLine:     node.EndLine,
		StartCol:    node.StartCol,
		EndCol:      node.EndCol,
		Message:     r.Message,
		Snippet:     snippet,
		Entity:      entity,
		Fingerprint: util.Fingerprint(ar.Rule.ID, entity, util.Normalize(snippet)),
	}
}

// segment renders one entity-path element. Named nodes use their name, the
// rest use their ordinal among same-kind siblings; neither depends on line
// numbers, which is what keeps fingerprints stable under unrelated edits.
func segment(n *ast.Node, idx int) string {
	if n.Kind == ast.KindFile {
		return n.Name
	}
	if n.Name != "" && n.Kind != ast.KindLiteral {
		return string(n.Kind) + ":" + n.Name
	}
	return fmt.Sprintf("%s[%d]", n.Kind, idx)
}

func childSegment(parent, child *ast.Node) string {
	idx := 0
	for _, c := range parent.Children {
		if c == child {
			break
		}
		if c.Kind == child.Kind {
			idx++
		}
	}
	return segment(child, idx)
}
