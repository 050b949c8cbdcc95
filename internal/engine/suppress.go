package engine

import "strings"

// Inline suppression marker. Examples:
//
//	// detekt:ignore no-empty-block
//	// detekt:ignore magic-number, long-method reason="legacy"
//	// detekt:ignore all
//
// A directive covers the node its comment is attached to and that node's
// whole subtree. Suppression is cumulative: any enclosing directive naming
// the rule (or "all") suffices, inner directives never narrow outer ones.
const directiveMarker = "detekt:ignore"

type suppressFrame struct {
	all bool
	ids map[string]struct{}
}

func (f suppressFrame) empty() bool { return !f.all && len(f.ids) == 0 }

// parseDirectives extracts one frame from the comments attached to a node.
func parseDirectives(comments []string) suppressFrame {
	var frame suppressFrame
	for _, c := range comments {
		idx := strings.Index(c, directiveMarker)
		if idx < 0 {
			continue
		}
		rest := c[idx+len(directiveMarker):]
		if cut := strings.Index(rest, "reason="); cut >= 0 {
			rest = rest[:cut]
		}
		for _, tok := range strings.FieldsFunc(rest, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			if tok == "all" {
				frame.all = true
				continue
			}
			if frame.ids == nil {
				frame.ids = map[string]struct{}{}
			}
			frame.ids[tok] = struct{}{}
		}
	}
	return frame
}

// suppressStack tracks the frames of every enclosing node during traversal.
type suppressStack []suppressFrame

func (s suppressStack) suppressed(ruleID string) bool {
	for _, f := range s {
		if f.all {
			return true
		}
		if _, ok := f.ids[ruleID]; ok {
			return true
		}
	}
	return false
}
