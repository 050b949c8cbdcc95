package config

import (
	"fmt"
	"sort"

	"github.com/alyssa-glean/detekt/internal/model"
	"github.com/alyssa-glean/detekt/internal/rules"
)

// ActiveRule is one rule with its fully resolved settings.
type ActiveRule struct {
	Rule     rules.Rule
	Enabled  bool
	Severity model.Severity
	Params   map[string]any
}

// EffectiveConfig is the single merged configuration governing one run.
// Read-only once resolved; safe to share across workers.
type EffectiveConfig struct {
	Rules    map[string]ActiveRule
	Excludes []string
	FailFast bool

	// Warnings are unknown-rule-id complaints; Notes are informational
	// (e.g. degraded-mode downgrades). Both end up in the result.
	Warnings []string
	Notes    []string
}

// Active returns the enabled rules in ascending id order, the order visit
// callbacks fire in.
func (c *EffectiveConfig) Active() []ActiveRule {
	out := make([]ActiveRule, 0, len(c.Rules))
	for _, ar := range c.Rules {
		if ar.Enabled {
			out = append(out, ar)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rule.ID < out[j].Rule.ID })
	return out
}

// Resolve merges layers, in order, over registry defaults.
//
// Per rule: enabled and severity overwrite; parameters are replaced wholesale
// by any layer that mentions them. Excludes accumulate across layers. Unknown
// rule ids are recorded as warnings and the merge continues. When degraded is
// true, rules needing semantic context are switched off with a note.
func Resolve(layers []Layer, registry *rules.Registry, degraded bool) *EffectiveConfig {
	cfg := &EffectiveConfig{Rules: map[string]ActiveRule{}}
	for _, r := range registry.All() {
		cfg.Rules[r.ID] = ActiveRule{Rule: r, Enabled: r.DefaultEnabled, Severity: r.Severity}
	}

	for _, layer := range layers {
		ids := make([]string, 0, len(layer.Rules))
		for id := range layer.Rules {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			rc := layer.Rules[id]
			ar, ok := cfg.Rules[id]
			if !ok {
				cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: unknown rule id %q", layerName(layer), id))
				continue
			}
			if rc.Enabled != nil {
				ar.Enabled = *rc.Enabled
			}
			if rc.Severity != nil {
				if model.ValidSeverity(*rc.Severity) {
					ar.Severity = model.Severity(*rc.Severity)
				} else {
					cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: rule %q: unknown severity %q", layerName(layer), id, *rc.Severity))
				}
			}
			if rc.Parameters != nil {
				ar.Params = rc.Parameters
			}
			cfg.Rules[id] = ar
		}
		cfg.Excludes = append(cfg.Excludes, layer.Excludes...)
		if layer.FailFast != nil {
			cfg.FailFast = *layer.FailFast
		}
	}

	if degraded {
		for id, ar := range cfg.Rules {
			if ar.Enabled && ar.Rule.RequiresContext {
				ar.Enabled = false
				cfg.Rules[id] = ar
				cfg.Notes = append(cfg.Notes, fmt.Sprintf("rule %q disabled: semantic context unavailable in this run", id))
			}
		}
		sort.Strings(cfg.Notes)
	}
	return cfg
}

func layerName(l Layer) string {
	if l.Name != "" {
		return l.Name
	}
	return "<layer>"
}
