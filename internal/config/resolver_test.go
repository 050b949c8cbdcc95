package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/model"
	"github.com/alyssa-glean/detekt/internal/rules"
)

func testRegistry(t *testing.T) *rules.Registry {
	t.Helper()
	r := rules.NewRegistry()
	add := func(id string, enabled, needsCtx bool, sev model.Severity) {
		if err := r.Register(rules.Rule{
			ID:              id,
			Severity:        sev,
			DefaultEnabled:  enabled,
			RequiresContext: needsCtx,
			Interest:        []ast.Kind{ast.KindBlock},
			Visit:           func(n *ast.Node, ctx *rules.Context, sink rules.Sink) {},
		}); err != nil {
			t.Fatal(err)
		}
	}
	add("r1", true, false, model.SeverityWarning)
	add("r2", false, false, model.SeverityStyle)
	add("r3", true, true, model.SeverityWarning)
	r.Seal()
	return r
}

func boolp(b bool) *bool    { return &b }
func strp(s string) *string { return &s }

func TestResolveDefaults(t *testing.T) {
	cfg := Resolve(nil, testRegistry(t), false)
	if !cfg.Rules["r1"].Enabled || cfg.Rules["r2"].Enabled {
		t.Error("defaults should follow DefaultEnabled")
	}
	if cfg.Rules["r1"].Severity != model.SeverityWarning {
		t.Errorf("r1 severity = %s, want warning", cfg.Rules["r1"].Severity)
	}
}

func TestResolveLayerOverride(t *testing.T) {
	layers := []Layer{
		{Name: "global", Rules: map[string]RuleConfig{
			"r2": {Enabled: boolp(true), Severity: strp("error")},
		}},
		{Name: "module", Rules: map[string]RuleConfig{
			"r1": {Enabled: boolp(false)},
		}},
	}
	cfg := Resolve(layers, testRegistry(t), false)
	if !cfg.Rules["r2"].Enabled || cfg.Rules["r2"].Severity != model.SeverityError {
		t.Error("global layer should enable r2 at error severity")
	}
	if cfg.Rules["r1"].Enabled {
		t.Error("module layer should disable r1")
	}
}

// A module layer that disables a rule the global layer enabled wins; the rule
// produces no findings at all.
func TestModuleDisableOverridesGlobalEnable(t *testing.T) {
	layers := []Layer{
		{Name: "global", Rules: map[string]RuleConfig{"r2": {Enabled: boolp(true)}}},
		{Name: "module", Rules: map[string]RuleConfig{"r2": {Enabled: boolp(false)}}},
	}
	cfg := Resolve(layers, testRegistry(t), false)
	if cfg.Rules["r2"].Enabled {
		t.Fatal("module disable must override global enable")
	}
	for _, ar := range cfg.Active() {
		if ar.Rule.ID == "r2" {
			t.Fatal("r2 must not be active")
		}
	}
}

func TestResolveParamsFullReplace(t *testing.T) {
	layers := []Layer{
		{Name: "a", Rules: map[string]RuleConfig{
			"r1": {Parameters: map[string]any{"max": 10, "allow": []any{"x"}}},
		}},
		{Name: "b", Rules: map[string]RuleConfig{
			"r1": {Parameters: map[string]any{"max": 3}},
		}},
	}
	cfg := Resolve(layers, testRegistry(t), false)
	params := cfg.Rules["r1"].Params
	if params["max"] != 3 {
		t.Errorf("max = %v, want 3", params["max"])
	}
	if _, ok := params["allow"]; ok {
		t.Error("parameters must be replaced wholesale, allow should be gone")
	}
}

func TestResolveExcludesUnion(t *testing.T) {
	layers := []Layer{
		{Name: "a", Excludes: []string{"**/gen/**"}},
		{Name: "b", Excludes: []string{"**/vendor/**"}},
	}
	cfg := Resolve(layers, testRegistry(t), false)
	want := []string{"**/gen/**", "**/vendor/**"}
	if !reflect.DeepEqual(cfg.Excludes, want) {
		t.Errorf("excludes = %v, want %v", cfg.Excludes, want)
	}
}

func TestResolveUnknownRuleID(t *testing.T) {
	layers := []Layer{
		{Name: "a", Rules: map[string]RuleConfig{
			"nope": {Enabled: boolp(true)},
			"r2":   {Enabled: boolp(true)},
			"nada": {Enabled: boolp(false)},
		}},
	}
	cfg := Resolve(layers, testRegistry(t), false)
	if len(cfg.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2 entries", cfg.Warnings)
	}
	// the merge continued past the unknown ids
	if !cfg.Rules["r2"].Enabled {
		t.Error("valid entries in the same layer must still apply")
	}
}

func TestResolveDegradedDowngrade(t *testing.T) {
	cfg := Resolve(nil, testRegistry(t), true)
	if cfg.Rules["r3"].Enabled {
		t.Error("context-requiring rule must be disabled in degraded mode")
	}
	found := false
	for _, n := range cfg.Notes {
		if strings.Contains(n, "r3") {
			found = true
		}
	}
	if !found {
		t.Errorf("downgrade note missing: %v", cfg.Notes)
	}
	// a rule already disabled stays quiet
	if len(cfg.Notes) != 1 {
		t.Errorf("notes = %v, want exactly one", cfg.Notes)
	}
}

// Merging [A,B,C] must equal merging [merge(A,B),C].
func TestResolveAssociativity(t *testing.T) {
	a := Layer{Name: "a", Rules: map[string]RuleConfig{
		"r1": {Severity: strp("error"), Parameters: map[string]any{"x": 1}},
		"r2": {Enabled: boolp(true)},
	}, Excludes: []string{"one/**"}}
	b := Layer{Name: "b", Rules: map[string]RuleConfig{
		"r1": {Enabled: boolp(false), Parameters: map[string]any{"y": 2}},
	}, Excludes: []string{"two/**"}}
	c := Layer{Name: "c", Rules: map[string]RuleConfig{
		"r2": {Severity: strp("defect")},
	}}

	reg := testRegistry(t)
	flat := Resolve([]Layer{a, b, c}, reg, false)
	paired := Resolve([]Layer{MergeLayers(a, b), c}, reg, false)

	if !reflect.DeepEqual(flat.Rules, paired.Rules) {
		t.Errorf("rule settings differ:\n[A,B,C]      %+v\n[AB,C] %+v", flat.Rules, paired.Rules)
	}
	if !reflect.DeepEqual(flat.Excludes, paired.Excludes) {
		t.Errorf("excludes differ: %v vs %v", flat.Excludes, paired.Excludes)
	}
}
