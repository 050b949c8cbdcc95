package engine

import (
	"context"
	"reflect"
	"testing"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/config"
	"github.com/alyssa-glean/detekt/internal/model"
	"github.com/alyssa-glean/detekt/internal/rules"
)

type fakeProvider struct {
	trees map[string]*ast.ParsedFile
	fail  map[string]string
}

func (p *fakeProvider) Parse(path string) (*ast.ParsedFile, error) {
	if detail, ok := p.fail[path]; ok {
		return nil, &ast.ParseError{File: path, Detail: detail}
	}
	pf, ok := p.trees[path]
	if !ok {
		return nil, &ast.ParseError{File: path, Detail: "no such file"}
	}
	return pf, nil
}

func emptyBlockTree(path string, line int) *ast.ParsedFile {
	block := &ast.Node{Kind: ast.KindBlock, StartLine: line, EndLine: line}
	fn := &ast.Node{Kind: ast.KindFunc, Name: "f", StartLine: line, EndLine: line, Children: []*ast.Node{block}}
	root := &ast.Node{Kind: ast.KindFile, Name: path, StartLine: 1, EndLine: line, Children: []*ast.Node{fn}}
	return &ast.ParsedFile{Path: path, Root: root, Source: []byte("func f() {}\n")}
}

func builtinConfig(t *testing.T) *config.EffectiveConfig {
	t.Helper()
	reg := rules.NewRegistry()
	reg.RegisterBuiltin()
	reg.Seal()
	return config.Resolve(nil, reg, true)
}

// Two files: A has one style violation at line 3, B fails to parse. The
// result carries exactly one finding and one parse-failure diagnostic, and
// passes under a fail-on-error policy.
func TestAnalyzeModuleParseFailureIsolated(t *testing.T) {
	provider := &fakeProvider{
		trees: map[string]*ast.ParsedFile{"a.go": emptyBlockTree("a.go", 3)},
		fail:  map[string]string{"b.go": "unexpected token"},
	}
	res := AnalyzeModule(context.Background(), provider, []string{"a.go", "b.go"},
		builtinConfig(t), Baseline{}, Options{Workers: 2})

	var got []model.Finding
	for _, f := range res.Findings {
		if f.RuleID == "no-empty-block" {
			got = append(got, f)
		}
	}
	if len(got) != 1 {
		t.Fatalf("no-empty-block findings = %d, want 1", len(got))
	}
	f := got[0]
	if f.Severity != model.SeverityStyle || f.File != "a.go" || f.StartLine != 3 {
		t.Errorf("finding = %+v", f)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != model.DiagParseFailure || res.Diagnostics[0].File != "b.go" {
		t.Errorf("diagnostics = %+v", res.Diagnostics)
	}
	if !res.Passed {
		t.Error("style findings must pass a fail-on-error policy")
	}
}

func TestAnalyzeModuleDeterministicAcrossWorkerCounts(t *testing.T) {
	trees := map[string]*ast.ParsedFile{}
	var files []string
	for _, name := range []string{"pkg/z.go", "pkg/a.go", "pkg/m.go", "pkg/b.go", "pkg/q.go"} {
		trees[name] = emptyBlockTree(name, 4)
		files = append(files, name)
	}
	provider := &fakeProvider{trees: trees}
	cfg := builtinConfig(t)

	serial := AnalyzeModule(context.Background(), provider, files, cfg, Baseline{}, Options{Workers: 1})
	parallel := AnalyzeModule(context.Background(), provider, files, cfg, Baseline{}, Options{Workers: 8})

	serial.Elapsed, parallel.Elapsed = 0, 0
	if !reflect.DeepEqual(serial, parallel) {
		t.Fatalf("results differ across worker counts:\nserial:   %+v\nparallel: %+v", serial, parallel)
	}
	for i := 1; i < len(serial.Findings); i++ {
		if serial.Findings[i-1].File > serial.Findings[i].File {
			t.Fatal("findings not sorted by file path")
		}
	}
}

func severeRule() rules.Rule {
	return rules.Rule{
		ID:             "always-error",
		Severity:       model.SeverityError,
		DefaultEnabled: true,
		Interest:       []ast.Kind{ast.KindBlock},
		Visit: func(n *ast.Node, ctx *rules.Context, sink rules.Sink) {
			sink.Report(rules.Report{Node: n, Message: "severe"})
		},
	}
}

func TestAnalyzeModuleFailFast(t *testing.T) {
	reg := rules.NewRegistry()
	if err := reg.Register(severeRule()); err != nil {
		t.Fatal(err)
	}
	reg.Seal()
	cfg := config.Resolve(nil, reg, false)

	trees := map[string]*ast.ParsedFile{}
	files := []string{"f1.go", "f2.go", "f3.go", "f4.go"}
	for _, name := range files {
		trees[name] = emptyBlockTree(name, 2)
	}
	provider := &fakeProvider{trees: trees}

	// one worker makes dispatch order deterministic: f1 trips the breaker,
	// f2-f4 are cancelled before they start
	res := AnalyzeModule(context.Background(), provider, files, cfg, Baseline{},
		Options{Workers: 1, FailFast: true})

	if len(res.Findings) != 1 || res.Findings[0].File != "f1.go" {
		t.Fatalf("findings = %+v, want only f1's", res.Findings)
	}
	var incomplete int
	for _, d := range res.Diagnostics {
		if d.Kind == model.DiagIncomplete {
			incomplete++
		}
	}
	if incomplete != 3 {
		t.Errorf("incomplete diagnostics = %d, want 3", incomplete)
	}
	if res.Passed {
		t.Error("error-severity finding must fail the run")
	}
}

func TestAnalyzeModuleExcludes(t *testing.T) {
	trees := map[string]*ast.ParsedFile{
		"src/a.go":      emptyBlockTree("src/a.go", 2),
		"gen/b.go":      emptyBlockTree("gen/b.go", 2),
		"src/c_test.go": emptyBlockTree("src/c_test.go", 2),
	}
	provider := &fakeProvider{trees: trees}
	reg := rules.NewRegistry()
	reg.RegisterBuiltin()
	reg.Seal()
	cfg := config.Resolve([]config.Layer{
		{Name: "a", Excludes: []string{"gen/**"}},
		{Name: "b", Excludes: []string{"**/*_test.go"}},
	}, reg, true)

	res := AnalyzeModule(context.Background(), provider,
		[]string{"src/a.go", "gen/b.go", "src/c_test.go"}, cfg, Baseline{}, Options{Workers: 2})

	for _, f := range res.Findings {
		if f.File != "src/a.go" {
			t.Errorf("excluded file analyzed: %s", f.File)
		}
	}
	if len(res.Findings) == 0 {
		t.Error("non-excluded file produced no findings")
	}
}

func TestAnalyzeModuleBaselineRoundTrip(t *testing.T) {
	provider := &fakeProvider{trees: map[string]*ast.ParsedFile{"a.go": emptyBlockTree("a.go", 3)}}
	cfg := builtinConfig(t)

	first := AnalyzeModule(context.Background(), provider, []string{"a.go"}, cfg, Baseline{}, Options{})
	if len(first.Findings) == 0 {
		t.Fatal("expected findings on first run")
	}
	base := Baseline{Fingerprints: map[string]bool{}}
	for _, f := range first.Findings {
		base.Fingerprints[f.Fingerprint] = true
	}

	second := AnalyzeModule(context.Background(), provider, []string{"a.go"}, cfg, base, Options{})
	if len(second.Findings) != 0 {
		t.Errorf("baselined findings still reported: %+v", second.Findings)
	}
	if second.BaselineSuppressed != len(first.Findings) {
		t.Errorf("baselineSuppressed = %d, want %d", second.BaselineSuppressed, len(first.Findings))
	}

	// update mode ignores the baseline and reports everything
	update := AnalyzeModule(context.Background(), provider, []string{"a.go"}, cfg, base,
		Options{UpdateBaseline: true})
	if !reflect.DeepEqual(findingKeys(update.Findings), findingKeys(first.Findings)) {
		t.Errorf("update mode findings differ from unfiltered run")
	}
}

func TestAnalyzeModuleTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already expired
	provider := &fakeProvider{trees: map[string]*ast.ParsedFile{"a.go": emptyBlockTree("a.go", 2)}}
	res := AnalyzeModule(ctx, provider, []string{"a.go"}, builtinConfig(t), Baseline{}, Options{Workers: 1})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != model.DiagIncomplete {
		t.Fatalf("diagnostics = %+v, want one incomplete", res.Diagnostics)
	}
	if len(res.Findings) != 0 {
		t.Error("cancelled run must not report findings")
	}
}

func findingKeys(fs []model.Finding) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.File + "|" + f.RuleID + "|" + f.Fingerprint
	}
	return out
}
