package engine

import (
	"sort"
	"time"

	"github.com/alyssa-glean/detekt/internal/config"
	"github.com/alyssa-glean/detekt/internal/model"
)

// Aggregate folds per-file outcomes into the final result. Pure and
// single-threaded: it runs after the worker join, so it is the only place
// shared result structures are touched.
func Aggregate(outcomes []FileOutcome, cfg *config.EffectiveConfig, opts Options, elapsed time.Duration) *model.AnalysisResult {
	res := &model.AnalysisResult{
		Counts:  map[model.Severity]int{},
		Elapsed: elapsed,
	}

	for _, out := range outcomes {
		res.Findings = append(res.Findings, out.Findings...)
		res.Diagnostics = append(res.Diagnostics, out.Diagnostics...)
		res.BaselineSuppressed += out.BaselineSuppressed
	}

	sort.Slice(res.Findings, func(i, j int) bool {
		a, b := res.Findings[i], res.Findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		if a.StartCol != b.StartCol {
			return a.StartCol < b.StartCol
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Message < b.Message
	})
	sort.Slice(res.Diagnostics, func(i, j int) bool {
		a, b := res.Diagnostics[i], res.Diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.RuleID < b.RuleID
	})

	for _, f := range res.Findings {
		res.Counts[f.Severity]++
	}

	res.Notes = append(res.Notes, cfg.Notes...)
	for _, w := range cfg.Warnings {
		res.Notes = append(res.Notes, "config: "+w)
	}

	failOn := opts.FailOn
	if failOn == "" {
		failOn = model.SeverityError
	}
	res.Passed = true
	for _, f := range res.Findings {
		if model.SeverityGTE(f.Severity, failOn) {
			res.Passed = false
			break
		}
	}
	return res
}
