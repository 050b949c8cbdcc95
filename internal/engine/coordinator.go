package engine

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alyssa-glean/detekt/internal/ast"
	"github.com/alyssa-glean/detekt/internal/config"
	"github.com/alyssa-glean/detekt/internal/model"
)

// Options are the per-request execution policies.
type Options struct {
	Workers        int            // 0 means runtime.NumCPU()
	FailFast       bool           // stop dispatching after a severe finding or rule crash
	FailOn         model.Severity // pass/fail threshold; zero value means error
	UpdateBaseline bool           // skip baseline filtering, caller rewrites the file
}

// AnalyzeModule fans file analysis out over a bounded worker pool and folds
// the per-file outcomes into one deterministic result. Worker count and
// completion order never change the reported content or its ordering; they
// only move wall-clock time.
func AnalyzeModule(ctx context.Context, provider ast.Provider, files []string, cfg *config.EffectiveConfig, base Baseline, opts Options) *model.AnalysisResult {
	start := time.Now()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}

	work := make([]string, 0, len(files))
	for _, f := range files {
		if config.Excluded(f, cfg.Excludes) {
			continue
		}
		work = append(work, filepath.ToSlash(f))
	}
	sort.Strings(work)

	outcomes := make([]FileOutcome, len(work))
	var stop atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range work {
		i, file := i, file
		g.Go(func() error {
			// A file cancelled before it starts is reported as incomplete,
			// never silently dropped.
			if gctx.Err() != nil {
				outcomes[i] = incompleteOutcome(file, "timeout")
				return nil
			}
			if stop.Load() {
				outcomes[i] = incompleteOutcome(file, "fail-fast")
				return nil
			}

			pf, err := provider.Parse(file)
			if err != nil {
				outcomes[i] = parseFailureOutcome(file, err)
				return nil
			}

			out := AnalyzeFile(pf, cfg)
			if !opts.UpdateBaseline {
				out.Findings, out.BaselineSuppressed = FilterBaseline(out.Findings, base)
			}

			// In-flight work is never discarded, but a file finishing after
			// the deadline counts as abandoned.
			if gctx.Err() != nil {
				outcomes[i] = incompleteOutcome(file, "timeout")
				return nil
			}

			if opts.FailFast && tripsFailFast(out) {
				stop.Store(true)
			}
			outcomes[i] = out
			return nil
		})
	}
	_ = g.Wait()

	return Aggregate(outcomes, cfg, opts, time.Since(start))
}

func tripsFailFast(out FileOutcome) bool {
	for _, f := range out.Findings {
		if model.SeverityGTE(f.Severity, model.SeverityError) {
			return true
		}
	}
	for _, d := range out.Diagnostics {
		if d.Kind == model.DiagInternalRuleError {
			return true
		}
	}
	return false
}

func incompleteOutcome(file, reason string) FileOutcome {
	return FileOutcome{
		File: file,
		Diagnostics: []model.Diagnostic{{
			Kind:   model.DiagIncomplete,
			File:   file,
			Detail: "analysis cancelled: " + reason,
		}},
	}
}

func parseFailureOutcome(file string, err error) FileOutcome {
	detail := err.Error()
	var perr *ast.ParseError
	if errors.As(err, &perr) {
		detail = perr.Detail
	}
	return FileOutcome{
		File: file,
		Diagnostics: []model.Diagnostic{{
			Kind:   model.DiagParseFailure,
			File:   file,
			Detail: detail,
		}},
	}
}
