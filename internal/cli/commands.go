package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alyssa-glean/detekt/internal/config"
	"github.com/alyssa-glean/detekt/internal/engine"
	"github.com/alyssa-glean/detekt/internal/goast"
	"github.com/alyssa-glean/detekt/internal/model"
	"github.com/alyssa-glean/detekt/internal/report"
	"github.com/alyssa-glean/detekt/internal/rules"
	"github.com/alyssa-glean/detekt/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newScanCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newInitCmd())
}

func newScanCmd() *cobra.Command {
	var (
		format         string
		outputFile     string
		sarifOut       string
		baselinePath   string
		updateBaseline bool
		failOn         string
		failFast       bool
		jobs           int
		budgetMs       int
		useTUI         bool
		noTypes        bool
		useCache       bool
		extraConfig    string
	)
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Analyze a module for code smells",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			registry := rules.NewRegistry()
			registry.RegisterBuiltin()
			registry.Seal()

			layers, err := collectLayers(path, extraConfig)
			if err != nil {
				return err
			}

			provider := buildProvider(path, noTypes, useCache)
			cfg := config.Resolve(layers, registry, provider.Degraded())
			if cmd.Flags().Changed("fail-fast") {
				cfg.FailFast = failFast
			}

			base, err := loadBaseline(baselinePath, updateBaseline)
			if err != nil {
				return err
			}

			files := discoverFiles(path)
			slog.Info("scanning", "path", path, "files", len(files), "degraded", provider.Degraded())

			ctx := cmd.Context()
			if budgetMs > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(budgetMs)*time.Millisecond)
				defer cancel()
			}

			res := engine.AnalyzeModule(ctx, provider, files, cfg, base, engine.Options{
				Workers:        jobs,
				FailFast:       cfg.FailFast,
				FailOn:         model.ParseSeverity(failOn),
				UpdateBaseline: updateBaseline,
			})

			if updateBaseline {
				if baselinePath == "" {
					return errors.New("--update-baseline requires --baseline")
				}
				if err := engine.WriteBaseline(baselinePath, res.Findings); err != nil {
					return fmt.Errorf("write baseline: %w", err)
				}
				slog.Info("baseline updated", "path", baselinePath, "fingerprints", len(res.Findings))
			}

			if useTUI {
				return tui.Run(res)
			}
			if err := emit(cmd, res, format, outputFile, sarifOut); err != nil {
				return err
			}
			if !updateBaseline && !res.Passed {
				return fmt.Errorf("fail threshold met: findings at or above %s severity", model.ParseSeverity(failOn))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file (with --format json)")
	cmd.Flags().StringVar(&sarifOut, "sarif-out", "", "Write SARIF report to file (with --format sarif)")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Baseline file of accepted fingerprints")
	cmd.Flags().BoolVar(&updateBaseline, "update-baseline", false, "Rewrite the baseline from this run's findings")
	cmd.Flags().StringVar(&failOn, "fail-on", "error", "Fail if a finding of this severity or higher exists (style|warning|error|defect)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop dispatching files after a severe finding")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Worker count (0 = number of CPUs)")
	cmd.Flags().IntVar(&budgetMs, "budget-ms", 0, "Wall-clock budget for the whole scan in milliseconds")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	cmd.Flags().BoolVar(&noTypes, "no-types", false, "Skip type loading; rules needing semantic context are disabled")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Cache parsed trees by file content")
	cmd.Flags().StringVarP(&extraConfig, "config", "c", "", "Extra config layer applied after discovered ones")
	return cmd
}

// collectLayers assembles the ordered config chain: global (found by upward
// search) < module-level < explicit --config.
func collectLayers(path, extraConfig string) ([]config.Layer, error) {
	var layers []config.Layer
	moduleCfg := filepath.Join(path, config.FileName)
	global := config.FindGlobal(filepath.Dir(filepath.Clean(path)))
	if global != "" {
		l, err := config.LoadLayer(global)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	if _, err := os.Stat(moduleCfg); err == nil {
		l, err := config.LoadLayer(moduleCfg)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	if extraConfig != "" {
		l, err := config.LoadLayer(extraConfig)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}

func buildProvider(path string, noTypes, useCache bool) *goast.Provider {
	var opts []goast.Option
	if useCache {
		opts = append(opts, goast.WithCache())
	}
	if noTypes {
		return goast.NewProvider(opts...)
	}
	p, err := goast.NewProviderWithTypes(path, opts...)
	if err != nil {
		slog.Warn("type loading failed, degrading to syntax-only analysis", "err", err)
		return goast.NewProvider(opts...)
	}
	return p
}

func loadBaseline(path string, update bool) (engine.Baseline, error) {
	base, err := engine.LoadBaseline(path)
	if err != nil {
		if update && os.IsNotExist(err) {
			return engine.Baseline{}, nil
		}
		return engine.Baseline{}, fmt.Errorf("load baseline: %w", err)
	}
	return base, nil
}

// discoverFiles returns the module's Go files, skipping hidden and vendor
// directories.
func discoverFiles(root string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) == ".go" {
			out = append(out, path)
		}
		return nil
	})
	return out
}

func emit(cmd *cobra.Command, res *model.AnalysisResult, format, outputFile, sarifOut string) error {
	switch format {
	case "json":
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return err
			}
			defer f.Close()
			return report.WriteJSON(f, res)
		}
		return report.WriteJSON(cmd.OutOrStdout(), res)
	case "sarif":
		data, err := report.ToSARIF(res)
		if err != nil {
			return err
		}
		if sarifOut != "" {
			return os.WriteFile(sarifOut, data, 0o644)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Findings: %d (elapsed %s)\n", len(res.Findings), res.Elapsed)
		for _, f := range res.Findings {
			fmt.Fprintf(w, "- %s [%s] %s:%d-%d %s\n", f.RuleID, f.Severity, f.File, f.StartLine, f.EndLine, f.Message)
		}
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "! %s %s %s\n", d.Kind, d.File, d.Detail)
		}
		for _, n := range res.Notes {
			fmt.Fprintf(w, "note: %s\n", n)
		}
		if res.BaselineSuppressed > 0 {
			fmt.Fprintf(w, "baseline-suppressed: %d\n", res.BaselineSuppressed)
		}
	}
	return nil
}
