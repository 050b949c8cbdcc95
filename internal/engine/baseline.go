package engine

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/alyssa-glean/detekt/internal/model"
)

// Baseline is a persisted set of accepted fingerprints from a prior run.
// Loaded once per analysis request, read-only during filtering.
type Baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

// LoadBaseline reads a baseline file. Accepts either a bare fingerprint array
// or the full struct form. An empty path yields an empty baseline.
func LoadBaseline(path string) (Baseline, error) {
	var b Baseline
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	var fp []string
	if err := json.Unmarshal(data, &fp); err == nil {
		m := make(map[string]bool, len(fp))
		for _, f := range fp {
			m[f] = true
		}
		b.Fingerprints = m
		return b, nil
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return b, err
	}
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b, nil
}

// FilterBaseline splits findings into reported ones and a count of those the
// baseline already accepts. Findings absent from the baseline always survive.
func FilterBaseline(findings []model.Finding, b Baseline) ([]model.Finding, int) {
	if len(b.Fingerprints) == 0 {
		return findings, 0
	}
	var kept []model.Finding
	suppressed := 0
	for _, f := range findings {
		if f.Fingerprint != "" && b.Fingerprints[f.Fingerprint] {
			suppressed++
			continue
		}
		kept = append(kept, f)
	}
	return kept, suppressed
}

// WriteBaseline overwrites the baseline with the fingerprints of the given
// findings, sorted for reproducible diffs.
func WriteBaseline(path string, findings []model.Finding) error {
	if path == "" {
		return nil
	}
	set := map[string]bool{}
	for _, f := range findings {
		if f.Fingerprint != "" {
			set[f.Fingerprint] = true
		}
	}
	arr := make([]string, 0, len(set))
	for fp := range set {
		arr = append(arr, fp)
	}
	sort.Strings(arr)
	data, err := json.MarshalIndent(arr, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
