package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// RuleConfig is one rule's partial settings within a layer. Nil pointers mean
// "not mentioned here", so lower layers shine through.
type RuleConfig struct {
	Enabled    *bool          `yaml:"enabled"`
	Severity   *string        `yaml:"severity"`
	Parameters map[string]any `yaml:"parameters"`
}

// Layer is one partial configuration source: the global user config, a
// module-level override, or CLI flags.
type Layer struct {
	Name     string                `yaml:"-"`
	Rules    map[string]RuleConfig `yaml:"rules"`
	Excludes []string              `yaml:"excludes"`
	FailFast *bool                 `yaml:"failFast"`
}

const FileName = ".detekt.yml"

// LoadLayer reads one YAML layer from disk.
func LoadLayer(path string) (Layer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, err
	}
	var l Layer
	if err := yaml.Unmarshal(b, &l); err != nil {
		return Layer{}, fmt.Errorf("parse %s: %w", path, err)
	}
	l.Name = path
	for _, pat := range l.Excludes {
		if !doublestar.ValidatePattern(pat) {
			return Layer{}, fmt.Errorf("parse %s: bad exclude pattern %q", path, pat)
		}
	}
	return l, nil
}

// FindGlobal searches upwards from startDir for a .detekt.yml, stopping at the
// filesystem root. Returns the empty string when none exists.
func FindGlobal(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Excluded reports whether a slash-separated relative path matches any pattern.
func Excluded(path string, patterns []string) bool {
	path = filepath.ToSlash(path)
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}
