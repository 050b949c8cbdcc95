package model

import "time"

type Severity string

const (
	SeverityStyle   Severity = "style"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityDefect  Severity = "defect"
)

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityDefect):
		return SeverityDefect
	case string(SeverityError):
		return SeverityError
	case string(SeverityWarning):
		return SeverityWarning
	default:
		return SeverityStyle
	}
}

func ValidSeverity(s string) bool {
	switch Severity(s) {
	case SeverityStyle, SeverityWarning, SeverityError, SeverityDefect:
		return true
	}
	return false
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityStyle: 1, SeverityWarning: 2, SeverityError: 3, SeverityDefect: 4}
	return order[a] >= order[b]
}

type Finding struct {
	RuleID      string   `json:"ruleId"`
	Severity    Severity `json:"severity"`
	File        string   `json:"file"`
	StartLine   int      `json:"startLine"`
	EndLine     int      `json:"endLine"`
	StartCol    int      `json:"startCol"`
	EndCol      int      `json:"endCol"`
	Message     string   `json:"message"`
	Snippet     string   `json:"snippet,omitempty"`
	Entity      string   `json:"entity"`
	Fingerprint string   `json:"fingerprint"`
}

type DiagKind string

const (
	DiagParseFailure      DiagKind = "parse-failure"
	DiagInternalRuleError DiagKind = "internal-rule-error"
	DiagIncomplete        DiagKind = "incomplete"
)

// Diagnostic records a per-file or per-rule fault that did not abort the run.
type Diagnostic struct {
	Kind   DiagKind `json:"kind"`
	File   string   `json:"file"`
	RuleID string   `json:"ruleId,omitempty"`
	Line   int      `json:"line,omitempty"`
	Detail string   `json:"detail"`
}

type AnalysisResult struct {
	Findings           []Finding        `json:"findings"`
	Diagnostics        []Diagnostic     `json:"diagnostics,omitempty"`
	Notes              []string         `json:"notes,omitempty"`
	Counts             map[Severity]int `json:"counts"`
	BaselineSuppressed int              `json:"baselineSuppressed"`
	Passed             bool             `json:"passed"`
	Elapsed            time.Duration    `json:"elapsed"`
}
