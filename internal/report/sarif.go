package report

import (
	"encoding/json"

	"github.com/alyssa-glean/detekt/internal/model"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}
type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}
type sarifArt struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine   int `json:"startLine"`
	EndLine     int `json:"endLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// ToSARIF renders findings as a SARIF 2.1.0 document.
func ToSARIF(res *model.AnalysisResult) ([]byte, error) {
	var results []sarifResult
	for _, f := range res.Findings {
		level := "note"
		switch f.Severity {
		case model.SeverityStyle:
			level = "note"
		case model.SeverityWarning:
			level = "warning"
		case model.SeverityError, model.SeverityDefect:
			level = "error"
		}
		results = append(results, sarifResult{
			RuleID:  f.RuleID,
			Level:   level,
			Message: sarifMessage{Text: f.Message},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: f.File},
				Region: sarifRegion{
					StartLine:   f.StartLine,
					EndLine:     f.EndLine,
					StartColumn: f.StartCol,
					EndColumn:   f.EndCol,
				},
			}}},
		})
	}
	s := sarif{Version: "2.1.0", Runs: []sarifRun{{Tool: sarifTool{Driver: sarifDriver{Name: "detekt"}}, Results: results}}}
	return json.MarshalIndent(s, "", "  ")
}
