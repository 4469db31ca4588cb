package diagfmt

import (
	"encoding/json"
	"io"
	"slices"

	"cpplint/internal/diag"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	RuleIndex  int             `json:"ruleIndex"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Each category seen becomes a rule; results point at it by index.
func Sarif(w io.Writer, diags []diag.Diagnostic, meta SarifRunMeta) error {
	var cats []string
	for _, d := range diags {
		if !slices.Contains(cats, d.Category) {
			cats = append(cats, d.Category)
		}
	}
	slices.Sort(cats)

	rules := make([]sarifRule, len(cats))
	for i, c := range cats {
		rules[i] = sarifRule{ID: c, ShortDescription: sarifMessage{Text: c}}
	}

	results := make([]sarifResult, 0, len(diags))
	for _, d := range diags {
		loc := sarifPhysical{ArtifactLocation: sarifArtifact{URI: formatPath(d.File, meta.PathMode, meta.BaseDir)}}
		// SARIF lines start at 1; file-level findings carry line 0
		if d.Line > 0 {
			loc.Region = &sarifRegion{StartLine: d.Line}
		}
		idx, _ := slices.BinarySearch(cats, d.Category)
		results = append(results, sarifResult{
			RuleID:     d.Category,
			RuleIndex:  idx,
			Level:      sarifLevel(d.Severity()),
			Message:    sarifMessage{Text: d.Message},
			Locations:  []sarifLocation{{PhysicalLocation: loc}},
			Properties: map[string]any{"confidence": d.Confidence},
		})
	}

	name := meta.ToolName
	if name == "" {
		name = "cpplint"
	}
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: name, Version: meta.ToolVersion, Rules: rules}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}
