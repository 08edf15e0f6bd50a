package report

import (
	"encoding/json"
	"io"

	"github.com/varalys/preflight/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
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
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type sarifResult struct {
	RuleID  string       `json:"ruleId"`
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

func statusToLevel(s types.Status) string {
	switch s {
	case types.StatusFail:
		return "error"
	case types.StatusWarn:
		return "warning"
	default:
		return "none"
	}
}

// WriteSARIF writes the non-PASS findings as SARIF 2.1.0. Gate IDs become
// rule IDs so pipeline annotations stay stable across runs.
func WriteSARIF(w io.Writer, r types.Report) error {
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: r.Metadata.Tool, Version: r.Metadata.Version}},
		Results: []sarifResult{},
	}
	for _, f := range r.Findings {
		if f.Status == types.StatusPass {
			continue
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:  f.GateID,
			Level:   statusToLevel(f.Status),
			Message: sarifMessage{Text: f.Message},
		})
	}
	doc := sarif{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
