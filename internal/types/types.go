package types

import "time"

// Status is a gate verdict. WARN flags a degraded or skipped check without
// blocking deployment; only FAIL does that.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
)

// Finding is one gate's verdict for the whole project. Exactly one Finding
// is produced per gate per audit run; it is never mutated after creation.
type Finding struct {
	GateID        string `json:"gateId"`
	Status        Status `json:"status"`
	Message       string `json:"message"`
	Count         int    `json:"count,omitempty"`
	AffectedFiles int    `json:"affectedFileCount,omitempty"`
}

// Metadata is the report envelope: tool identity, when the audit ran, and
// the resolved absolute root it ran over.
type Metadata struct {
	Tool      string `json:"toolName"`
	Version   string `json:"toolVersion,omitempty"`
	Timestamp string `json:"timestampISO8601"`
	Root      string `json:"rootPathAbsolute"`
}

// Summary tallies statuses. Total always equals Passed+Failed+Warned and the
// length of the findings slice it was computed from.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Warned int `json:"warned"`
}

// Report is the machine-consumable audit result. Findings are ordered by
// fixed gate registration order, not evaluation order.
type Report struct {
	Metadata Metadata  `json:"metadata"`
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
	Success  bool      `json:"success"`
}

// NewMetadata stamps the envelope with the current time in RFC 3339.
func NewMetadata(tool, version, root string) Metadata {
	return Metadata{
		Tool:      tool,
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Root:      root,
	}
}
