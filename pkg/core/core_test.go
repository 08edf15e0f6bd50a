package core

import (
	"bytes"
	"testing"
)

func TestRunAudit_Smoke(t *testing.T) {
	report, err := RunAudit(t.TempDir())
	if err != nil {
		t.Fatalf("RunAudit error: %v", err)
	}
	if len(report.Findings) == 0 {
		t.Fatal("expected at least one finding per registered gate")
	}
	if report.Summary.Total != len(report.Findings) {
		t.Fatalf("summary total %d != findings %d", report.Summary.Total, len(report.Findings))
	}

	var buf bytes.Buffer
	if err := MarshalReport(&buf, report); err != nil {
		t.Fatalf("MarshalReport error: %v", err)
	}
	back, err := UnmarshalReport(&buf)
	if err != nil {
		t.Fatalf("UnmarshalReport error: %v", err)
	}
	if back.Summary.Total != report.Summary.Total {
		t.Fatalf("round-trip changed summary: %+v vs %+v", back.Summary, report.Summary)
	}
}
