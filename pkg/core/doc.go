// Package core provides a small, stable facade over Preflight's internal
// audit engine for external integrations. It deliberately re-exports a
// narrow API surface so CI plugins and third-party tools can depend on a
// stable import path without exposing internal implementation packages.
//
// Example:
//
//	report, err := core.RunAudit(".")
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, report)
package core
