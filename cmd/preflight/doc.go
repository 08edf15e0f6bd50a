// Package preflight provides the command-line interface for the Preflight
// tool. It configures subcommands (audit, ci, update, etc.), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/varalys/preflight/cmd/preflight"
//	func main() { preflight.Execute() }
package preflight
