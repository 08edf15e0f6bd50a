package preflight

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagSARIF         bool
	flagNoColor       bool
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the preflight CLI.
var rootCmd = &cobra.Command{
	Use:           "preflight",
	Short:         "Gate deployments on project policy checks",
	Long:          "Preflight audits a JavaScript/TypeScript project against fixed deploy-readiness gates (type escapes, secrets, base image pinning, debug output, lockfiles) and reports PASS/FAIL/WARN per gate.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the preflight CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit the report as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit the report as SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
