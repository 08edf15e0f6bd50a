package preflight

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/varalys/preflight/internal/audit"
	"github.com/varalys/preflight/internal/config"
	"github.com/varalys/preflight/internal/gates"
	"github.com/varalys/preflight/internal/report"
	"github.com/varalys/preflight/internal/telemetry"
	"github.com/varalys/preflight/internal/update"
	"github.com/spf13/cobra"
)

var (
	flagPath           string
	flagInclude        string
	flagExclude        string
	flagMaxBytes       int64
	flagSecretSeverity string
	flagFloatingTags   string
	flagNoCache        bool
	flagReportURL      string
	flagReportToken    string
	flagSelfUpdate     bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit a project against the deploy-readiness gates",
		RunE:  runAudit,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "project root to audit")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagSecretSeverity, "secret-severity", "", "severity of secret findings: fail (default) | warn")
	cmd.Flags().StringVar(&flagFloatingTags, "floating-tags", "", "extra comma-separated image tags to treat as floating")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental type-scan cache")
	cmd.Flags().StringVar(&flagReportURL, "report-url", "", "POST the report summary (JSON) to this URL after auditing")
	cmd.Flags().StringVar(&flagReportToken, "report-token", "", "Bearer token for report upload auth")
	cmd.Flags().BoolVar(&flagSelfUpdate, "self-update", false, "update preflight to the latest release before auditing")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := audit.Config{
		Root:           abs,
		Version:        version,
		IncludeGlobs:   pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:   pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:       pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		SecretSeverity: pickString(flagSecretSeverity, lcfg.SecretSeverity, gcfg.SecretSeverity),
		FloatingTags:   pickString(flagFloatingTags, lcfg.FloatingTags, gcfg.FloatingTags),
		NoCache:        pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
	}
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)

	// Friendly banner before auditing
	if !flagJSON && !flagSARIF {
		noUpdate := pickBool(flagNoUpdateCheck, lcfg.NoUpdateCheck, gcfg.NoUpdateCheck)
		if !noUpdate {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'preflight update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
	}

	res, err := audit.Run(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("audit error: %w", err)
	}

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, res.Report); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Report); err != nil {
			return err
		}
	default:
		report.Print(os.Stdout, res.Report, report.PrintOptions{NoColor: noColor, Duration: res.Duration})
	}

	if url := pickString(flagReportURL, lcfg.ReportURL, gcfg.ReportURL); url != "" {
		token := pickString(flagReportToken, lcfg.ReportToken, gcfg.ReportToken)
		telemetry.Notify(url, token, telemetry.NewEnvelope(res.Report, res.Duration), telemetry.DefaultTimeout, func(err error) {
			_, _ = fmt.Fprintln(os.Stderr, "report upload failed:", err)
		})
	}

	if !res.Report.Success {
		os.Exit(1)
	}
	return nil
}

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update preflight to the latest GitHub release",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Println("preflight is up to date")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the preflight version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("preflight", version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	gatesCmd := &cobra.Command{
		Use:   "gates",
		Short: "List the deploy-readiness gates and their IDs",
		Run: func(_ *cobra.Command, _ []string) {
			for _, g := range gates.Registry() {
				fmt.Printf("%-20s %s\n", g.ID, g.Title)
			}
		},
	}
	rootCmd.AddCommand(gatesCmd)
}
