// Package audit is the engine: it wires file enumeration and the content
// reader into each gate, runs the gates, and aggregates their findings into
// the final Report.
package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/varalys/preflight/internal/cache"
	"github.com/varalys/preflight/internal/gates"
	"github.com/varalys/preflight/internal/ignore"
	"github.com/varalys/preflight/internal/types"
)

// ToolName appears in report metadata and telemetry envelopes.
const ToolName = "preflight"

// Config controls one audit run.
type Config struct {
	Root           string
	Version        string
	IncludeGlobs   string
	ExcludeGlobs   string
	MaxBytes       int64
	SecretSeverity string // "warn" downgrades the secret gate, anything else means FAIL
	FloatingTags   string // extra comma-separated weak image tags
	NoCache        bool
}

// Result carries the Report plus run statistics the CLI reports separately.
type Result struct {
	Report   types.Report
	Duration time.Duration
}

// Run executes every registered gate and returns the aggregated Report.
// Gates run concurrently; the findings order is registration order either
// way. The only fatal condition is an unusable root path — everything else
// degrades to per-gate WARN findings.
func Run(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	started := time.Now()

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return res, fmt.Errorf("resolve root: %w", err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		return res, fmt.Errorf("cannot read root path: %w", err)
	}
	if !st.IsDir() {
		return res, fmt.Errorf("root path is not a directory: %s", abs)
	}

	ign, _ := ignore.Load(filepath.Join(abs, ignore.Name))
	ac := gates.NewContext(abs, cfg.IncludeGlobs, cfg.ExcludeGlobs, cfg.MaxBytes, ign)
	if strings.EqualFold(cfg.SecretSeverity, "warn") {
		ac.SecretSeverity = types.StatusWarn
	}
	if cfg.FloatingTags != "" {
		ac.FloatingTags = strings.Split(cfg.FloatingTags, ",")
	}

	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(abs)
		ac.TypeCache = &db
	}

	registry := gates.Registry()
	findings := make([]types.Finding, len(registry))
	var wg sync.WaitGroup
	for i, g := range registry {
		wg.Add(1)
		go func(i int, g gates.Gate) {
			defer wg.Done()
			findings[i] = gates.Evaluate(ctx, g, ac)
		}(i, g)
	}
	wg.Wait()

	if !cfg.NoCache && len(db.Entries) > 0 {
		_ = cache.Save(abs, db)
	}

	res.Report = Aggregate(findings, types.NewMetadata(ToolName, cfg.Version, abs))
	res.Duration = time.Since(started)
	return res, nil
}

// Aggregate tallies findings into a Report. It is a pure tally plus
// envelope: finding content is taken as-is, never re-derived. Success is
// computed once, after all findings are in; WARN-only runs are successful.
func Aggregate(findings []types.Finding, meta types.Metadata) types.Report {
	var sum types.Summary
	for _, f := range findings {
		sum.Total++
		switch f.Status {
		case types.StatusFail:
			sum.Failed++
		case types.StatusWarn:
			sum.Warned++
		default:
			sum.Passed++
		}
	}
	return types.Report{
		Metadata: meta,
		Findings: findings,
		Summary:  sum,
		Success:  sum.Failed == 0,
	}
}
