package core

import (
	"context"

	"github.com/varalys/preflight/internal/audit"
	"github.com/varalys/preflight/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = audit.Config
type Report = types.Report
type Finding = types.Finding

// Run is the stable entrypoint for other programs.
func Run(ctx context.Context, cfg Config) (Report, error) {
	res, err := audit.Run(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return res.Report, nil
}

// RunAudit audits rootPath with default settings. It is a convenience
// wrapper for callers that do not need to tune the Config.
func RunAudit(rootPath string) (Report, error) {
	return Run(context.Background(), Config{Root: rootPath})
}
