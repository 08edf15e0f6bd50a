// Package gates implements the five deploy-readiness checks. Every gate is a
// pure function of its Context and returns exactly one Finding; gates share
// no state and may run in any order or in parallel.
package gates

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/varalys/preflight/internal/types"
)

// Gate IDs double as stable rule IDs in JSON and SARIF output.
const (
	IDTypeEscape  = "no-explicit-any"
	IDSecrets     = "no-secrets"
	IDDockerPin   = "docker-pinning"
	IDDebugOutput = "no-console-log"
	IDLockfile    = "lockfile-present"
)

// Gate is one registered policy check.
type Gate struct {
	ID    string
	Title string
	Run   func(ctx context.Context, ac *Context) types.Finding
}

// Registry returns the gates in their fixed registration order. Report
// findings are emitted in this order regardless of evaluation order.
func Registry() []Gate {
	return []Gate{
		{ID: IDTypeEscape, Title: "Type escapes", Run: TypeEscape},
		{ID: IDSecrets, Title: "Secrets", Run: Secrets},
		{ID: IDDockerPin, Title: "Base image pinning", Run: ContainerPinning},
		{ID: IDDebugOutput, Title: "Debug output", Run: DebugOutput},
		{ID: IDLockfile, Title: "Dependency lockfile", Run: Lockfile},
	}
}

// Evaluate runs one gate behind a panic boundary. A fault inside a gate
// downgrades to a WARN Finding for that gate only; the remaining gates and
// the aggregation step always see a complete result set.
func Evaluate(ctx context.Context, g Gate, ac *Context) (f types.Finding) {
	defer func() {
		if r := recover(); r != nil {
			f = types.Finding{
				GateID:  g.ID,
				Status:  types.StatusWarn,
				Message: fmt.Sprintf("check did not complete: %v", r),
			}
		}
	}()
	return g.Run(ctx, ac)
}

// testDirNames are path segments that designate test code by convention.
// Files under them are fixtures and specs that do not ship to production,
// so the secret and debug-output gates skip them.
var testDirNames = map[string]bool{
	"test":      true,
	"tests":     true,
	"__tests__": true,
	"spec":      true,
	"specs":     true,
	"__mocks__": true,
	"fixtures":  true,
	"testdata":  true,
}

var testNameMarkers = []string{".test.", ".spec.", ".mock."}

func isTestDesignated(rel string) bool {
	lower := strings.ToLower(filepath.ToSlash(rel))
	base := filepath.Base(lower)
	for _, m := range testNameMarkers {
		if strings.Contains(base, m) {
			return true
		}
	}
	for _, seg := range strings.Split(lower, "/") {
		if testDirNames[seg] {
			return true
		}
	}
	return false
}
