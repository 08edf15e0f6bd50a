package gates

import (
	"context"
	"fmt"
	"strings"

	"github.com/varalys/preflight/internal/types"
)

// Lockfile checks that dependency resolution is reproducible: at least one
// recognized lockfile must exist at the project root.
func Lockfile(_ context.Context, ac *Context) types.Finding {
	for _, name := range lockfileNames {
		if ac.Exists(name) {
			return types.Finding{GateID: IDLockfile, Status: types.StatusPass,
				Message: fmt.Sprintf("found %s", name)}
		}
	}
	return types.Finding{GateID: IDLockfile, Status: types.StatusFail,
		Message: fmt.Sprintf("no dependency lockfile found (expected one of: %s)", strings.Join(lockfileNames, ", "))}
}
