package gates

import (
	"context"
	"fmt"
	"regexp"

	"github.com/varalys/preflight/internal/sanitize"
	"github.com/varalys/preflight/internal/types"
)

var debugExts = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

var consoleLogRe = regexp.MustCompile(`\bconsole\.log\s*\(`)

// DebugOutput counts console.log call sites outside test-designated paths.
// Content is sanitized (comments first, then strings) so a console.log in a
// comment or a log-parser fixture string does not count.
func DebugOutput(_ context.Context, ac *Context) types.Finding {
	files, err := ac.List(debugExts)
	if err != nil {
		return types.Finding{GateID: IDDebugOutput, Status: types.StatusWarn,
			Message: fmt.Sprintf("could not enumerate files: %v", err)}
	}

	total, affected := 0, 0
	first := ""
	for _, rel := range files {
		if isTestDesignated(rel) {
			continue
		}
		data, err := ac.Read(rel)
		if err != nil {
			continue
		}
		clean := sanitize.StripStrings(sanitize.StripComments(string(data)))
		if n := len(consoleLogRe.FindAllStringIndex(clean, -1)); n > 0 {
			total += n
			affected++
			if first == "" {
				first = rel
			}
		}
	}

	if total > 0 {
		return types.Finding{GateID: IDDebugOutput, Status: types.StatusFail,
			Message:       fmt.Sprintf("found %d console.log call(s) in %d file(s) (first: %s)", total, affected, first),
			Count:         total,
			AffectedFiles: affected}
	}
	return types.Finding{GateID: IDDebugOutput, Status: types.StatusPass,
		Message: "no console.log calls"}
}
