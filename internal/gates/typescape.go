package gates

import (
	"context"
	"fmt"
	"strings"

	"github.com/varalys/preflight/internal/cache"
	"github.com/varalys/preflight/internal/tsparse"
	"github.com/varalys/preflight/internal/types"
)

var typeEscapeExts = []string{".ts", ".tsx"}

// TypeEscape counts explicit `any` annotations across the project's
// TypeScript sources using the syntax-aware pass. Declaration outputs
// (.d.ts) are generated artifacts and are skipped.
func TypeEscape(ctx context.Context, ac *Context) types.Finding {
	files, err := ac.List(typeEscapeExts)
	if err != nil {
		return types.Finding{GateID: IDTypeEscape, Status: types.StatusWarn,
			Message: fmt.Sprintf("could not enumerate TypeScript sources: %v", err)}
	}

	var scanned, parsed, failed, unreadable, total, affected int
	for _, rel := range files {
		if strings.HasSuffix(strings.ToLower(rel), ".d.ts") {
			continue
		}
		scanned++
		data, err := ac.Read(rel)
		if err != nil {
			unreadable++ // excluded from counts, never aborts
			continue
		}

		n, ok := cachedCount(ac.TypeCache, rel, data)
		if !ok {
			n, err = tsparse.CountEscapeMarkers(ctx, rel, data)
			if err != nil {
				failed++
				continue
			}
			storeCount(ac.TypeCache, rel, data, n)
		}
		parsed++
		if n > 0 {
			total += n
			affected++
		}
	}

	switch {
	case scanned == 0:
		return types.Finding{GateID: IDTypeEscape, Status: types.StatusWarn,
			Message: "no TypeScript sources found"}
	case parsed == 0:
		return types.Finding{GateID: IDTypeEscape, Status: types.StatusWarn,
			Message: fmt.Sprintf("type scan could not be completed (%d of %d files could not be evaluated)", failed+unreadable, scanned)}
	case total > 0:
		return types.Finding{GateID: IDTypeEscape, Status: types.StatusFail,
			Message:       fmt.Sprintf("found %d explicit 'any' annotation(s) in %d file(s)", total, affected),
			Count:         total,
			AffectedFiles: affected}
	default:
		return types.Finding{GateID: IDTypeEscape, Status: types.StatusPass,
			Message: fmt.Sprintf("no explicit 'any' annotations in %d file(s)", parsed)}
	}
}

func cachedCount(db *cache.DB, rel string, data []byte) (int, bool) {
	if db == nil || db.Entries == nil {
		return 0, false
	}
	e, ok := db.Entries[rel]
	if !ok || e.Hash != cache.Hash(data) {
		return 0, false
	}
	return e.Count, true
}

func storeCount(db *cache.DB, rel string, data []byte, n int) {
	if db == nil {
		return
	}
	if db.Entries == nil {
		db.Entries = map[string]cache.Entry{}
	}
	db.Entries[rel] = cache.Entry{Hash: cache.Hash(data), Count: n}
}
