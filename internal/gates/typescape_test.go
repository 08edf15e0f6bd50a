package gates

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/varalys/preflight/internal/cache"
	"github.com/varalys/preflight/internal/types"
)

func TestTypeEscape_FailOnAny(t *testing.T) {
	ac := fakeContext(map[string]string{
		"src/a.ts": "const x: any = 1;\n",
		"src/b.ts": "const y: number = 2;\n",
	})
	f := TypeEscape(context.Background(), ac)
	if f.Status != types.StatusFail {
		t.Fatalf("status = %s, want FAIL (%s)", f.Status, f.Message)
	}
	if f.Count != 1 || f.AffectedFiles != 1 {
		t.Fatalf("count=%d affected=%d, want 1/1", f.Count, f.AffectedFiles)
	}
}

func TestTypeEscape_UnionPositionCounted(t *testing.T) {
	ac := fakeContext(map[string]string{
		"src/a.ts": "type T = string | any;\n",
	})
	f := TypeEscape(context.Background(), ac)
	if f.Status != types.StatusFail || f.Count != 1 {
		t.Fatalf("union position: %#v", f)
	}
}

func TestTypeEscape_PassWhenClean(t *testing.T) {
	ac := fakeContext(map[string]string{
		"src/a.ts": "export const n: number = 1;\n",
	})
	f := TypeEscape(context.Background(), ac)
	if f.Status != types.StatusPass {
		t.Fatalf("clean project: %#v", f)
	}
}

func TestTypeEscape_WarnWhenNoFiles(t *testing.T) {
	ac := fakeContext(map[string]string{"src/app.js": "let x = 1;\n"})
	f := TypeEscape(context.Background(), ac)
	if f.Status != types.StatusWarn {
		t.Fatalf("no matching files should WARN: %#v", f)
	}
}

func TestTypeEscape_WarnWhenNothingParsed(t *testing.T) {
	ac := fakeContext(map[string]string{
		"src/broken.ts": "const = = {{{\n",
	})
	f := TypeEscape(context.Background(), ac)
	if f.Status != types.StatusWarn {
		t.Fatalf("all-parse-failure should WARN: %#v", f)
	}
	if f.Message == "no TypeScript sources found" {
		t.Fatal("parse-failure WARN must be distinct from no-files WARN")
	}
}

func TestTypeEscape_UnreadableFilesNotCalledParseFailures(t *testing.T) {
	ac := fakeContext(map[string]string{"src/gone.ts": "const x = 1;\n"})
	ac.Read = func(string) ([]byte, error) { return nil, os.ErrPermission }
	f := TypeEscape(context.Background(), ac)
	if f.Status != types.StatusWarn {
		t.Fatalf("nothing evaluated should WARN: %#v", f)
	}
	if !strings.Contains(f.Message, "1 of 1") || strings.Contains(f.Message, "parse") {
		t.Fatalf("read failure misattributed: %q", f.Message)
	}
}

func TestTypeEscape_DeclarationOutputsSkipped(t *testing.T) {
	ac := fakeContext(map[string]string{
		"lib/api.d.ts": "export declare const x: any;\n",
	})
	f := TypeEscape(context.Background(), ac)
	// only .d.ts files present: nothing scanned
	if f.Status != types.StatusWarn {
		t.Fatalf(".d.ts should not be scanned: %#v", f)
	}
}

func TestTypeEscape_CacheHitSkipsParse(t *testing.T) {
	src := "const x: any = 1;\n"
	db := &cache.DB{Entries: map[string]cache.Entry{
		// pre-seeded with a count that disagrees with the source; a cache
		// hit must be trusted without re-parsing
		"src/a.ts": {Hash: cache.Hash([]byte(src)), Count: 5},
	}}
	ac := fakeContext(map[string]string{"src/a.ts": src})
	ac.TypeCache = db
	f := TypeEscape(context.Background(), ac)
	if f.Count != 5 {
		t.Fatalf("cache entry not used: %#v", f)
	}
}

func TestTypeEscape_CachePopulated(t *testing.T) {
	src := "const x: any = 1;\n"
	db := &cache.DB{Entries: map[string]cache.Entry{}}
	ac := fakeContext(map[string]string{"src/a.ts": src})
	ac.TypeCache = db
	_ = TypeEscape(context.Background(), ac)
	e, ok := db.Entries["src/a.ts"]
	if !ok || e.Count != 1 || e.Hash != cache.Hash([]byte(src)) {
		t.Fatalf("cache not populated: %#v", db.Entries)
	}
}
