// Package enumerate walks a project tree and produces the ordered candidate
// file lists the gates consume. Gates never touch the filesystem layout
// themselves; they receive relative paths and a content reader.
package enumerate

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/varalys/preflight/internal/ignore"
)

// defaultDirExcludes are directory names never worth auditing: dependency
// trees, build output, VCS metadata and tool caches.
var defaultDirExcludes = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
	".svn":         true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	"vendor":       true,
	".next":        true,
	".nuxt":        true,
	".cache":       true,
	".turbo":       true,
}

// minified bundles and source maps are generated artifacts, not audit targets
var defaultFileSuffixExcludes = []string{".min.js", ".min.css", ".map"}

func isDefaultFileExcluded(lowerRel string) bool {
	for _, s := range defaultFileSuffixExcludes {
		if strings.HasSuffix(lowerRel, s) {
			return true
		}
	}
	return false
}

// Options scope one enumeration pass.
type Options struct {
	Root         string
	Extensions   []string // lowercase, dotted (".ts"); empty = all files
	IncludeGlobs string   // comma-separated, positive filter when non-empty
	ExcludeGlobs string   // comma-separated, subtracted last
	MaxBytes     int64    // skip files larger than this when > 0
	Ignore       ignore.Matcher
}

// List returns relative paths under opts.Root matching the options, sorted
// for deterministic downstream output. Unreadable entries are skipped, not
// reported: a single bad file never aborts an audit.
func List(opts Options) ([]string, error) {
	exts := map[string]bool{}
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	var out []string
	err := filepath.WalkDir(opts.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != opts.Root && defaultDirExcludes[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(opts.Root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		lower := strings.ToLower(rel)
		if isDefaultFileExcluded(lower) {
			return nil
		}
		if len(exts) > 0 && !exts[extKey(lower)] {
			return nil
		}
		if !allowedByGlobs(rel, opts.IncludeGlobs, opts.ExcludeGlobs) {
			return nil
		}
		if opts.Ignore.Match(rel) {
			return nil
		}
		if opts.MaxBytes > 0 {
			if info, err := d.Info(); err == nil && info.Size() > opts.MaxBytes {
				return nil
			}
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// LooksBinary reports whether content sniffs as non-text (NUL byte within
// the first 800 bytes).
func LooksBinary(b []byte) bool {
	n := len(b)
	if n > 800 {
		n = 800
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// extKey returns the extension class a file matches against. Dotenv
// variants (.env.local, .env.production) all class as ".env"; their literal
// extension would otherwise hide real secret carriers from enumeration.
func extKey(lowerRel string) string {
	base := lowerRel
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if base == ".env" || strings.HasPrefix(base, ".env.") {
		return ".env"
	}
	return filepath.Ext(base)
}

func allowedByGlobs(rel, includes, excludes string) bool {
	if inc := splitGlobs(includes); len(inc) > 0 && !matchAny(rel, inc) {
		return false
	}
	if exc := splitGlobs(excludes); len(exc) > 0 && matchAny(rel, exc) {
		return false
	}
	return true
}

func splitGlobs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

func matchAny(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
