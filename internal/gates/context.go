package gates

import (
	"os"
	"path/filepath"

	"github.com/varalys/preflight/internal/cache"
	"github.com/varalys/preflight/internal/enumerate"
	"github.com/varalys/preflight/internal/ignore"
	"github.com/varalys/preflight/internal/types"
)

// Context carries everything a gate may consume: the enumerated candidate
// lists, a content reader, and the audit's policy knobs. Gates never walk
// the filesystem themselves.
type Context struct {
	Root string

	// List enumerates relative paths for the given extension set, already
	// filtered by globs, the ignore file, and default excludes.
	List func(exts []string) ([]string, error)

	// Read returns the full content for a relative path.
	Read func(rel string) ([]byte, error)

	// Exists reports whether a file with the given name exists at the root.
	Exists func(name string) bool

	// SecretSeverity is the status the secret gate assigns on a match:
	// StatusFail (default) or StatusWarn.
	SecretSeverity types.Status

	// FloatingTags extends the built-in weak image tag set.
	FloatingTags []string

	// TypeCache, when non-nil, memoizes per-file escape-marker counts by
	// content hash. Only the type-escape gate touches it.
	TypeCache *cache.DB
}

// NewContext wires a Context onto the real filesystem under root.
func NewContext(root string, includeGlobs, excludeGlobs string, maxBytes int64, ign ignore.Matcher) *Context {
	return &Context{
		Root:           root,
		SecretSeverity: types.StatusFail,
		List: func(exts []string) ([]string, error) {
			return enumerate.List(enumerate.Options{
				Root:         root,
				Extensions:   exts,
				IncludeGlobs: includeGlobs,
				ExcludeGlobs: excludeGlobs,
				MaxBytes:     maxBytes,
				Ignore:       ign,
			})
		},
		Read: func(rel string) ([]byte, error) {
			return os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		},
		Exists: func(name string) bool {
			st, err := os.Stat(filepath.Join(root, name))
			return err == nil && st.Mode().IsRegular()
		},
	}
}
