// Package ignore implements the .preflightignore matcher: one pattern per
// line, # comments and blank lines skipped. Patterns ending in "/" exclude
// whole directories; everything else is matched with gitignore-style globs
// against the relative path and its basename.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Name is the ignore file looked up at the project root.
const Name = ".preflightignore"

// Matcher holds parsed ignore patterns. The zero value matches nothing.
type Matcher struct {
	dirs  []string
	globs []string
}

// Load parses the ignore file at path. A missing file yields an empty
// matcher and a nil error; ignoring nothing is not a failure.
func Load(path string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, "/") {
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
			continue
		}
		m.globs = append(m.globs, line)
	}
	return m, sc.Err()
}

// Match reports whether the relative path is excluded.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, d := range m.dirs {
		for _, seg := range strings.Split(rel, "/") {
			if seg == d {
				return true
			}
		}
	}
	base := filepath.Base(rel)
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}
