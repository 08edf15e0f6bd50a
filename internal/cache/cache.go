// Package cache persists per-file type-escape counts between runs so the
// syntax pass only re-parses files whose content changed.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
)

// Entry records one file's content hash and its escape-marker count at that
// hash.
type Entry struct {
	Hash  string `json:"hash"`
	Count int    `json:"count"`
}

// DB maps relative paths to cached entries.
type DB struct {
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing the cache under .git to avoid accidental commits.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "preflightcache.json")
	}
	return filepath.Join(root, ".preflightcache.json")
}

// Load reads the cache for root. Missing or corrupt caches come back empty.
func Load(root string) (DB, error) {
	var db DB
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

// Save writes the cache for root.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}

// Hash returns a short content hash suitable as a cache key.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
