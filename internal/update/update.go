// Package update checks GitHub releases for a newer preflight build. The
// result is cached for a day so CI runs do not hammer the API.
package update

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	semver "github.com/blang/semver/v4"
)

const (
	repoLatestURL = "https://api.github.com/repos/varalys/preflight/releases/latest"
	cacheFileName = "update.json"
	checkInterval = 24 * time.Hour
)

type cache struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
}

func configDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "preflight")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "preflight")
}

func loadCache() (cache, error) {
	var c cache
	dir := configDir()
	if dir == "" {
		return c, errors.New("no config dir")
	}
	b, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if err != nil {
		return c, err
	}
	_ = json.Unmarshal(b, &c)
	return c, nil
}

func saveCache(c cache) {
	dir := configDir()
	if dir == "" {
		return
	}
	_ = os.MkdirAll(dir, 0755)
	b, _ := json.MarshalIndent(c, "", "  ")
	_ = os.WriteFile(filepath.Join(dir, cacheFileName), b, 0644)
}

func latestVersionOnline() (string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	req, _ := http.NewRequest(http.MethodGet, repoLatestURL, nil)
	req.Header.Set("User-Agent", "preflight-updater")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var obj struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", err
	}
	v := obj.TagName
	if v == "" {
		v = obj.Name
	}
	return strings.TrimPrefix(v, "v"), nil
}

// Check returns the latest released version and whether it is newer than
// current. Unless force is set, a cached answer younger than a day is used.
func Check(current string, force bool) (string, bool, error) {
	if os.Getenv("CI") != "" && !force {
		return "", false, nil
	}
	latest := ""
	if !force {
		if c, err := loadCache(); err == nil && time.Since(c.LastChecked) < checkInterval {
			latest = c.Latest
		}
	}
	if latest == "" {
		v, err := latestVersionOnline()
		if err != nil {
			return "", false, err
		}
		latest = v
		saveCache(cache{LastChecked: time.Now(), Latest: latest})
	}
	return latest, IsNewer(current, latest), nil
}

// IsNewer reports whether latest is a strictly newer semantic version than
// current. Unparseable versions are never "newer"; a broken tag must not
// nag users every run.
func IsNewer(current, latest string) bool {
	cur, err := semver.ParseTolerant(current)
	if err != nil {
		return false
	}
	lat, err := semver.ParseTolerant(latest)
	if err != nil {
		return false
	}
	return lat.GT(cur)
}
