package update

import (
	"testing"
	"time"
)

func TestIsNewer(t *testing.T) {
	cases := []struct {
		current, latest string
		want            bool
	}{
		{"0.1.0", "0.2.0", true},
		{"1.2.3", "1.2.3", false},
		{"2.0.0", "1.9.9", false},
		{"v0.1.0", "v0.1.1", true}, // tolerant of v prefixes
		{"garbage", "1.0.0", false},
		{"1.0.0", "garbage", false},
	}
	for _, c := range cases {
		if got := IsNewer(c.current, c.latest); got != c.want {
			t.Fatalf("IsNewer(%q, %q)=%v want %v", c.current, c.latest, got, c.want)
		}
	}
}

func TestCheck_UsesCache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CI", "")
	saveCache(cache{LastChecked: time.Now(), Latest: "9.9.9"})

	latest, newer, err := Check("0.1.0", false)
	if err != nil {
		t.Fatalf("Check with warm cache: %v", err)
	}
	if latest != "9.9.9" || !newer {
		t.Fatalf("cache not used: latest=%q newer=%v", latest, newer)
	}
}
