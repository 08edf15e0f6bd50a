package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatch(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, Name)
	content := "generated/\n*.snap\n# comment\n\nlegacy.config.js\n"
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"generated/api/client.ts":   true,
		"src/__snapshots__/ui.snap": true,
		"legacy.config.js":          true,
		"src/app.ts":                false,
	}
	for rel, want := range cases {
		if got := m.Match(rel); got != want {
			t.Fatalf("Match(%q)=%v want %v", rel, got, want)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), Name))
	if err != nil {
		t.Fatalf("missing ignore file should not error: %v", err)
	}
	if m.Match("src/app.ts") {
		t.Fatal("empty matcher matched something")
	}
}
