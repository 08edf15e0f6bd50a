package cache

import (
	"testing"
)

func TestLoadSave_RoundTrip(t *testing.T) {
	root := t.TempDir()
	db := DB{Entries: map[string]Entry{
		"src/a.ts": {Hash: Hash([]byte("const x: any = 1;")), Count: 1},
	}}
	if err := Save(root, db); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e, ok := got.Entries["src/a.ts"]
	if !ok || e.Count != 1 || e.Hash != db.Entries["src/a.ts"].Hash {
		t.Fatalf("round trip mismatch: %#v", got.Entries)
	}
}

func TestLoad_MissingIsEmpty(t *testing.T) {
	db, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing cache file")
	}
	if db.Entries == nil || len(db.Entries) != 0 {
		t.Fatalf("missing cache should be empty, got %#v", db.Entries)
	}
}

func TestHash(t *testing.T) {
	if Hash(nil) != "0000000000000000" {
		t.Fatal("empty input sentinel changed")
	}
	a, b := Hash([]byte("a")), Hash([]byte("b"))
	if a == b {
		t.Fatal("distinct inputs collided")
	}
	if len(a) != 16 {
		t.Fatalf("hash width: %d", len(a))
	}
	if Hash([]byte("a")) != a {
		t.Fatal("hash not stable")
	}
}
