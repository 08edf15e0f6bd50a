package tsparse

import (
	"context"
	"errors"
	"testing"
)

func count(t *testing.T, path, src string) int {
	t.Helper()
	n, err := CountEscapeMarkers(context.Background(), path, []byte(src))
	if err != nil {
		t.Fatalf("CountEscapeMarkers(%q): %v", path, err)
	}
	return n
}

func TestCount_SimpleAnnotation(t *testing.T) {
	if got := count(t, "a.ts", "const x: any = 1;\n"); got != 1 {
		t.Fatalf("simple annotation: got %d, want 1", got)
	}
}

func TestCount_UnionPosition(t *testing.T) {
	// Union positions are the case a naive regex cannot attribute.
	if got := count(t, "a.ts", "type T = string | any;\n"); got != 1 {
		t.Fatalf("union position: got %d, want 1", got)
	}
}

func TestCount_ReturnTypeAndMapped(t *testing.T) {
	src := `
function f(): any { return null; }
type M = { [k: string]: any };
`
	if got := count(t, "a.ts", src); got != 2 {
		t.Fatalf("return+mapped: got %d, want 2", got)
	}
}

func TestCount_ZeroOccurrences(t *testing.T) {
	src := "const x: number = 1;\ntype T = string | undefined;\n"
	if got := count(t, "a.ts", src); got != 0 {
		t.Fatalf("clean file: got %d, want 0", got)
	}
}

func TestCount_IdentifierNamedAnyNotCounted(t *testing.T) {
	src := "const any = 1;\nconsole.info(any);\n"
	if got := count(t, "a.ts", src); got != 0 {
		t.Fatalf("identifier named any miscounted: got %d", got)
	}
}

func TestCount_StringAndCommentNotCounted(t *testing.T) {
	src := "// x: any in a comment\nconst s = \"x: any\";\n"
	if got := count(t, "a.ts", src); got != 0 {
		t.Fatalf("comment/string content miscounted: got %d", got)
	}
}

func TestCount_TSXDialect(t *testing.T) {
	src := `
export function Widget(props: any) {
  return <div title="x">{props.label}</div>;
}
`
	if got := count(t, "widget.tsx", src); got != 1 {
		t.Fatalf("tsx: got %d, want 1", got)
	}
}

func TestCount_MalformedReportsParseError(t *testing.T) {
	_, err := CountEscapeMarkers(context.Background(), "bad.ts", []byte("const = = {{{"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
