package gates

import (
	"context"
	"strings"
	"testing"

	"github.com/varalys/preflight/internal/types"
)

func pinFinding(t *testing.T, dockerfile string) types.Finding {
	t.Helper()
	ac := fakeContext(map[string]string{dockerfileName: dockerfile})
	return ContainerPinning(context.Background(), ac)
}

func TestContainerPinning_NoTagFails(t *testing.T) {
	f := pinFinding(t, "FROM node\n")
	if f.Status != types.StatusFail || !strings.Contains(f.Message, "no tag") {
		t.Fatalf("untagged ref: %#v", f)
	}
}

func TestContainerPinning_LatestFails(t *testing.T) {
	f := pinFinding(t, "FROM node:latest\n")
	if f.Status != types.StatusFail {
		t.Fatalf("latest tag: %#v", f)
	}
}

func TestContainerPinning_FloatingAliasFails(t *testing.T) {
	for _, tag := range []string{"stable", "lts", "edge"} {
		f := pinFinding(t, "FROM nginx:"+tag+"\n")
		if f.Status != types.StatusFail {
			t.Fatalf("floating tag %s: %#v", tag, f)
		}
	}
}

func TestContainerPinning_VersionTagPasses(t *testing.T) {
	f := pinFinding(t, "FROM node:20.11.1-alpine\n")
	if f.Status != types.StatusPass {
		t.Fatalf("version tag: %#v", f)
	}
}

func TestContainerPinning_DigestAlwaysStrong(t *testing.T) {
	digest := "sha256:" + strings.Repeat("ab", 32)
	f := pinFinding(t, "FROM node@"+digest+"\nFROM node:latest@"+digest+"\n")
	if f.Status != types.StatusPass {
		t.Fatalf("digest-pinned refs: %#v", f)
	}
}

func TestContainerPinning_MultiStage(t *testing.T) {
	dockerfile := `
FROM node:20.11.1 AS builder
RUN npm ci
FROM builder AS test
FROM gcr.io/distroless/nodejs20-debian12:nonroot
`
	f := pinFinding(t, dockerfile)
	if f.Status != types.StatusPass {
		t.Fatalf("stage aliases must be exempt: %#v", f)
	}
}

func TestContainerPinning_ScratchExempt(t *testing.T) {
	f := pinFinding(t, "FROM scratch\n")
	if f.Status != types.StatusPass {
		t.Fatalf("scratch: %#v", f)
	}
}

func TestContainerPinning_PlatformFlagSkipped(t *testing.T) {
	f := pinFinding(t, "FROM --platform=linux/amd64 node:20.11.1\n")
	if f.Status != types.StatusPass {
		t.Fatalf("--platform flag: %#v", f)
	}
}

func TestContainerPinning_ExtraFloatingTags(t *testing.T) {
	ac := fakeContext(map[string]string{dockerfileName: "FROM node:nightly\n"})
	ac.FloatingTags = []string{"nightly"}
	f := ContainerPinning(context.Background(), ac)
	if f.Status != types.StatusFail {
		t.Fatalf("configured floating tag ignored: %#v", f)
	}
}

func TestContainerPinning_MissingManifestWarns(t *testing.T) {
	f := ContainerPinning(context.Background(), fakeContext(nil))
	if f.Status != types.StatusWarn {
		t.Fatalf("absent Dockerfile should WARN: %#v", f)
	}
}

func TestContainerPinning_CountsEveryWeakRef(t *testing.T) {
	f := pinFinding(t, "FROM node\nFROM redis:latest\nFROM postgres:16.2\n")
	if f.Status != types.StatusFail || f.Count != 2 {
		t.Fatalf("want 2 weak refs: %#v", f)
	}
}
