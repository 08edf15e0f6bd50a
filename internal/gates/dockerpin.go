package gates

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/varalys/preflight/internal/types"
)

const dockerfileName = "Dockerfile"

// floatingTags point at mutable content: an image pulled by one of these
// today is not the image pulled tomorrow.
var floatingTags = map[string]bool{
	"latest":   true,
	"stable":   true,
	"lts":      true,
	"edge":     true,
	"rolling":  true,
	"mainline": true,
	"current":  true,
}

// ContainerPinning inspects the root Dockerfile's FROM declarations. A base
// reference is weak when it carries no tag, an explicit "latest", or a known
// floating alias; a digest-pinned reference is strong regardless of tag.
func ContainerPinning(_ context.Context, ac *Context) types.Finding {
	data, err := ac.Read(dockerfileName)
	if err != nil {
		return types.Finding{GateID: IDDockerPin, Status: types.StatusWarn,
			Message: "no Dockerfile at project root; base image check skipped"}
	}

	weak := weakBaseImages(string(data), ac.FloatingTags)
	if len(weak) > 0 {
		return types.Finding{GateID: IDDockerPin, Status: types.StatusFail,
			Message: fmt.Sprintf("%d unpinned base image(s): %s", len(weak), strings.Join(weak, ", ")),
			Count:   len(weak)}
	}
	return types.Finding{GateID: IDDockerPin, Status: types.StatusPass,
		Message: "all base images pinned"}
}

// weakBaseImages returns the weak references among the Dockerfile's FROM
// lines, formatted as "ref (reason)". Build-stage aliases and scratch are
// exempt: neither names a registry image.
func weakBaseImages(dockerfile string, extraFloating []string) []string {
	extra := map[string]bool{}
	for _, t := range extraFloating {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			extra[t] = true
		}
	}

	stages := map[string]bool{}
	var weak []string
	sc := bufio.NewScanner(strings.NewReader(dockerfile))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.EqualFold(fields[0], "FROM") {
			continue
		}

		ref := ""
		for _, f := range fields[1:] {
			if strings.HasPrefix(f, "--") {
				continue // e.g. --platform=linux/amd64
			}
			ref = f
			break
		}
		if ref == "" {
			continue
		}
		// record the stage alias so later FROM <alias> lines are skipped
		for i := 1; i < len(fields)-1; i++ {
			if strings.EqualFold(fields[i], "AS") {
				stages[strings.ToLower(fields[i+1])] = true
			}
		}
		lowRef := strings.ToLower(ref)
		if lowRef == "scratch" || stages[lowRef] {
			continue
		}

		if reason, isWeak := classifyRef(ref, extra); isWeak {
			weak = append(weak, fmt.Sprintf("%s (%s)", ref, reason))
		}
	}
	return weak
}

func classifyRef(ref string, extraFloating map[string]bool) (string, bool) {
	if strings.Contains(ref, "@") {
		if _, err := name.NewDigest(ref); err == nil {
			return "", false // content-addressed, immutable
		}
		return "malformed digest reference", true
	}
	if _, err := name.ParseReference(ref); err != nil {
		return "unparseable reference", true
	}
	// name.ParseReference defaults a missing tag to "latest"; the explicit
	// tag presence is decided from the reference text itself.
	tag := ""
	if i := strings.LastIndex(ref, ":"); i > strings.LastIndex(ref, "/") {
		tag = ref[i+1:]
	}
	switch {
	case tag == "":
		return "no tag", true
	case floatingTags[strings.ToLower(tag)] || extraFloating[strings.ToLower(tag)]:
		return "floating tag " + tag, true
	default:
		return "", false
	}
}
