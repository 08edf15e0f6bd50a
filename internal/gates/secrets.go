package gates

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/varalys/preflight/internal/enumerate"
	"github.com/varalys/preflight/internal/types"
)

// secretExts is the source-like text/config surface the secret gate scans.
var secretExts = []string{
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".json", ".yml", ".yaml", ".toml", ".ini", ".env", ".sh",
}

// signature is one high-confidence credential shape. Order matters: the
// first signature to match a file decides that file's report entry.
type signature struct {
	id string
	re *regexp.Regexp
}

var signatures = []signature{
	{"aws-access-key", regexp.MustCompile(`\b(?:A3T[A-Z0-9]|AKIA|ASIA|ABIA|ACCA)[A-Z0-9]{16}\b`)},
	{"github-token", regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`)},
	{"stripe-live-key", regexp.MustCompile(`\bsk_live_[A-Za-z0-9]{24,}\b`)},
	{"slack-token", regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9][A-Za-z0-9-]{10,}\b`)},
	{"google-api-key", regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{35}\b`)},
	{"private-key-block", regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`)},
	{"bearer-token", regexp.MustCompile(`(?i)\bbearer\s+[a-z0-9._~+/-]{20,}=*`)},
}

// Secrets tests project files against the signature table. Lockfiles,
// env-sample files and test-designated paths are trusted not to ship and
// are excluded; the exclusion is part of the policy, not an optimization.
func Secrets(_ context.Context, ac *Context) types.Finding {
	files, err := ac.List(secretExts)
	if err != nil {
		return types.Finding{GateID: IDSecrets, Status: types.StatusWarn,
			Message: fmt.Sprintf("could not enumerate files: %v", err)}
	}

	matched := 0
	firstPath, firstSig := "", ""
	for _, rel := range files {
		if excludedFromSecretScan(rel) {
			continue
		}
		data, err := ac.Read(rel)
		if err != nil || enumerate.LooksBinary(data) {
			continue
		}
		content := string(data)
		for _, sig := range signatures {
			if sig.re.MatchString(content) {
				matched++
				if firstPath == "" {
					firstPath, firstSig = rel, sig.id
				}
				break // first match per file short-circuits
			}
		}
	}

	if matched == 0 {
		return types.Finding{GateID: IDSecrets, Status: types.StatusPass,
			Message: "no credential patterns found"}
	}
	status := ac.SecretSeverity
	if status != types.StatusWarn {
		status = types.StatusFail
	}
	return types.Finding{GateID: IDSecrets, Status: status,
		Message:       fmt.Sprintf("%d file(s) contain likely credentials (first: %s, %s)", matched, firstPath, firstSig),
		Count:         matched,
		AffectedFiles: matched}
}

var lockfileNames = []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb"}

func excludedFromSecretScan(rel string) bool {
	base := strings.ToLower(filepath.Base(rel))
	for _, lf := range lockfileNames {
		if base == lf {
			return true
		}
	}
	if base == "npm-shrinkwrap.json" {
		return true
	}
	if strings.HasSuffix(base, ".example") || strings.HasSuffix(base, ".sample") ||
		strings.Contains(base, ".env.example") || strings.Contains(base, ".env.sample") {
		return true
	}
	return isTestDesignated(rel)
}
