// Package gitmeta extracts best-effort repository identity for report and
// telemetry envelopes. Everything here degrades to empty strings; nothing
// about the audit depends on the project being a git repository.
package gitmeta

import (
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Describe returns (repo, commit, branch) for the repository containing
// root, empty strings when unavailable.
func Describe(root string) (string, string, string) {
	r, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", ""
	}

	commit, branch := "", ""
	if head, err := r.Head(); err == nil {
		commit = head.Hash().String()
		if head.Name().IsBranch() {
			branch = head.Name().Short()
		}
	}

	repo := ""
	if rem, err := r.Remote("origin"); err == nil {
		if urls := rem.Config().URLs; len(urls) > 0 {
			repo = shortenRemote(urls[0])
		}
	}
	return repo, commit, branch
}

// shortenRemote reduces a remote URL to owner/name when possible.
func shortenRemote(u string) string {
	u = strings.TrimSuffix(u, ".git")
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
		if j := strings.Index(u, "/"); j >= 0 {
			u = u[j+1:]
		}
		return u
	}
	// scp-like syntax: git@host:owner/name
	if i := strings.LastIndex(u, ":"); i >= 0 {
		return u[i+1:]
	}
	return u
}
