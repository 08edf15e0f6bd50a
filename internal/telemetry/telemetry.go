// Package telemetry posts audit outcomes to a collection endpoint. It is a
// best-effort side channel: failures surface as a stderr warning at most and
// never alter the audit result or exit code.
package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/varalys/preflight/internal/gitmeta"
	"github.com/varalys/preflight/internal/types"
)

const schemaVersion = "1"

// DefaultTimeout bounds how long a notification may delay process exit.
const DefaultTimeout = 3 * time.Second

// Envelope is the wire shape posted after an audit.
type Envelope struct {
	Tool       string        `json:"tool"`
	Version    string        `json:"version"`
	Schema     string        `json:"schema_version"`
	Repo       string        `json:"repo,omitempty"`
	Commit     string        `json:"commit,omitempty"`
	Branch     string        `json:"branch,omitempty"`
	Summary    types.Summary `json:"summary"`
	Success    bool          `json:"success"`
	DurationMS int64         `json:"duration_ms"`
}

// NewEnvelope builds the envelope for a finished audit, attaching
// best-effort git metadata for the audited root.
func NewEnvelope(r types.Report, duration time.Duration) Envelope {
	repo, commit, branch := gitmeta.Describe(r.Metadata.Root)
	return Envelope{
		Tool:       r.Metadata.Tool,
		Version:    r.Metadata.Version,
		Schema:     schemaVersion,
		Repo:       repo,
		Commit:     commit,
		Branch:     branch,
		Summary:    r.Summary,
		Success:    r.Success,
		DurationMS: duration.Milliseconds(),
	}
}

// Send posts the envelope synchronously with a bounded client timeout.
func Send(url, token string, env Envelope, timeout time.Duration) error {
	body, _ := json.Marshal(env)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry status %d", resp.StatusCode)
	}
	return nil
}

// Notify sends asynchronously and returns once the send finishes or the
// timeout elapses, whichever comes first. The error, if any, is handed to
// onErr (nil disables error reporting entirely).
func Notify(url, token string, env Envelope, timeout time.Duration, onErr func(error)) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	done := make(chan error, 1)
	go func() {
		done <- Send(url, token, env, timeout)
	}()
	select {
	case err := <-done:
		if err != nil && onErr != nil {
			onErr(err)
		}
	case <-time.After(timeout):
		// abandoned: the goroutine's client timeout reaps it shortly after
	}
}
