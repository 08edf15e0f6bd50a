package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/varalys/preflight/internal/types"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// PrintOptions controls the human rendering.
type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
}

// Print writes the line-per-gate human rendering of a Report.
func Print(w io.Writer, r types.Report, opts PrintOptions) {
	fmt.Fprintf(w, "preflight audit: %s\n\n", r.Metadata.Root)

	maxID := 0
	for _, f := range r.Findings {
		if len(f.GateID) > maxID {
			maxID = len(f.GateID)
		}
	}
	for _, f := range r.Findings {
		fmt.Fprintf(w, "  %s  %-*s  %s\n", statusLabel(f.Status, opts.NoColor), maxID, f.GateID, f.Message)
	}

	fmt.Fprintf(w, "\n%d checks: %d passed, %d failed, %d warnings\n",
		r.Summary.Total, r.Summary.Passed, r.Summary.Failed, r.Summary.Warned)
	if opts.Duration > 0 && !opts.NoColor {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("completed in %.2fs", opts.Duration.Seconds())))
	} else if opts.Duration > 0 {
		fmt.Fprintf(w, "completed in %.2fs\n", opts.Duration.Seconds())
	}

	if r.Success {
		fmt.Fprintf(w, "deploy gate: %s\n", statusWord("OK", passStyle, opts.NoColor))
	} else {
		fmt.Fprintf(w, "deploy gate: %s\n", statusWord("BLOCKED", failStyle, opts.NoColor))
	}
}

func statusLabel(s types.Status, noColor bool) string {
	// fixed 4-wide label keeps the columns aligned
	label := fmt.Sprintf("%-4s", string(s))
	if noColor {
		return label
	}
	switch s {
	case types.StatusPass:
		return passStyle.Render(label)
	case types.StatusFail:
		return failStyle.Render(label)
	default:
		return warnStyle.Render(label)
	}
}

func statusWord(word string, style lipgloss.Style, noColor bool) string {
	if noColor {
		return word
	}
	return style.Render(word)
}
