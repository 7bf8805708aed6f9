package agent

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/intent"
)

// Gate is the confirmation checkpoint for mutating actions. It renders a
// deterministic preview of the action's effect and blocks until the user
// answers. Only an explicit affirmative approves; anything else rejects.
type Gate struct {
	in  *bufio.Reader
	out io.Writer
}

// NewGate creates a gate reading answers from in and writing previews to out.
func NewGate(in io.Reader, out io.Writer) *Gate {
	return &Gate{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm shows the preview for a mutating action and reads one line.
// It returns true only for an explicit "y" or "yes" (case-insensitive).
func (g *Gate) Confirm(action intent.Action) (bool, error) {
	fmt.Fprintln(g.out, Preview(action))
	fmt.Fprint(g.out, "Proceed? [y/N]: ")

	line, err := g.in.ReadString('\n')
	if err != nil && line == "" {
		// EOF with no answer is a rejection, not a failure.
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Preview renders the human-readable description of what a mutating
// action will do. The output is deterministic for a given action.
func Preview(action intent.Action) string {
	var b strings.Builder

	switch a := action.(type) {
	case intent.SendEmail:
		b.WriteString("About to send an email:\n")
		fmt.Fprintf(&b, "  To:      %s\n", a.To)
		fmt.Fprintf(&b, "  Subject: %s\n", a.Subject)
		fmt.Fprintf(&b, "  Body:    %s", previewBody(a.Body))

	case intent.CreateEvent:
		b.WriteString("About to create a calendar event:\n")
		fmt.Fprintf(&b, "  Title: %s\n", a.Title)
		fmt.Fprintf(&b, "  When:  %s - %s", formatTime(a.Start), formatTime(a.End))
		if len(a.Attendees) > 0 {
			fmt.Fprintf(&b, "\n  With:  %s", strings.Join(a.Attendees, ", "))
		}
		if a.Location != "" {
			fmt.Fprintf(&b, "\n  Where: %s", a.Location)
		}

	default:
		fmt.Fprintf(&b, "About to perform: %s", a.Kind())
	}

	return b.String()
}

// previewBody keeps long bodies from flooding the terminal.
func previewBody(body string) string {
	const max = 200
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "..."
}

func formatTime(t time.Time) string {
	return t.Format("Mon Jan 2 2006 15:04 MST")
}
