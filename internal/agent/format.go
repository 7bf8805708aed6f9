package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/gmail"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/intent"
)

// FailurePrefix is prepended to every failed result so failures are
// recognizable regardless of the underlying message.
const FailurePrefix = "Action failed: "

// CancelledMessage is reported when the user rejects a confirmation.
const CancelledMessage = "Cancelled. No changes were made."

// Format renders a dispatch result as display text. It is pure: the same
// result always renders the same text, and failures are never dropped.
func Format(res Result) string {
	if res.Err != nil {
		if errors.Is(res.Err, ErrCancelled) {
			return CancelledMessage
		}
		return FailurePrefix + res.Err.Error()
	}

	switch res.Kind {
	case intent.KindSummarizeEmails:
		return formatSummary(res)
	case intent.KindListUnread:
		return formatEmailList(res)
	case intent.KindGetEmail:
		return formatEmail(res)
	case intent.KindSendEmail:
		return fmt.Sprintf("## Email Sent\n\nMessage ID: %s", res.MessageID)
	case intent.KindCreateEvent:
		return formatCreatedEvent(res)
	case intent.KindListEvents:
		return formatEventList(res)
	case intent.KindCheckAvailability:
		return formatSlots(res)
	default:
		return fmt.Sprintf("Done (%s).", res.Kind)
	}
}

func formatSummary(res Result) string {
	var b strings.Builder
	b.WriteString("## Email Summary\n\n")
	fmt.Fprintf(&b, "Total: %d, unread: %d\n\n", len(res.Emails), res.UnreadCount)
	b.WriteString(res.Summary)
	if len(res.Emails) > 0 {
		b.WriteString("\n\n### Recent Emails\n")
		writeEmailLines(&b, res.Emails)
	}
	return b.String()
}

func formatEmailList(res Result) string {
	if len(res.Emails) == 0 {
		return "## Unread Emails\n\nNo unread emails found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## Unread Emails (%d)\n", len(res.Emails))
	writeEmailLines(&b, res.Emails)
	return b.String()
}

func writeEmailLines(b *strings.Builder, emails []gmail.EmailSummary) {
	for _, e := range emails {
		fmt.Fprintf(b, "\n- %s\n  From: %s\n  Date: %s", e.Subject, e.From, e.Date.Format("2006-01-02 15:04"))
	}
}

func formatEmail(res Result) string {
	e := res.Email
	var b strings.Builder
	b.WriteString("## Email Details\n\n")
	fmt.Fprintf(&b, "- Subject: %s\n", e.Subject)
	fmt.Fprintf(&b, "- From: %s\n", e.From)
	fmt.Fprintf(&b, "- To: %s\n", e.To)
	fmt.Fprintf(&b, "- Date: %s\n", e.Date.Format("2006-01-02 15:04"))
	status := "Read"
	if e.Unread {
		status = "Unread"
	}
	fmt.Fprintf(&b, "- Status: %s\n", status)
	fmt.Fprintf(&b, "\n%s", e.Body)
	return b.String()
}

func formatCreatedEvent(res Result) string {
	e := res.Event
	var b strings.Builder
	b.WriteString("## Event Created\n\n")
	fmt.Fprintf(&b, "- Title: %s\n", e.Summary)
	fmt.Fprintf(&b, "- Start: %s\n", formatTime(e.Start))
	fmt.Fprintf(&b, "- End: %s\n", formatTime(e.End))
	if e.Location != "" {
		fmt.Fprintf(&b, "- Location: %s\n", e.Location)
	}
	if len(e.Attendees) > 0 {
		fmt.Fprintf(&b, "- Attendees: %s\n", strings.Join(e.Attendees, ", "))
	}
	fmt.Fprintf(&b, "- Event ID: %s", e.ID)
	return b.String()
}

func formatEventList(res Result) string {
	from, to := res.SlotRange[0], res.SlotRange[1]
	if len(res.Events) == 0 {
		return fmt.Sprintf("## Calendar Events\n\nNo events found between %s and %s.",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Calendar Events (%s to %s)\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	for _, e := range res.Events {
		fmt.Fprintf(&b, "\n- %s\n  %s - %s", e.Summary, formatTime(e.Start), formatTime(e.End))
		if e.Location != "" {
			fmt.Fprintf(&b, "\n  Location: %s", e.Location)
		}
		if len(e.Attendees) > 0 {
			fmt.Fprintf(&b, "\n  Attendees: %s", strings.Join(e.Attendees, ", "))
		}
	}
	return b.String()
}

func formatSlots(res Result) string {
	from, to := res.SlotRange[0], res.SlotRange[1]
	if len(res.Slots) == 0 {
		return fmt.Sprintf("## Availability\n\nNo free slots between %s and %s.",
			from.Format("2006-01-02 15:04"), to.Format("2006-01-02 15:04"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Availability\n\nFound %d free slot(s):\n", len(res.Slots))
	for _, s := range res.Slots {
		fmt.Fprintf(&b, "\n- %s - %s (%s)", formatTime(s.Start), formatTime(s.End), s.Duration)
	}
	return b.String()
}
