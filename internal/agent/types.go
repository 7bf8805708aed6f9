package agent

import (
	"context"
	"time"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/calendar"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/gmail"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/intent"
)

// GmailService is the slice of the Gmail client the dispatcher uses.
type GmailService interface {
	ListUnread(ctx context.Context, max int64) ([]gmail.EmailSummary, error)
	GetMessage(ctx context.Context, id string) (*gmail.EmailSummary, error)
	SendEmail(ctx context.Context, msg *gmail.EmailMessage) (string, error)
}

// CalendarService is the slice of the Calendar client the dispatcher uses.
type CalendarService interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, max int64) ([]calendar.EventSummary, error)
	CreateEvent(ctx context.Context, input calendar.EventInput) (*calendar.EventSummary, error)
	FindAvailableSlots(ctx context.Context, timeMin, timeMax time.Time, duration time.Duration) ([]calendar.AvailableSlot, error)
}

// Result is the outcome of dispatching one action. Exactly one payload
// field is set on success, matching the action kind; Err is set on
// failure. Results are transient and consumed immediately by the
// formatter.
type Result struct {
	Kind intent.Kind
	Err  error

	// Payloads by action kind.
	Emails      []gmail.EmailSummary
	Email       *gmail.EmailSummary
	MessageID   string
	Summary     string
	UnreadCount int
	Events      []calendar.EventSummary
	Event       *calendar.EventSummary
	Slots       []calendar.AvailableSlot
	SlotRange   [2]time.Time
}

// failure builds a failed Result for an action kind.
func failure(kind intent.Kind, err error) Result {
	return Result{Kind: kind, Err: err}
}
