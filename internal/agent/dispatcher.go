package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/calendar"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/gmail"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/instrumentation"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/intent"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/llm"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/logging"
)

// maxSummaryBodyRunes caps how much of each email body is fed to the
// model when summarizing, to stay within context limits.
const maxSummaryBodyRunes = 1000

// Dispatcher executes validated actions against the Gmail and Calendar
// collaborators. Exactly one external API call is made per action; the
// summarize action additionally makes one model call for the summary
// text. Errors never escape as panics; every failure is converted into a
// failed Result.
type Dispatcher struct {
	gmail     GmailService
	calendar  CalendarService
	completer intent.Completer
	metrics   *instrumentation.Metrics
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(gmailSvc GmailService, calendarSvc CalendarService, completer intent.Completer, metrics *instrumentation.Metrics, logger *slog.Logger) *Dispatcher {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		gmail:     gmailSvc,
		calendar:  calendarSvc,
		completer: completer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Dispatch validates the action and invokes the matching collaborator.
// Mutating actions must have passed the confirmation gate before they
// reach this point; the session loop enforces that ordering.
func (d *Dispatcher) Dispatch(ctx context.Context, action intent.Action) Result {
	if err := action.Validate(); err != nil {
		return failure(action.Kind(), err)
	}

	logger := logging.WithOperation(d.logger, "dispatch").With(logging.Action(string(action.Kind())))

	var result Result
	switch a := action.(type) {
	case intent.SummarizeEmails:
		result = d.summarizeEmails(ctx, a)
	case intent.ListUnread:
		result = d.listUnread(ctx, a)
	case intent.GetEmail:
		result = d.getEmail(ctx, a)
	case intent.SendEmail:
		result = d.sendEmail(ctx, a)
	case intent.CreateEvent:
		result = d.createEvent(ctx, a)
	case intent.ListEvents:
		result = d.listEvents(ctx, a)
	case intent.CheckAvailability:
		result = d.checkAvailability(ctx, a)
	default:
		result = failure(action.Kind(), fmt.Errorf("unsupported action %q", action.Kind()))
	}

	status := logging.StatusSuccess
	if result.Err != nil {
		status = logging.StatusError
	}
	d.metrics.RecordDispatch(ctx, string(action.Kind()), status)
	logger.Info("action dispatched", logging.Status(status), logging.Err(result.Err))

	return result
}

func (d *Dispatcher) listUnread(ctx context.Context, a intent.ListUnread) Result {
	emails, err := d.gmail.ListUnread(ctx, int64(a.Count))
	if err != nil {
		d.metrics.RecordAPIError(ctx, "gmail")
		return failure(a.Kind(), apiError("gmail", "list unread", err))
	}
	return Result{Kind: a.Kind(), Emails: emails, UnreadCount: countUnread(emails)}
}

func (d *Dispatcher) getEmail(ctx context.Context, a intent.GetEmail) Result {
	email, err := d.gmail.GetMessage(ctx, a.ID)
	if err != nil {
		d.metrics.RecordAPIError(ctx, "gmail")
		return failure(a.Kind(), apiError("gmail", "get message", err))
	}
	return Result{Kind: a.Kind(), Email: email}
}

func (d *Dispatcher) sendEmail(ctx context.Context, a intent.SendEmail) Result {
	id, err := d.gmail.SendEmail(ctx, &gmail.EmailMessage{
		To:      []string{a.To},
		Subject: a.Subject,
		Body:    a.Body,
	})
	if err != nil {
		d.metrics.RecordAPIError(ctx, "gmail")
		return failure(a.Kind(), apiError("gmail", "send", err))
	}
	d.logger.Info("email sent", logging.UserHash(a.To))
	return Result{Kind: a.Kind(), MessageID: id}
}

func (d *Dispatcher) createEvent(ctx context.Context, a intent.CreateEvent) Result {
	event, err := d.calendar.CreateEvent(ctx, calendar.EventInput{
		Summary:     a.Title,
		Description: a.Description,
		Location:    a.Location,
		Start:       a.Start,
		End:         a.End,
		Attendees:   a.Attendees,
	})
	if err != nil {
		d.metrics.RecordAPIError(ctx, "calendar")
		return failure(a.Kind(), apiError("calendar", "create event", err))
	}
	return Result{Kind: a.Kind(), Event: event}
}

func (d *Dispatcher) listEvents(ctx context.Context, a intent.ListEvents) Result {
	events, err := d.calendar.ListEvents(ctx, a.From, a.To, int64(a.Count))
	if err != nil {
		d.metrics.RecordAPIError(ctx, "calendar")
		return failure(a.Kind(), apiError("calendar", "list events", err))
	}
	return Result{Kind: a.Kind(), Events: events, SlotRange: [2]time.Time{a.From, a.To}}
}

func (d *Dispatcher) checkAvailability(ctx context.Context, a intent.CheckAvailability) Result {
	slots, err := d.calendar.FindAvailableSlots(ctx, a.From, a.To, a.Duration)
	if err != nil {
		d.metrics.RecordAPIError(ctx, "calendar")
		return failure(a.Kind(), apiError("calendar", "free/busy", err))
	}
	return Result{Kind: a.Kind(), Slots: slots, SlotRange: [2]time.Time{a.From, a.To}}
}

// summarizeEmails fetches unread emails and asks the model for a concise
// summary of their contents.
func (d *Dispatcher) summarizeEmails(ctx context.Context, a intent.SummarizeEmails) Result {
	emails, err := d.gmail.ListUnread(ctx, int64(a.Count))
	if err != nil {
		d.metrics.RecordAPIError(ctx, "gmail")
		return failure(a.Kind(), apiError("gmail", "list unread", err))
	}
	if len(emails) == 0 {
		return Result{Kind: a.Kind(), Emails: nil, Summary: "No unread emails found."}
	}

	summary, err := d.completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: summaryPrompt(emails)},
	})
	if err != nil {
		return failure(a.Kind(), fmt.Errorf("failed to summarize emails: %w", err))
	}

	return Result{
		Kind:        a.Kind(),
		Emails:      emails,
		Summary:     strings.TrimSpace(summary),
		UnreadCount: countUnread(emails),
	}
}

func summaryPrompt(emails []gmail.EmailSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Provide a concise summary (less than 500 words) of these %d emails. Focus on the key points and most important information.\n", len(emails))
	for _, e := range emails {
		fmt.Fprintf(&b, "\nSubject: %s\nFrom: %s\nContent: %s\n", e.Subject, e.From, truncateRunes(e.Body, maxSummaryBodyRunes))
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func countUnread(emails []gmail.EmailSummary) int {
	n := 0
	for _, e := range emails {
		if e.Unread {
			n++
		}
	}
	return n
}
