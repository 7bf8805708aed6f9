package intent

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies one supported action.
type Kind string

// The fixed set of actions the agent can perform.
const (
	KindSummarizeEmails   Kind = "summarize_emails"
	KindSendEmail         Kind = "send_email"
	KindGetEmail          Kind = "get_email"
	KindListUnread        Kind = "list_unread"
	KindCreateEvent       Kind = "create_event"
	KindListEvents        Kind = "list_events"
	KindCheckAvailability Kind = "check_availability"
)

// Kinds lists every supported action kind.
var Kinds = []Kind{
	KindSummarizeEmails,
	KindSendEmail,
	KindGetEmail,
	KindListUnread,
	KindCreateEvent,
	KindListEvents,
	KindCheckAvailability,
}

// Action is the closed set of commands the agent can dispatch. Each
// variant carries only its own parameters. Validate is called before any
// external API call; a failing action never reaches a collaborator.
type Action interface {
	Kind() Kind
	// Mutating reports whether dispatching this action changes external
	// state and therefore requires confirmation.
	Mutating() bool
	Validate() error

	// sealed prevents implementations outside this package.
	sealed()
}

// SummarizeEmails fetches recent unread emails and produces a model
// summary of them.
type SummarizeEmails struct {
	Count int
}

func (SummarizeEmails) Kind() Kind     { return KindSummarizeEmails }
func (SummarizeEmails) Mutating() bool { return false }
func (SummarizeEmails) sealed()        {}

func (a SummarizeEmails) Validate() error {
	if a.Count <= 0 {
		return &ValidationError{Field: "count", Reason: "must be positive"}
	}
	return nil
}

// SendEmail sends a new email.
type SendEmail struct {
	To      string
	Subject string
	Body    string
}

func (SendEmail) Kind() Kind     { return KindSendEmail }
func (SendEmail) Mutating() bool { return true }
func (SendEmail) sealed()        {}

func (a SendEmail) Validate() error {
	if a.To == "" {
		return &ValidationError{Field: "to", Reason: "recipient is required"}
	}
	if !strings.Contains(a.To, "@") {
		return &ValidationError{Field: "to", Reason: fmt.Sprintf("%q is not an email address", a.To)}
	}
	if a.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "subject is required"}
	}
	if a.Body == "" {
		return &ValidationError{Field: "body", Reason: "body is required"}
	}
	return nil
}

// GetEmail fetches a single email by its Gmail message ID.
type GetEmail struct {
	ID string
}

func (GetEmail) Kind() Kind     { return KindGetEmail }
func (GetEmail) Mutating() bool { return false }
func (GetEmail) sealed()        {}

func (a GetEmail) Validate() error {
	if a.ID == "" {
		return &ValidationError{Field: "email_id", Reason: "email id is required"}
	}
	return nil
}

// ListUnread lists recent unread emails without summarizing them.
type ListUnread struct {
	Count int
}

func (ListUnread) Kind() Kind     { return KindListUnread }
func (ListUnread) Mutating() bool { return false }
func (ListUnread) sealed()        {}

func (a ListUnread) Validate() error {
	if a.Count <= 0 {
		return &ValidationError{Field: "count", Reason: "must be positive"}
	}
	return nil
}

// CreateEvent creates a calendar event.
type CreateEvent struct {
	Title       string
	Start       time.Time
	End         time.Time
	Attendees   []string
	Location    string
	Description string
}

func (CreateEvent) Kind() Kind     { return KindCreateEvent }
func (CreateEvent) Mutating() bool { return true }
func (CreateEvent) sealed()        {}

func (a CreateEvent) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Reason: "event title is required"}
	}
	if a.Start.IsZero() {
		return &ValidationError{Field: "start", Reason: "start time is required"}
	}
	if !a.End.After(a.Start) {
		return &ValidationError{Field: "end", Reason: "end must be after start"}
	}
	for _, att := range a.Attendees {
		if !strings.Contains(att, "@") {
			return &ValidationError{Field: "attendees", Reason: fmt.Sprintf("%q is not an email address", att)}
		}
	}
	return nil
}

// ListEvents lists calendar events within a time range.
type ListEvents struct {
	From  time.Time
	To    time.Time
	Count int
}

func (ListEvents) Kind() Kind     { return KindListEvents }
func (ListEvents) Mutating() bool { return false }
func (ListEvents) sealed()        {}

func (a ListEvents) Validate() error {
	if a.From.IsZero() || a.To.IsZero() {
		return &ValidationError{Field: "range", Reason: "time range is required"}
	}
	if !a.To.After(a.From) {
		return &ValidationError{Field: "range", Reason: "end of range must be after start"}
	}
	if a.Count <= 0 {
		return &ValidationError{Field: "count", Reason: "must be positive"}
	}
	return nil
}

// CheckAvailability finds free slots of a given duration within a range.
type CheckAvailability struct {
	From     time.Time
	To       time.Time
	Duration time.Duration
}

func (CheckAvailability) Kind() Kind     { return KindCheckAvailability }
func (CheckAvailability) Mutating() bool { return false }
func (CheckAvailability) sealed()        {}

func (a CheckAvailability) Validate() error {
	if a.From.IsZero() || a.To.IsZero() {
		return &ValidationError{Field: "range", Reason: "time range is required"}
	}
	if !a.To.After(a.From) {
		return &ValidationError{Field: "range", Reason: "end of range must be after start"}
	}
	if a.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	return nil
}
