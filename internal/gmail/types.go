package gmail

import "time"

// EmailSummary represents a simplified Gmail message for display.
type EmailSummary struct {
	ID      string
	Subject string
	From    string
	To      string
	Snippet string
	Body    string
	Date    time.Time
	Unread  bool
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool
}
