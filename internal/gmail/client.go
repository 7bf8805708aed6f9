package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/google"
)

// Client wraps the Gmail Users service.
type Client struct {
	svc *gmail.UsersService
}

// NewClient creates a new Gmail client authenticated with the cached OAuth
// token for the given configuration.
func NewClient(ctx context.Context, conf *oauth2.Config) (*Client, error) {
	httpClient, err := google.GetHTTPClient(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail HTTP client: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{svc: svc.Users}, nil
}

// ListUnread returns up to max unread messages from the inbox, most recent
// first, with headers and bodies populated.
func (c *Client) ListUnread(ctx context.Context, max int64) ([]EmailSummary, error) {
	if max <= 0 {
		return nil, fmt.Errorf("max must be positive, got %d", max)
	}

	res, err := c.svc.Messages.List("me").
		Q("is:unread").
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list unread messages: %w", err)
	}

	var summaries []EmailSummary
	for _, m := range res.Messages {
		msg, err := c.svc.Messages.Get("me", m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get message %s: %w", m.Id, err)
		}
		summaries = append(summaries, toEmailSummary(msg))
	}

	return summaries, nil
}

// GetMessage retrieves a single message by ID with its full body.
func (c *Client) GetMessage(ctx context.Context, id string) (*EmailSummary, error) {
	if id == "" {
		return nil, fmt.Errorf("message id is required")
	}

	msg, err := c.svc.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}

	summary := toEmailSummary(msg)
	return &summary, nil
}

// SendEmail sends an email through the Gmail API and returns the sent
// message ID.
func (c *Client) SendEmail(ctx context.Context, msg *EmailMessage) (string, error) {
	raw, err := buildRawMessage(msg)
	if err != nil {
		return "", err
	}

	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// buildRawMessage validates msg and renders it as a base64url-encoded
// RFC 2822 message ready for the Gmail send API.
func buildRawMessage(msg *EmailMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if msg.Body == "" {
		return "", fmt.Errorf("body is required")
	}

	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(strings.Join(msg.To, ", "))
	b.WriteString("\r\n")

	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(msg.Cc, ", "))
		b.WriteString("\r\n")
	}
	if len(msg.Bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(strings.Join(msg.Bcc, ", "))
		b.WriteString("\r\n")
	}

	// Encode for non-ASCII characters like umlauts
	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")

	if msg.IsHTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

// encodeRFC2047 encodes a string for use in email headers according to
// RFC 2047. This is necessary for non-ASCII characters in subjects.
func encodeRFC2047(s string) string {
	needsEncoding := false
	for _, r := range s {
		if r > 127 {
			needsEncoding = true
			break
		}
	}
	if !needsEncoding {
		return s
	}

	// Use Go's mime package which implements RFC 2047 encoding
	return mime.BEncoding.Encode("UTF-8", s)
}

// toEmailSummary converts a Gmail API message into an EmailSummary.
func toEmailSummary(msg *gmail.Message) EmailSummary {
	summary := EmailSummary{
		ID:      msg.Id,
		Snippet: msg.Snippet,
		Unread:  hasLabel(msg, "UNREAD"),
	}

	if msg.Payload != nil {
		summary.Subject = HeaderValue(msg, "Subject")
		summary.From = HeaderValue(msg, "From")
		summary.To = HeaderValue(msg, "To")
		summary.Body = extractBody(msg.Payload)
	}

	// InternalDate is epoch milliseconds
	if msg.InternalDate > 0 {
		summary.Date = time.UnixMilli(msg.InternalDate)
	} else if d := HeaderValue(msg, "Date"); d != "" {
		if t, err := mail.ParseDate(d); err == nil {
			summary.Date = t
		}
	}

	return summary
}

// HeaderValue returns the value of the named header from a message payload,
// or an empty string if the header is absent.
func HeaderValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// extractBody walks a message part tree and returns the decoded text body.
// A text/plain part is preferred over text/html; nested multiparts are
// searched depth-first.
func extractBody(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}

	if len(part.Parts) == 0 {
		return decodeBody(part.Body)
	}

	var htmlBody string
	for _, p := range part.Parts {
		switch {
		case p.MimeType == "text/plain":
			if body := decodeBody(p.Body); body != "" {
				return body
			}
		case p.MimeType == "text/html":
			if htmlBody == "" {
				htmlBody = decodeBody(p.Body)
			}
		case strings.HasPrefix(p.MimeType, "multipart/"):
			if body := extractBody(p); body != "" {
				return body
			}
		}
	}

	return htmlBody
}

// decodeBody decodes the base64url-encoded body data of a message part.
func decodeBody(body *gmail.MessagePartBody) string {
	if body == nil || body.Data == "" {
		return ""
	}
	data, err := base64.URLEncoding.DecodeString(body.Data)
	if err != nil {
		// Some servers emit unpadded base64url
		data, err = base64.RawURLEncoding.DecodeString(body.Data)
		if err != nil {
			return ""
		}
	}
	return string(data)
}

func hasLabel(msg *gmail.Message, label string) bool {
	for _, l := range msg.LabelIds {
		if l == label {
			return true
		}
	}
	return false
}
