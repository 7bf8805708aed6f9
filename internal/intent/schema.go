package intent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Defaults applied when the model omits optional parameters.
const (
	defaultCount           = 5
	defaultDurationMinutes = 60
	defaultListRangeDays   = 7
)

// SystemPrompt renders the instruction the resolver sends with every
// request. The current date is embedded so the model can ground relative
// dates ("tomorrow", "next week") to absolute ones.
func SystemPrompt(now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a calendar and email assistant that maps natural language requests to exactly one action.
Current date: %s (%s)

Supported actions and their parameters:
- summarize_emails: count (optional, default %d)
- list_unread: count (optional, default %d)
- get_email: email_id (required)
- send_email: to (required, email address), subject (required), body (required)
- create_event: title (required), start (required, RFC 3339 date-time), end (optional), duration_minutes (optional, default %d), attendees (optional, email addresses), location (optional), description (optional)
- list_events: start (optional), end (optional), count (optional, default %d)
- check_availability: start (required), end (required), duration_minutes (optional, default %d)

Return ONLY a JSON object in this exact format, with no other text:
{"action": "<action name>", "parameters": {...}}

If the request matches no supported action, return:
{"action": "none", "parameters": {}}

Rules:
- All date-times must be RFC 3339 in UTC, e.g. "2025-06-03T14:00:00Z".
- Resolve relative dates against the current date above: "today" is %s, "tomorrow" is the next day, "next week" is 7 days out.
- Do not invent parameters the user did not provide; omit unknown optional parameters.
- Do not include any explanation outside the JSON object.`,
		now.Format("2006-01-02"), now.Weekday(),
		defaultCount, defaultCount, defaultDurationMinutes,
		defaultCount, defaultDurationMinutes,
		now.Format("2006-01-02"),
	)

	return b.String()
}

// wireReply is the JSON shape the model is instructed to return.
type wireReply struct {
	Action     string     `json:"action"`
	Parameters wireParams `json:"parameters"`
}

type wireParams struct {
	Count           int      `json:"count"`
	To              string   `json:"to"`
	Subject         string   `json:"subject"`
	Body            string   `json:"body"`
	EmailID         string   `json:"email_id"`
	Title           string   `json:"title"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	DurationMinutes int      `json:"duration_minutes"`
	Attendees       []string `json:"attendees"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
}

// ParseReply translates a raw model reply into a validated Action.
//
// Error classes follow the reply's failure mode: a reply that is not the
// expected JSON object yields a ResolutionError; a well-formed reply with
// a missing or malformed parameter yields a ValidationError; a reply that
// names no supported action yields ErrNoMatch.
func ParseReply(raw string, now time.Time) (Action, error) {
	cleaned := stripCodeFence(raw)

	var reply wireReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, &ResolutionError{Raw: raw, Cause: fmt.Errorf("model reply is not valid JSON: %w", err)}
	}

	action, err := buildAction(reply, now)
	if err != nil {
		return nil, err
	}

	if err := action.Validate(); err != nil {
		return nil, err
	}

	return action, nil
}

func buildAction(reply wireReply, now time.Time) (Action, error) {
	p := reply.Parameters

	switch Kind(strings.ToLower(strings.TrimSpace(reply.Action))) {
	case KindSummarizeEmails:
		return SummarizeEmails{Count: countOrDefault(p.Count)}, nil

	case KindListUnread:
		return ListUnread{Count: countOrDefault(p.Count)}, nil

	case KindGetEmail:
		return GetEmail{ID: p.EmailID}, nil

	case KindSendEmail:
		return SendEmail{To: p.To, Subject: p.Subject, Body: p.Body}, nil

	case KindCreateEvent:
		start, err := parseTime("start", p.Start)
		if err != nil {
			return nil, err
		}
		end := time.Time{}
		if p.End != "" {
			end, err = parseTime("end", p.End)
			if err != nil {
				return nil, err
			}
		} else if !start.IsZero() {
			end = start.Add(time.Duration(durationOrDefault(p.DurationMinutes)) * time.Minute)
		}
		return CreateEvent{
			Title:       p.Title,
			Start:       start,
			End:         end,
			Attendees:   p.Attendees,
			Location:    p.Location,
			Description: p.Description,
		}, nil

	case KindListEvents:
		from := now
		if p.Start != "" {
			var err error
			from, err = parseTime("start", p.Start)
			if err != nil {
				return nil, err
			}
		}
		to := from.AddDate(0, 0, defaultListRangeDays)
		if p.End != "" {
			var err error
			to, err = parseTime("end", p.End)
			if err != nil {
				return nil, err
			}
		}
		return ListEvents{From: from, To: to, Count: countOrDefault(p.Count)}, nil

	case KindCheckAvailability:
		from, err := parseTime("start", p.Start)
		if err != nil {
			return nil, err
		}
		to, err := parseTime("end", p.End)
		if err != nil {
			return nil, err
		}
		return CheckAvailability{
			From:     from,
			To:       to,
			Duration: time.Duration(durationOrDefault(p.DurationMinutes)) * time.Minute,
		}, nil

	case "none", "":
		return nil, ErrNoMatch

	default:
		return nil, ErrNoMatch
	}
}

// timeLayouts are accepted in order; the prompt asks for RFC 3339 but
// models occasionally drop the timezone or the time entirely.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTime(field, value string) (time.Time, error) {
	if value == "" {
		// Zero time; the action's Validate decides whether it was required.
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a recognized date-time", value)}
}

func countOrDefault(n int) int {
	if n <= 0 {
		return defaultCount
	}
	return n
}

func durationOrDefault(minutes int) int {
	if minutes <= 0 {
		return defaultDurationMinutes
	}
	return minutes
}

// stripCodeFence removes a markdown code fence wrapper the model sometimes
// adds around the JSON object.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
