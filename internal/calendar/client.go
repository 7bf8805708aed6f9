package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/google"
)

// Client wraps the Google Calendar service.
type Client struct {
	svc *calendar.Service
}

// NewClient creates a new Calendar client authenticated with the cached
// OAuth token for the given configuration.
func NewClient(ctx context.Context, conf *oauth2.Config) (*Client, error) {
	httpClient, err := google.GetHTTPClient(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar HTTP client: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// ListEvents lists events on the primary calendar within a time range,
// ordered by start time.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time, max int64) ([]EventSummary, error) {
	call := c.svc.Events.List("primary").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	if max > 0 {
		call = call.MaxResults(max)
	}

	events, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var summaries []EventSummary
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}

	return summaries, nil
}

// CreateEvent creates a new event on the primary calendar. Attendees are
// notified (sendUpdates=all).
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*EventSummary, error) {
	if input.Summary == "" {
		return nil, fmt.Errorf("event title is required")
	}
	if input.Start.IsZero() {
		return nil, fmt.Errorf("event start time is required")
	}
	if !input.End.After(input.Start) {
		return nil, fmt.Errorf("event end must be after start")
	}

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
	}

	if len(input.Attendees) > 0 {
		var attendees []*calendar.EventAttendee
		for _, email := range input.Attendees {
			attendees = append(attendees, &calendar.EventAttendee{
				Email: email,
			})
		}
		event.Attendees = attendees
	}

	created, err := c.svc.Events.Insert("primary", event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// QueryFreeBusy returns the busy intervals on the primary calendar within
// a time range.
func (c *Client) QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time) ([]TimeRange, error) {
	query := &calendar.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: "primary"}},
	}

	res, err := c.svc.Freebusy.Query(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query free/busy: %w", err)
	}

	var busy []TimeRange
	for _, cal := range res.Calendars {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				continue
			}
			busy = append(busy, TimeRange{Start: start, End: end})
		}
	}

	return busy, nil
}

// FindAvailableSlots finds open slots of the given duration on the primary
// calendar within a time range.
func (c *Client) FindAvailableSlots(ctx context.Context, timeMin, timeMax time.Time, duration time.Duration) ([]AvailableSlot, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	busy, err := c.QueryFreeBusy(ctx, timeMin, timeMax)
	if err != nil {
		return nil, err
	}

	return findSlots(busy, timeMin, timeMax, duration), nil
}

// findSlots scans the gaps between busy intervals for slots of at least
// the requested duration. Busy intervals may overlap and arrive unsorted.
func findSlots(busy []TimeRange, timeMin, timeMax time.Time, duration time.Duration) []AvailableSlot {
	sorted := make([]TimeRange, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var slots []AvailableSlot
	cursor := timeMin

	for _, b := range sorted {
		if b.End.Before(cursor) {
			continue
		}
		if b.Start.After(cursor) {
			gapEnd := b.Start
			if gapEnd.After(timeMax) {
				gapEnd = timeMax
			}
			if gapEnd.Sub(cursor) >= duration {
				slots = append(slots, AvailableSlot{
					Start:    cursor,
					End:      cursor.Add(duration),
					Duration: duration,
				})
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(timeMax) {
			return slots
		}
	}

	if timeMax.Sub(cursor) >= duration {
		slots = append(slots, AvailableSlot{
			Start:    cursor,
			End:      cursor.Add(duration),
			Duration: duration,
		})
	}

	return slots
}
