package calendar

import (
	"strings"
	"testing"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

func TestToEventSummary(t *testing.T) {
	summary := toEventSummary(nil)
	if summary.ID != "" {
		t.Errorf("Expected empty ID for nil event, got %s", summary.ID)
	}
}

func TestToEventSummary_TimedEvent(t *testing.T) {
	event := &calendar.Event{
		Id:      "evt1",
		Summary: "Team sync",
		Status:  "confirmed",
		Start:   &calendar.EventDateTime{DateTime: "2025-06-03T14:00:00Z"},
		End:     &calendar.EventDateTime{DateTime: "2025-06-03T15:00:00Z"},
		Organizer: &calendar.EventOrganizer{
			Email: "alice@example.com",
		},
		Attendees: []*calendar.EventAttendee{
			{Email: "bob@example.com"},
			{Email: "carol@example.com"},
		},
	}

	summary := toEventSummary(event)

	if summary.ID != "evt1" {
		t.Errorf("ID = %q", summary.ID)
	}
	if summary.Summary != "Team sync" {
		t.Errorf("Summary = %q", summary.Summary)
	}
	if summary.Start.Hour() != 14 || summary.End.Hour() != 15 {
		t.Errorf("times = %v - %v", summary.Start, summary.End)
	}
	if summary.Organizer != "alice@example.com" {
		t.Errorf("Organizer = %q", summary.Organizer)
	}
	if len(summary.Attendees) != 2 {
		t.Errorf("Attendees = %v", summary.Attendees)
	}
}

func TestToEventSummary_AllDayEvent(t *testing.T) {
	event := &calendar.Event{
		Id:    "evt2",
		Start: &calendar.EventDateTime{Date: "2025-06-03"},
		End:   &calendar.EventDateTime{Date: "2025-06-04"},
	}

	summary := toEventSummary(event)
	if summary.Start.IsZero() || summary.End.IsZero() {
		t.Errorf("all-day times not parsed: %v - %v", summary.Start, summary.End)
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tm
}

func TestFindSlots(t *testing.T) {
	dayStart := "2025-06-03T09:00:00Z"
	dayEnd := "2025-06-03T17:00:00Z"

	tests := []struct {
		name     string
		busy     []TimeRange
		duration time.Duration
		want     []string // expected slot starts
	}{
		{
			name:     "empty calendar yields one slot",
			busy:     nil,
			duration: time.Hour,
			want:     []string{"2025-06-03T09:00:00Z"},
		},
		{
			name: "slot in gap between meetings",
			busy: []TimeRange{
				{Start: mustTime(t, "2025-06-03T09:00:00Z"), End: mustTime(t, "2025-06-03T10:00:00Z")},
				{Start: mustTime(t, "2025-06-03T12:00:00Z"), End: mustTime(t, "2025-06-03T17:00:00Z")},
			},
			duration: time.Hour,
			want:     []string{"2025-06-03T10:00:00Z"},
		},
		{
			name: "gap too short is skipped",
			busy: []TimeRange{
				{Start: mustTime(t, "2025-06-03T09:00:00Z"), End: mustTime(t, "2025-06-03T10:00:00Z")},
				{Start: mustTime(t, "2025-06-03T10:30:00Z"), End: mustTime(t, "2025-06-03T17:00:00Z")},
			},
			duration: time.Hour,
			want:     nil,
		},
		{
			name: "unsorted busy intervals",
			busy: []TimeRange{
				{Start: mustTime(t, "2025-06-03T12:00:00Z"), End: mustTime(t, "2025-06-03T17:00:00Z")},
				{Start: mustTime(t, "2025-06-03T09:00:00Z"), End: mustTime(t, "2025-06-03T10:00:00Z")},
			},
			duration: time.Hour,
			want:     []string{"2025-06-03T10:00:00Z"},
		},
		{
			name: "overlapping busy intervals",
			busy: []TimeRange{
				{Start: mustTime(t, "2025-06-03T09:00:00Z"), End: mustTime(t, "2025-06-03T12:00:00Z")},
				{Start: mustTime(t, "2025-06-03T11:00:00Z"), End: mustTime(t, "2025-06-03T13:00:00Z")},
			},
			duration: time.Hour,
			want:     []string{"2025-06-03T13:00:00Z"},
		},
		{
			name: "fully booked day",
			busy: []TimeRange{
				{Start: mustTime(t, "2025-06-03T09:00:00Z"), End: mustTime(t, "2025-06-03T17:00:00Z")},
			},
			duration: 30 * time.Minute,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := findSlots(tt.busy, mustTime(t, dayStart), mustTime(t, dayEnd), tt.duration)

			if len(slots) != len(tt.want) {
				t.Fatalf("findSlots() returned %d slots, want %d: %+v", len(slots), len(tt.want), slots)
			}
			for i, wantStart := range tt.want {
				if !slots[i].Start.Equal(mustTime(t, wantStart)) {
					t.Errorf("slot %d start = %v, want %v", i, slots[i].Start, wantStart)
				}
				if slots[i].Duration != tt.duration {
					t.Errorf("slot %d duration = %v, want %v", i, slots[i].Duration, tt.duration)
				}
			}
		})
	}
}

func TestEventInput_Validation(t *testing.T) {
	// Validation happens in CreateEvent before any API call; exercise it
	// with a client that has no service attached.
	c := &Client{}
	ctx := t.Context()

	tests := []struct {
		name        string
		input       EventInput
		errContains string
	}{
		{
			name: "missing title",
			input: EventInput{
				Start: mustTime(t, "2025-06-03T14:00:00Z"),
				End:   mustTime(t, "2025-06-03T15:00:00Z"),
			},
			errContains: "title is required",
		},
		{
			name: "missing start",
			input: EventInput{
				Summary: "Sync",
				End:     mustTime(t, "2025-06-03T15:00:00Z"),
			},
			errContains: "start time is required",
		},
		{
			name: "end before start",
			input: EventInput{
				Summary: "Sync",
				Start:   mustTime(t, "2025-06-03T15:00:00Z"),
				End:     mustTime(t, "2025-06-03T14:00:00Z"),
			},
			errContains: "end must be after start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateEvent(ctx, tt.input)
			if err == nil {
				t.Fatal("CreateEvent() expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("CreateEvent() error = %v, should contain %q", err, tt.errContains)
			}
		})
	}
}
