package agent

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/intent"
)

func TestGate_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		approved bool
	}{
		{name: "yes", answer: "yes\n", approved: true},
		{name: "y", answer: "y\n", approved: true},
		{name: "uppercase Y", answer: "Y\n", approved: true},
		{name: "no", answer: "n\n", approved: false},
		{name: "empty line", answer: "\n", approved: false},
		{name: "anything else", answer: "sure, go ahead\n", approved: false},
		{name: "eof", answer: "", approved: false},
	}

	action := intent.SendEmail{To: "a@example.com", Subject: "Hi", Body: "Hello"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			gate := NewGate(strings.NewReader(tt.answer), &out)

			approved, err := gate.Confirm(action)
			require.NoError(t, err)
			assert.Equal(t, tt.approved, approved)
			assert.Contains(t, out.String(), "Proceed?")
		})
	}
}

func TestPreview_SendEmail(t *testing.T) {
	preview := Preview(intent.SendEmail{
		To:      "john@example.com",
		Subject: "Project update",
		Body:    "The project is on track.",
	})

	assert.Contains(t, preview, "send an email")
	assert.Contains(t, preview, "john@example.com")
	assert.Contains(t, preview, "Project update")
	assert.Contains(t, preview, "The project is on track.")
}

func TestPreview_CreateEvent(t *testing.T) {
	start := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	preview := Preview(intent.CreateEvent{
		Title:     "Team sync",
		Start:     start,
		End:       start.Add(time.Hour),
		Attendees: []string{"bob@example.com"},
		Location:  "Room 4",
	})

	assert.Contains(t, preview, "create a calendar event")
	assert.Contains(t, preview, "Team sync")
	assert.Contains(t, preview, "14:00")
	assert.Contains(t, preview, "15:00")
	assert.Contains(t, preview, "bob@example.com")
	assert.Contains(t, preview, "Room 4")
}

func TestPreview_Deterministic(t *testing.T) {
	action := intent.CreateEvent{
		Title: "Sync",
		Start: time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, Preview(action), Preview(action))
}

func TestPreview_LongBodyTruncated(t *testing.T) {
	preview := Preview(intent.SendEmail{
		To:      "a@example.com",
		Subject: "Hi",
		Body:    strings.Repeat("b", 500),
	})

	assert.Less(t, len(preview), 500)
	assert.Contains(t, preview, "...")
}
