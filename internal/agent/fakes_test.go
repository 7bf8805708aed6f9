package agent

import (
	"context"
	"time"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/calendar"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/gmail"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/intent"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/llm"
)

// fakeGmail records calls and returns canned data.
type fakeGmail struct {
	listCalls int
	getCalls  int
	sendCalls int

	listMax  int64
	sentMsg  *gmail.EmailMessage
	unread   []gmail.EmailSummary
	email    *gmail.EmailSummary
	sentID   string
	listErr  error
	getErr   error
	sendErr  error
}

func (f *fakeGmail) ListUnread(ctx context.Context, max int64) ([]gmail.EmailSummary, error) {
	f.listCalls++
	f.listMax = max
	return f.unread, f.listErr
}

func (f *fakeGmail) GetMessage(ctx context.Context, id string) (*gmail.EmailSummary, error) {
	f.getCalls++
	return f.email, f.getErr
}

func (f *fakeGmail) SendEmail(ctx context.Context, msg *gmail.EmailMessage) (string, error) {
	f.sendCalls++
	f.sentMsg = msg
	return f.sentID, f.sendErr
}

func (f *fakeGmail) totalCalls() int {
	return f.listCalls + f.getCalls + f.sendCalls
}

// fakeCalendar records calls and returns canned data.
type fakeCalendar struct {
	listCalls   int
	createCalls int
	slotsCalls  int

	createdInput calendar.EventInput
	events       []calendar.EventSummary
	created      *calendar.EventSummary
	slots        []calendar.AvailableSlot
	listErr      error
	createErr    error
	slotsErr     error
}

func (f *fakeCalendar) ListEvents(ctx context.Context, timeMin, timeMax time.Time, max int64) ([]calendar.EventSummary, error) {
	f.listCalls++
	return f.events, f.listErr
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, input calendar.EventInput) (*calendar.EventSummary, error) {
	f.createCalls++
	f.createdInput = input
	return f.created, f.createErr
}

func (f *fakeCalendar) FindAvailableSlots(ctx context.Context, timeMin, timeMax time.Time, duration time.Duration) ([]calendar.AvailableSlot, error) {
	f.slotsCalls++
	return f.slots, f.slotsErr
}

func (f *fakeCalendar) totalCalls() int {
	return f.listCalls + f.createCalls + f.slotsCalls
}

// fakeCompleter returns a canned model reply.
type fakeCompleter struct {
	calls  int
	prompt string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.calls++
	if len(messages) > 0 {
		f.prompt = messages[len(messages)-1].Content
	}
	return f.reply, f.err
}

// fakeResolver returns a fixed action or error.
type fakeResolver struct {
	action intent.Action
	err    error
	calls  int
}

func (f *fakeResolver) Resolve(ctx context.Context, text string) (intent.Action, error) {
	f.calls++
	return f.action, f.err
}

// fakeGate records confirmations and returns a fixed answer.
type fakeGate struct {
	calls    int
	lastSeen intent.Action
	approve  bool
}

func (f *fakeGate) Confirm(action intent.Action) (bool, error) {
	f.calls++
	f.lastSeen = action
	return f.approve, nil
}
