package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/llm"
)

// fakeCompleter replays canned replies and records the requests it saw.
type fakeCompleter struct {
	replies  []string
	err      error
	requests [][]llm.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.requests = append(f.requests, messages)
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func newTestResolver(completer Completer) *Resolver {
	r := NewResolver(completer)
	r.now = func() time.Time { return testNow }
	return r
}

func TestResolver_Resolve(t *testing.T) {
	fake := &fakeCompleter{
		replies: []string{`{"action":"summarize_emails","parameters":{"count":3}}`},
	}
	r := newTestResolver(fake)

	action, err := r.Resolve(context.Background(), "Summarize my last 3 unread emails")
	require.NoError(t, err)

	summarize, ok := action.(SummarizeEmails)
	require.True(t, ok)
	assert.Equal(t, 3, summarize.Count)

	// The request must carry the schema prompt and the user's text.
	require.Len(t, fake.requests, 1)
	msgs := fake.requests[0]
	require.GreaterOrEqual(t, len(msgs), 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "summarize_emails")
	assert.Equal(t, "Summarize my last 3 unread emails", msgs[len(msgs)-1].Content)
}

func TestResolver_ModelUnreachable(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("connection refused")}
	r := newTestResolver(fake)

	_, err := r.Resolve(context.Background(), "list my events")
	require.Error(t, err)

	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Contains(t, resErr.Error(), "connection refused")
}

func TestResolver_UnparsableReply(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"I am not sure what you mean."}}
	r := newTestResolver(fake)

	_, err := r.Resolve(context.Background(), "do the thing")
	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
}

func TestResolver_HistoryCarriedForward(t *testing.T) {
	fake := &fakeCompleter{
		replies: []string{
			`{"action":"list_events","parameters":{}}`,
			`{"action":"list_events","parameters":{"count":10}}`,
		},
	}
	r := newTestResolver(fake)

	_, err := r.Resolve(context.Background(), "what's on my calendar?")
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), "show me more of them")
	require.NoError(t, err)

	// The second request must replay the first exchange after the system
	// prompt and before the new user message.
	require.Len(t, fake.requests, 2)
	second := fake.requests[1]
	require.Len(t, second, 4)
	assert.Equal(t, llm.RoleSystem, second[0].Role)
	assert.Equal(t, "what's on my calendar?", second[1].Content)
	assert.Equal(t, llm.RoleAssistant, second[2].Role)
	assert.Equal(t, "show me more of them", second[3].Content)
}

func TestResolver_NoSideEffectsOnNoMatch(t *testing.T) {
	fake := &fakeCompleter{replies: []string{`{"action":"none","parameters":{}}`}}
	r := newTestResolver(fake)

	action, err := r.Resolve(context.Background(), "tell me a joke")
	assert.Nil(t, action)
	assert.ErrorIs(t, err, ErrNoMatch)
}
