package intent

import (
	"context"
	"time"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/llm"
)

// Completer is the slice of the model client the resolver needs.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Resolver translates free-text user input into an Action by asking the
// model collaborator. It performs no side effects beyond the model call
// itself.
type Resolver struct {
	completer Completer
	history   *llm.History
	now       func() time.Time
}

// NewResolver creates a resolver around the given model client.
func NewResolver(completer Completer) *Resolver {
	return &Resolver{
		completer: completer,
		history:   llm.NewHistory(),
		now:       time.Now,
	}
}

// Resolve maps user text to one Action. Failures to reach the model or to
// parse its reply surface as *ResolutionError; a well-formed reply with
// bad parameters surfaces as *ValidationError; a reply matching no action
// surfaces as ErrNoMatch.
func (r *Resolver) Resolve(ctx context.Context, text string) (Action, error) {
	messages := make([]llm.Message, 0, r.history.Len()+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: SystemPrompt(r.now()),
	})
	messages = append(messages, r.history.Messages()...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: text})

	reply, err := r.completer.Complete(ctx, messages)
	if err != nil {
		return nil, &ResolutionError{Cause: err}
	}

	// Record the exchange so follow-up requests can reference it
	// ("actually make it 30 minutes"). Recorded even when parsing fails;
	// the model's reply is part of the conversation either way.
	r.history.Add(llm.RoleUser, text)
	r.history.Add(llm.RoleAssistant, reply)

	return ParseReply(reply, r.now())
}
