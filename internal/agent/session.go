package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/instrumentation"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/intent"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/logging"
)

// State is the session loop's position in handling one request.
type State int

const (
	StateAwaitingInput State = iota
	StateResolving
	StateAwaitingConfirmation
	StateDispatching
	StateReporting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateResolving:
		return "resolving"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateDispatching:
		return "dispatching"
	case StateReporting:
		return "reporting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// exitPhrases end the session.
var exitPhrases = map[string]bool{
	"exit": true,
	"quit": true,
}

// ActionResolver maps user text to an action.
type ActionResolver interface {
	Resolve(ctx context.Context, text string) (intent.Action, error)
}

// Confirmer gates mutating actions behind user approval.
type Confirmer interface {
	Confirm(action intent.Action) (bool, error)
}

// ActionDispatcher executes a validated action.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, action intent.Action) Result
}

// Session is the interactive read-eval-print loop. One request is fully
// resolved, confirmed, dispatched and reported before the next line is
// read; there is no concurrency and no state survives between lines
// beyond the resolver's conversation history.
type Session struct {
	resolver   ActionResolver
	dispatcher ActionDispatcher
	gate       Confirmer

	in      *bufio.Reader
	out     io.Writer
	timeout time.Duration

	metrics *instrumentation.Metrics
	logger  *slog.Logger

	state State
}

// NewSession wires a session loop over the given components. timeout
// bounds each resolve-and-dispatch cycle; zero means no bound. When the
// gate reads from the same stream, pass the same *bufio.Reader to both
// so buffered input is not lost between them.
func NewSession(resolver ActionResolver, dispatcher ActionDispatcher, gate Confirmer, in io.Reader, out io.Writer, timeout time.Duration, metrics *instrumentation.Metrics, logger *slog.Logger) *Session {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		resolver:   resolver,
		dispatcher: dispatcher,
		gate:       gate,
		in:         bufio.NewReader(in),
		out:        out,
		timeout:    timeout,
		metrics:    metrics,
		logger:     logger,
		state:      StateAwaitingInput,
	}
}

// State returns the loop's current state.
func (s *Session) State() State {
	return s.state
}

// Run executes the loop until an exit phrase, EOF, or context
// cancellation. Every error class is rendered as a report; none
// terminates the loop.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprint(s.out, welcomeBanner)

	for {
		s.state = StateAwaitingInput
		fmt.Fprint(s.out, "\n> ")

		raw, err := s.in.ReadString('\n')
		if err != nil && raw == "" {
			s.state = StateTerminated
			fmt.Fprintln(s.out, "\nGoodbye!")
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if exitPhrases[strings.ToLower(line)] {
			s.state = StateTerminated
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}

		report := s.handleLine(ctx, line)

		s.state = StateReporting
		fmt.Fprintln(s.out, report)

		if err := ctx.Err(); err != nil {
			s.state = StateTerminated
			return err
		}
	}
}

// handleLine resolves, confirms, and dispatches one input line, returning
// the report text. All four error classes (resolution, validation, API,
// cancellation) are converted to reports here.
//
// The timeout bounds the resolve and dispatch calls separately. The
// confirmation wait is unbounded; time the user spends reading the
// preview must not expire an action they go on to approve.
func (s *Session) handleLine(ctx context.Context, line string) string {
	s.state = StateResolving
	resolveCtx, cancel := s.bounded(ctx)
	action, err := s.resolver.Resolve(resolveCtx, line)
	cancel()
	if err != nil {
		s.metrics.RecordResolutionFailure(ctx, resolutionFailureReason(err))
		s.logger.Warn("intent resolution failed", logging.Err(err))
		return renderResolveError(err)
	}

	s.metrics.RecordIntentResolved(ctx, string(action.Kind()))
	s.logger.Info("intent resolved", logging.Action(string(action.Kind())))

	if action.Mutating() {
		s.state = StateAwaitingConfirmation
		approved, err := s.gate.Confirm(action)
		if err != nil {
			return FailurePrefix + err.Error()
		}
		if !approved {
			s.metrics.RecordConfirmation(ctx, "rejected")
			s.logger.Info("action cancelled", logging.Action(string(action.Kind())), logging.Status(logging.StatusCancelled))
			return Format(failure(action.Kind(), ErrCancelled))
		}
		s.metrics.RecordConfirmation(ctx, "approved")
	}

	s.state = StateDispatching
	dispatchCtx, cancel := s.bounded(ctx)
	defer cancel()
	return Format(s.dispatcher.Dispatch(dispatchCtx, action))
}

// bounded derives a context limited by the session timeout, if one is set.
func (s *Session) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

func renderResolveError(err error) string {
	var valErr *intent.ValidationError
	switch {
	case errors.Is(err, intent.ErrNoMatch):
		return "I couldn't map that to a supported action. Try rephrasing, or ask for emails, calendar events, or availability."
	case errors.As(err, &valErr):
		return FailurePrefix + valErr.Error()
	default:
		return FailurePrefix + err.Error()
	}
}

func resolutionFailureReason(err error) string {
	var valErr *intent.ValidationError
	switch {
	case errors.Is(err, intent.ErrNoMatch):
		return "no_match"
	case errors.As(err, &valErr):
		return "invalid_parameters"
	default:
		return "model_error"
	}
}

const welcomeBanner = `Welcome to the calendar agent.
I can manage your email and calendar from natural language. For example:
  - "Summarize my last 3 unread emails"
  - "Send an email to john@example.com about the project update"
  - "Schedule a meeting tomorrow at 2 PM for 1 hour"
  - "What's on my calendar next week?"
  - "When am I free tomorrow?"
Type "exit" to quit.
`
