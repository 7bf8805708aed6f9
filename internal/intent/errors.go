package intent

import (
	"errors"
	"fmt"
)

// ErrNoMatch is returned when the model could not map the input to any
// supported action.
var ErrNoMatch = errors.New("no supported action matches the request")

// ResolutionError indicates the model collaborator was unreachable or
// returned a reply that could not be parsed into an action.
type ResolutionError struct {
	// Raw is the model reply that failed to parse, if any.
	Raw   string
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve intent: %v", e.Cause)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates a required parameter is missing or malformed.
// It is raised before any external API call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}
