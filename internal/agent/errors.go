package agent

import (
	"errors"
	"fmt"
)

// ErrCancelled marks a mutating action the user declined at the
// confirmation gate. It is a normal outcome, not a failure.
var ErrCancelled = errors.New("cancelled by user")

// APIError wraps an error from a Google API collaborator with the service
// and operation that produced it.
type APIError struct {
	Service   string
	Operation string
	Err       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Operation, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func apiError(service, operation string, err error) *APIError {
	return &APIError{Service: service, Operation: operation, Err: err}
}
