package worker

import (
	"errors"

	"basegraph.app/accounts/internal/schema"
)

// WorkerError marks a failure worth retrying, typically a referenced entity
// that is not visible yet.
type WorkerError struct {
	Reason string
	Err    error
}

func (e *WorkerError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *WorkerError) Unwrap() error { return e.Err }

// WorkerStopError marks a failure that no retry can fix. The message is
// dead-lettered immediately.
type WorkerStopError struct {
	Reason string
	Err    error
}

func (e *WorkerStopError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *WorkerStopError) Unwrap() error { return e.Err }

func retry(reason string, err error) error {
	return &WorkerError{Reason: reason, Err: err}
}

func stop(reason string, err error) error {
	return &WorkerStopError{Reason: reason, Err: err}
}

// Outcome is the terminal state of one delivery.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeRetried   Outcome = "retried"
	OutcomeFatal     Outcome = "fatal"
	OutcomeExhausted Outcome = "exhausted"
)

// isFatal reports whether err must not be retried. Anything not explicitly
// fatal is retryable until the attempt budget runs out.
func isFatal(err error) bool {
	var stopErr *WorkerStopError
	if errors.As(err, &stopErr) {
		return true
	}
	var schemaErr *schema.ValidationError
	return errors.As(err, &schemaErr)
}
