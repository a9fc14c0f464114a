package rag

import "errors"

// Failure classes for the answer pipeline. Callers test with errors.Is; the
// originating cause stays reachable through errors.Unwrap. No stage retries:
// the first failure aborts the request and no partial answer is returned.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrProvider     = errors.New("provider failure")
	ErrRetrieval    = errors.New("retrieval failure")
	ErrUnexpected   = errors.New("unexpected failure")
)

// stageError pairs a failure class with the underlying cause.
type stageError struct {
	kind  error
	cause error
}

func (e *stageError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *stageError) Is(target error) bool {
	return target == e.kind
}

func (e *stageError) Unwrap() error {
	return e.cause
}

func fail(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &stageError{kind: kind, cause: cause}
}
