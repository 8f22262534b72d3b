package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports a missing job, candidate, match or interview.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ConflictError reports a write that would break the one-interview-per-match rule.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// InvalidStatusError reports an unknown workflow status value.
type InvalidStatusError struct {
	Value string
	Cause error
}

func (e *InvalidStatusError) Error() string {
	return e.Cause.Error()
}

func (e *InvalidStatusError) Unwrap() error {
	return e.Cause
}

// FetchError wraps a failure to retrieve a job posting by URL.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch job posting %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
