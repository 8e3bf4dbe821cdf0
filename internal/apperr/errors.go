package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness or state conflict.
var ErrConflict = errors.New("conflict")

// ValidationError carries every field-level failure found for a section or a
// whole draft. Callers re-prompt the user; the draft stays unchanged.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Validation wraps a message list into a ValidationError.
func Validation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// CapacityError signals that the projected total weight exceeds the selected
// vehicle's capacity. It blocks the merge that would violate the bound.
type CapacityError struct {
	Vehicle string
	TotalKg float64
	MaxKg   float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("total weight %.1fkg exceeds %s capacity of %.0fkg", e.TotalKg, e.Vehicle, e.MaxKg)
}

// StorageError wraps a draft store read/write failure. Reads are safe to
// retry; the state after a failed write is indeterminate.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("draft storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// SubmissionError wraps an order store failure during finalize. The draft is
// preserved so the user can retry without redoing prior steps.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order submission: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
