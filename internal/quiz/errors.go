package quiz

import "fmt"

// NotFoundError reports a structural edit that targeted a section (or, for
// ReplaceSelectedQuestions, the active-section slot) that does not exist.
// State is left unchanged when it is returned.
type NotFoundError struct {
	Kind string // "section" | "active section"
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no %s", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError reports a caller-supplied value that failed the schema
// contract. The canonical quiz is always left in its last-known-valid state.
type ValidationError struct {
	Schema string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := "invalid " + e.Schema
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }
