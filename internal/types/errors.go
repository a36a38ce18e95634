package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal failure modes of a conversion run.
var (
	ErrStructuralMismatch = errors.New("structural mismatch")
	ErrUnknownValue       = errors.New("unknown enumeration value")
	ErrMergeConflict      = errors.New("merge conflict")
	ErrEmptyResultSet     = errors.New("empty result set")
	ErrNoInput            = errors.New("no input documents")
)

// MismatchError reports markup that does not have the shape an extractor expects.
type MismatchError struct {
	Expectation string
	Got         string
	Snippet     string
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("structural mismatch: expected %s", e.Expectation)
	if e.Got != "" {
		msg += fmt.Sprintf(", got %s", e.Got)
	}
	if e.Snippet != "" {
		msg += fmt.Sprintf(" in %q", e.Snippet)
	}
	return msg
}

func (e *MismatchError) Unwrap() error { return ErrStructuralMismatch }

// Mismatch builds a MismatchError. got is formatted with %v.
func Mismatch(expectation string, got any, snippet string) error {
	var gotStr string
	if got != nil {
		gotStr = fmt.Sprintf("%v", got)
	}
	return &MismatchError{
		Expectation: expectation,
		Got:         gotStr,
		Snippet:     truncate(snippet, 200),
	}
}

// UnknownValueError reports a signal value missing from a closed lookup table.
type UnknownValueError struct {
	Table string
	Value string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Table, e.Value)
}

func (e *UnknownValueError) Unwrap() error { return ErrUnknownValue }

// MergeConflictError reports two partial records for the same entity that
// disagree on a scalar field.
type MergeConflictError struct {
	Entity string
	Field  string
	Diff   string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflict for %q on %s (-have +got):\n%s", e.Entity, e.Field, e.Diff)
}

func (e *MergeConflictError) Unwrap() error { return ErrMergeConflict }

// EmptyResultError reports an extracted record count below the sanity threshold.
// Min is inclusive.
type EmptyResultError struct {
	Guide string
	Got   int
	Min   int
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: extracted %d records, need at least %d (page structure changed?)", e.Guide, e.Got, e.Min)
}

func (e *EmptyResultError) Unwrap() error { return ErrEmptyResultSet }

// ParseError attaches the input document to an extraction failure.
type ParseError struct {
	Source   string
	Selector string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("parse error for %s (selector=%q): %v", e.Source, e.Selector, e.Err)
	}
	return fmt.Sprintf("parse error for %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError wraps errors that occur while writing the guide document.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PipelineError wraps errors that occur in the normalization pipeline.
type PipelineError struct {
	Stage  string
	Entity string
	Err    error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error at stage %q for %q: %v", e.Stage, e.Entity, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
