// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMaxDepth is wrapped by the ContractViolation reported when the input
	// nests more deeply than the cursor allows.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")

	// ErrNotArray is wrapped by the ContractViolation reported when an
	// array handler is given a value that is not an array.
	ErrNotArray = errors.New("non-array found")

	// ErrNotRecord is wrapped by the ContractViolation reported when a record
	// handler is given a value that is not a record.
	ErrNotRecord = errors.New("non-record found")
)

// A ContractViolation reports a fatal disagreement between a source, the
// reader, and the handlers about the state of the traversal. It is not a
// property of the input data, and the traversal cannot continue past it.
type ContractViolation struct {
	Path    string // the path of the cursor when the violation was detected
	Message string

	err error
}

// Error satisfies the error interface.
func (c *ContractViolation) Error() string {
	return fmt.Sprintf("at %s: contract violation: %s", c.Path, c.Message)
}

// Unwrap supports error wrapping.
func (c *ContractViolation) Unwrap() error { return c.err }

// An AnomalyError reports an event that cannot begin a value, found where a
// value was expected. It is only reported by a cursor in strict mode; other
// cursors log the anomaly and substitute a null value.
type AnomalyError struct {
	Path  string
	Event Event
}

// Error satisfies the error interface.
func (a *AnomalyError) Error() string {
	return fmt.Sprintf("at %s: unexpected %v where a value was expected", a.Path, a.Event)
}

// An IncompleteError reports that the source was exhausted before a value
// was complete. It wraps io.ErrUnexpectedEOF.
type IncompleteError struct {
	Path string
	Want EventKind // the end marker that was not found, or Invalid for a value
}

// Error satisfies the error interface.
func (e *IncompleteError) Error() string {
	if e.Want == Invalid {
		return fmt.Sprintf("at %s: input ended before a value", e.Path)
	}
	return fmt.Sprintf("at %s: input ended before %v", e.Path, e.Want)
}

// Unwrap supports error wrapping.
func (e *IncompleteError) Unwrap() error { return io.ErrUnexpectedEOF }
