// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer

import "io"

// A RecordReader reads the fields of a record and dispatches each field to a
// handler chosen by its name. Fields with no registered handler are given to
// the default handler, which discards them unless replaced.
//
// Handlers must not be registered while a Read using the reader is in
// progress; doing so panics. A single reader may be used for any number of
// traversals, one after another, and may be re-entered from one of its own
// handlers to read a nested record from the same cursor.
type RecordReader struct {
	handlers map[string]Handler
	dflt     Handler
	active   int // number of Read calls in progress
}

// NewRecordReader constructs a RecordReader with no registered handlers and
// a default handler that discards values.
func NewRecordReader() *RecordReader { return &RecordReader{dflt: Discard()} }

// SetDefaultHandler sets the handler for fields with no registered handler.
// If h == nil, the default handler discards values.
func (r *RecordReader) SetDefaultHandler(h Handler) {
	r.checkIdle()
	if h == nil {
		h = Discard()
	}
	r.dflt = h
}

// SetHandler registers h as the handler for fields called name, replacing
// any previous handler for that name. If h == nil, the handler for name is
// removed and such fields go to the default handler.
func (r *RecordReader) SetHandler(name string, h Handler) {
	r.checkIdle()
	if h == nil {
		delete(r.handlers, name)
		return
	}
	if r.handlers == nil {
		r.handlers = make(map[string]Handler)
	}
	r.handlers[name] = h
}

// Handled reports whether a handler is registered for fields called name.
func (r *RecordReader) Handled(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

func (r *RecordReader) checkIdle() {
	if r.active != 0 {
		panic("jstreamer: handler registered while a record is being read")
	}
}

// Read reads the body of a record from c, dispatching each field to its
// handler, and consumes the RecordEnd that closes the record.
// Precondition: the RecordStart of the record has been consumed.
//
// If the input ends before the record is closed, Read reports an
// *IncompleteError. If the source does not report a field name for a field,
// Read reports a *ContractViolation. An error reported by a handler is
// returned as-is.
func (r *RecordReader) Read(c *Cursor) error {
	r.active++
	defer func() { r.active-- }()

	for {
		depth := c.Depth()
		e, err := c.Next()
		if err == io.EOF {
			return c.incomplete(RecordEnd)
		} else if err != nil {
			return err
		} else if e.Kind == RecordEnd {
			return nil
		}

		f, ok := c.Top()
		if !ok || !f.IsKey() {
			return c.violation(nil, "no field name for %v", e)
		}
		h, ok := r.handlers[f.Key]
		if !ok {
			h = r.dflt
		}
		if err := c.dispatch(h, f.Key, e, depth); err != nil {
			return err
		}
	}
}

// ReadDocument reads a complete top-level record from c, including its
// RecordStart. If c has no further input, ReadDocument returns io.EOF, so
// that a caller may read a sequence of records until the input is exhausted.
// If the next value is not a record, ReadDocument reports a
// *ContractViolation wrapping ErrNotRecord.
func (r *RecordReader) ReadDocument(c *Cursor) error {
	e, err := c.Next()
	if err != nil {
		return err
	} else if e.Kind != RecordStart {
		return c.violation(ErrNotRecord, "document begins with %v", e)
	}
	return r.Read(c)
}
