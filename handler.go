// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer

import (
	"io"

	"github.com/creachadair/jstreamer/value"
)

// A Handler consumes the value of one record field.
//
// Handle is called with the cursor positioned just after first, the first
// event of the value of the field called name. When Handle returns, the
// cursor must be positioned just after the last event of that value: a
// handler consumes exactly the value it was given, no more and no less.
// Handlers that decode nested records or arrays typically do so by calling a
// RecordReader, Materialize, or another handler.
//
// If Handle reports an error, the traversal stops and that error is returned
// to the caller.
type Handler interface {
	Handle(c *Cursor, name string, first Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(c *Cursor, name string, first Event) error

// Handle satisfies the Handler interface by calling f.
func (f HandlerFunc) Handle(c *Cursor, name string, first Event) error { return f(c, name, first) }

// Discard returns a handler that consumes and discards each value it is
// given. This is the default handler of a new RecordReader.
func Discard() Handler {
	return HandlerFunc(func(c *Cursor, _ string, first Event) error {
		_, err := Materialize(c, first)
		return err
	})
}

// CopyInto returns a handler that materializes each value it is given and
// stores it in target under its field name, replacing any previous value.
func CopyInto(target value.Record) Handler {
	return HandlerFunc(func(c *Cursor, name string, first Event) error {
		v, err := Materialize(c, first)
		if err != nil {
			return err
		}
		target[name] = v
		return nil
	})
}

// Capture returns a handler that materializes the value it is given and
// stores it in *dst.
func Capture(dst *value.Value) Handler {
	return HandlerFunc(func(c *Cursor, _ string, first Event) error {
		v, err := Materialize(c, first)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}

// ForEachElement returns a handler for array values. It materializes each
// element of the array in order and passes it to fn. If fn reports an error,
// the traversal stops with that error. Giving the handler a value that is not
// an array is a *ContractViolation wrapping ErrNotArray.
func ForEachElement(fn func(value.Value) error) Handler {
	return HandlerFunc(func(c *Cursor, _ string, first Event) error {
		if first.Kind != ArrayStart {
			return c.violation(ErrNotArray, "want %v, got %v", ArrayStart, first)
		}
		return forEachElement(c, fn)
	})
}

// Record returns a handler for record values that reads the body of each
// record it is given with r. Giving the handler a value that is not a record
// is a *ContractViolation wrapping ErrNotRecord.
func Record(r *RecordReader) Handler {
	return HandlerFunc(func(c *Cursor, _ string, first Event) error {
		if first.Kind != RecordStart {
			return c.violation(ErrNotRecord, "want %v, got %v", RecordStart, first)
		}
		return r.Read(c)
	})
}

// forEachElement consumes the elements of an array through its ArrayEnd.
// Precondition: ArrayStart has been consumed.
func forEachElement(c *Cursor, fn func(value.Value) error) error {
	for {
		e, err := c.Next()
		if err == io.EOF {
			return c.incomplete(ArrayEnd)
		} else if err != nil {
			return err
		} else if e.Kind == ArrayEnd {
			return nil
		}
		v, err := Materialize(c, e)
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}
