// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer

import (
	"fmt"
	"io"
	"log/slog"
)

// DefaultMaxDepth is the default nesting limit of a Cursor.
const DefaultMaxDepth = 10000

// A Cursor is the exclusive handle on a Source for the duration of one
// traversal. Readers and handlers advance the source only through the cursor,
// which keeps track of the nesting depth and carries the settings that govern
// the traversal.
//
// A Cursor is not safe for concurrent use. While a handler is running it is
// the only code that may advance the cursor, and it must not retain the
// cursor after it returns.
type Cursor struct {
	src      Source
	log      *slog.Logger
	maxDepth int  // 0 means unlimited
	strict   bool // report anomalies as errors
	checked  bool // verify handler postconditions
	depth    int
	closed   bool // the last event decremented depth
	eof      bool
}

// NewCursor constructs a Cursor that consumes events from src.
func NewCursor(src Source) *Cursor { return &Cursor{src: src, maxDepth: DefaultMaxDepth} }

// SetMaxDepth sets the maximum nesting depth of containers the cursor will
// accept. If n <= 0, depth is not limited. Exceeding the limit reports a
// *ContractViolation wrapping ErrMaxDepth.
func (c *Cursor) SetMaxDepth(n int) { c.maxDepth = max(n, 0) }

// SetStrict configures the cursor to report (true) or tolerate (false)
// events that cannot begin a value where a value is expected. When tolerated,
// the anomaly is logged and the value is materialized as null.
func (c *Cursor) SetStrict(ok bool) { c.strict = ok }

// SetLogger sets the logger used to report anomalies. If lg == nil, the
// default logger is used.
func (c *Cursor) SetLogger(lg *slog.Logger) { c.log = lg }

// CheckHandlers configures the cursor to verify (true) or trust (false) that
// each handler consumes exactly the value it was given. A handler that leaves
// the cursor at a different depth, or inside a different field, causes the
// traversal to fail with a *ContractViolation. Checking is intended for tests.
func (c *Cursor) CheckHandlers(ok bool) { c.checked = ok }

// Next advances to the next event of the source. It returns io.EOF when the
// source is exhausted, and continues to do so on subsequent calls.
func (c *Cursor) Next() (Event, error) {
	if c.eof {
		return Event{}, io.EOF
	}
	e, err := c.src.Next()
	if err == io.EOF {
		c.eof = true
		return Event{}, err
	} else if err != nil {
		return Event{}, err
	}
	c.closed = false
	switch e.Kind {
	case RecordStart, ArrayStart:
		c.depth++
		if c.maxDepth > 0 && c.depth > c.maxDepth {
			return Event{}, c.violation(ErrMaxDepth, "depth %d exceeds limit %d", c.depth, c.maxDepth)
		}
	case RecordEnd, ArrayEnd:
		if c.depth > 0 {
			c.depth--
			c.closed = true
		}
	}
	return e, nil
}

// Top reports the innermost frame of the event most recently returned by Next.
func (c *Cursor) Top() (Frame, bool) { return c.src.Top() }

// Depth reports the number of records and arrays opened and not yet closed.
func (c *Cursor) Depth() int { return c.depth }

// Path renders the location of the most recent event. If the source does not
// report a complete path, only the innermost frame is shown, below a
// descendant step: $..name or $..[3].
func (c *Cursor) Path() string {
	if p, ok := c.src.(interface{ Path() string }); ok {
		return p.Path()
	}
	if f, ok := c.Top(); ok {
		return "$." + FormatPath([]Frame{f})[1:]
	}
	return "$"
}

func (c *Cursor) logger() *slog.Logger {
	if c.log == nil {
		return slog.Default()
	}
	return c.log
}

// anomaly reports an event found where a value should begin. It returns an
// error in strict mode, and otherwise logs the anomaly and returns nil.
// A closing event in that position did not close a container.
func (c *Cursor) anomaly(e Event) error {
	if c.closed {
		c.depth++
		c.closed = false
	}
	if c.strict {
		return &AnomalyError{Path: c.Path(), Event: e}
	}
	c.logger().Warn("unexpected event in place of a value",
		slog.String("path", c.Path()), slog.String("event", e.String()))
	return nil
}

func (c *Cursor) violation(err error, msg string, args ...any) *ContractViolation {
	return &ContractViolation{
		Path:    c.Path(),
		Message: fmt.Sprintf(msg, args...),
		err:     err,
	}
}

func (c *Cursor) incomplete(want EventKind) *IncompleteError {
	return &IncompleteError{Path: c.Path(), Want: want}
}

// dispatch calls h for the field name whose first event has just been read,
// and in checked mode verifies that h left the cursor where it belongs. The
// depth is that of the cursor before first was read.
func (c *Cursor) dispatch(h Handler, name string, first Event, depth int) error {
	if err := h.Handle(c, name, first); err != nil {
		return err
	}
	if !c.checked {
		return nil
	}
	if c.depth != depth {
		return c.violation(nil, "handler for %q left the cursor at depth %d, want %d", name, c.depth, depth)
	}
	if f, ok := c.Top(); !ok || !f.IsKey() || f.Key != name {
		return c.violation(nil, "handler for %q consumed past its value (now at %v)", name, f)
	}
	return nil
}
