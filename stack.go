// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jstreamer/internal/escape"
)

// A Stack tracks the nesting context of an event stream on behalf of a
// Source. A source calls SetKey when it reads a field name and Observe for
// each event it reports; Top then describes the frame of that event.
//
// The path of frames only grows when a container receives its first field or
// element, so after a RecordStart or ArrayStart the top frame is still the
// one that identifies the container itself within its parent.
type Stack struct {
	open []container
	path []Frame
}

type container struct {
	array   bool
	hasElem bool // whether this container has a frame on the path
	keyed   bool // whether a field name awaits its value
}

// SetKey records that name is the field name of the next value in the
// innermost open record. It reports an error if the innermost container is
// not a record.
func (s *Stack) SetKey(name string) error {
	n := len(s.open)
	if n == 0 || s.open[n-1].array {
		return fmt.Errorf("field name %q outside a record", name)
	}
	top := &s.open[n-1]
	if top.keyed {
		return fmt.Errorf("field name %q follows a field name", name)
	}
	s.setFrame(top, Frame{Key: name})
	top.keyed = true
	return nil
}

func (s *Stack) setFrame(c *container, f Frame) {
	if c.hasElem {
		s.path[len(s.path)-1] = f
	} else {
		s.path = append(s.path, f)
		c.hasElem = true
	}
}

// Observe updates the stack for an event reported by the source. It reports
// an error if e closes a container that is not open, or if e is a value in a
// record without a preceding field name.
func (s *Stack) Observe(e Event) error {
	switch e.Kind {
	case RecordEnd, ArrayEnd:
		n := len(s.open)
		if n == 0 {
			return fmt.Errorf("unbalanced %v", e.Kind)
		}
		if top := s.open[n-1]; top.array != (e.Kind == ArrayEnd) || top.keyed {
			return fmt.Errorf("unexpected %v", e.Kind)
		} else if top.hasElem {
			s.path = s.path[:len(s.path)-1]
		}
		s.open = s.open[:n-1]
		return nil

	case Invalid:
		return errors.New("invalid event")
	}

	// All other events are values occupying a slot in their parent.
	if n := len(s.open); n > 0 {
		top := &s.open[n-1]
		if top.array {
			if top.hasElem {
				s.path[len(s.path)-1].Index++
			} else {
				s.setFrame(top, Frame{InArray: true})
			}
		} else if !top.keyed {
			return fmt.Errorf("%v without a field name", e.Kind)
		} else {
			top.keyed = false
		}
	}
	switch e.Kind {
	case RecordStart:
		s.open = append(s.open, container{})
	case ArrayStart:
		s.open = append(s.open, container{array: true})
	}
	return nil
}

// Top reports the innermost frame of the most recent event, if any.
func (s *Stack) Top() (Frame, bool) {
	if len(s.path) == 0 {
		return Frame{}, false
	}
	return s.path[len(s.path)-1], true
}

// WantKey reports whether the innermost open container is a record awaiting
// a field name. Sources whose tokenizer reports field names as ordinary
// strings use this to tell the two apart.
func (s *Stack) WantKey() bool {
	n := len(s.open)
	return n > 0 && !s.open[n-1].array && !s.open[n-1].keyed
}

// InArray reports whether the innermost open container is an array.
func (s *Stack) InArray() bool {
	n := len(s.open)
	return n > 0 && s.open[n-1].array
}

// HasMembers reports whether the innermost open container has begun at least
// one field or element.
func (s *Stack) HasMembers() bool {
	n := len(s.open)
	return n > 0 && s.open[n-1].hasElem
}

// Depth reports the number of open containers.
func (s *Stack) Depth() int { return len(s.open) }

// Path renders the frames of s as a path expression rooted at "$", for
// example $.items[2].name or $["odd key"].
func (s *Stack) Path() string { return FormatPath(s.path) }

// Reset discards all state in s.
func (s *Stack) Reset() { s.open = s.open[:0]; s.path = s.path[:0] }

// FormatPath renders a sequence of frames as a path expression rooted at "$".
func FormatPath(frames []Frame) string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, f := range frames {
		if f.InArray {
			fmt.Fprintf(&sb, "[%d]", f.Index)
		} else if escape.IsName(f.Key) {
			sb.WriteByte('.')
			sb.WriteString(f.Key)
		} else {
			sb.WriteByte('[')
			sb.WriteString(escape.Quote(f.Key))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}
