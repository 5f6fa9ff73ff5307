// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer

import (
	"fmt"
	"strconv"
)

// EventKind is the type of an event reported by a Source.
type EventKind byte

// Constants defining the valid EventKind values.
const (
	Invalid     EventKind = iota // invalid event
	RecordStart                  // start of a record "{"
	RecordEnd                    // end of a record "}"
	ArrayStart                   // start of an array "["
	ArrayEnd                     // end of an array "]"
	BoolValue                    // constant: true or false
	IntValue                     // number: signed integer
	UintValue                    // number: unsigned integer too large for int64
	FloatValue                   // number with fraction and/or exponent
	TextValue                    // decoded string
	NullValue                    // constant: null

	// Extension reports a token the source passed through without classifying
	// it as one of the kinds above. Its raw text is in Event.Text.
	Extension
)

var kindStr = [...]string{
	Invalid:     "invalid event",
	RecordStart: "RecordStart",
	RecordEnd:   "RecordEnd",
	ArrayStart:  "ArrayStart",
	ArrayEnd:    "ArrayEnd",
	BoolValue:   "Bool",
	IntValue:    "Int",
	UintValue:   "Uint",
	FloatValue:  "Float",
	TextValue:   "Text",
	NullValue:   "Null",
	Extension:   "Extension",
}

func (k EventKind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// An Event is a single token reported by a Source. Only the payload field
// matching Kind is meaningful.
type Event struct {
	Kind EventKind

	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Text  string // for TextValue and Extension
}

// IsScalar reports whether e is a complete scalar value.
func (e Event) IsScalar() bool {
	switch e.Kind {
	case BoolValue, IntValue, UintValue, FloatValue, TextValue, NullValue:
		return true
	}
	return false
}

// IsValueStart reports whether e may begin a value: a scalar, or the start of
// a record or an array.
func (e Event) IsValueStart() bool {
	return e.IsScalar() || e.Kind == RecordStart || e.Kind == ArrayStart
}

func (e Event) String() string {
	switch e.Kind {
	case BoolValue:
		return fmt.Sprintf("Bool(%v)", e.Bool)
	case IntValue:
		return fmt.Sprintf("Int(%d)", e.Int)
	case UintValue:
		return fmt.Sprintf("Uint(%d)", e.Uint)
	case FloatValue:
		return "Float(" + strconv.FormatFloat(e.Float, 'g', -1, 64) + ")"
	case TextValue:
		return fmt.Sprintf("Text(%q)", e.Text)
	case Extension:
		return fmt.Sprintf("Extension(%s)", e.Text)
	default:
		return e.Kind.String()
	}
}

// Constructors for scalar events.

func Bool(b bool) Event        { return Event{Kind: BoolValue, Bool: b} }
func Int(v int64) Event        { return Event{Kind: IntValue, Int: v} }
func Uint(v uint64) Event      { return Event{Kind: UintValue, Uint: v} }
func Float(v float64) Event    { return Event{Kind: FloatValue, Float: v} }
func Text(s string) Event      { return Event{Kind: TextValue, Text: s} }
func Null() Event              { return Event{Kind: NullValue} }
func Unknown(raw string) Event { return Event{Kind: Extension, Text: raw} }

// Structural events.
var (
	BeginRecord = Event{Kind: RecordStart}
	EndRecord   = Event{Kind: RecordEnd}
	BeginArray  = Event{Kind: ArrayStart}
	EndArray    = Event{Kind: ArrayEnd}
)

// A Source is a forward-only producer of events, the input to a Cursor.
//
// Next reports the next event in the stream, or io.EOF when the stream is
// exhausted. Any other error indicates a failure to read or tokenize the
// input, and ends the traversal.
//
// Top reports the innermost nesting frame of the event most recently returned
// by Next, or false if that event is not nested inside a record or array.
// Its result is valid only until the next call of Next.
type Source interface {
	Next() (Event, error)
	Top() (Frame, bool)
}

// A Frame describes one level of nesting: either a record field, identified
// by its name, or an array element, identified by its offset.
type Frame struct {
	Key     string // the field name, if !InArray
	Index   int    // the element offset, if InArray
	InArray bool
}

// IsKey reports whether f identifies a record field.
func (f Frame) IsKey() bool { return !f.InArray }

func (f Frame) String() string {
	if f.InArray {
		return fmt.Sprintf("Index(%d)", f.Index)
	}
	return fmt.Sprintf("Key(%q)", f.Key)
}
