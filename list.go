// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer

import (
	"fmt"
	"io"
)

// A Key marks the field name of the following value in an EventList.
type Key string

// An EventList is a Source that reports a fixed sequence of events held in
// memory. It is useful for testing handlers, and for replaying events that
// were captured from another source.
type EventList struct {
	items []any
	pos   int
	stk   Stack
}

// NewEventList constructs an EventList that reports the given items in
// order. Each item must be an Event or a Key; a Key gives the field name of
// the next value in the enclosing record and is not itself reported as an
// event. NewEventList panics if an item has any other type.
func NewEventList(items ...any) *EventList {
	for i, item := range items {
		switch item.(type) {
		case Event, Key:
		default:
			panic(fmt.Sprintf("item %d: invalid type %T", i, item))
		}
	}
	return &EventList{items: items}
}

// Next satisfies the Source interface. It reports an error if the events do
// not describe a well-nested structure.
func (l *EventList) Next() (Event, error) {
	for l.pos < len(l.items) {
		item := l.items[l.pos]
		l.pos++
		switch t := item.(type) {
		case Key:
			if err := l.stk.SetKey(string(t)); err != nil {
				return Event{}, fmt.Errorf("item %d: %w", l.pos-1, err)
			}
		case Event:
			if err := l.stk.Observe(t); err != nil {
				return Event{}, fmt.Errorf("item %d: %w", l.pos-1, err)
			}
			return t, nil
		}
	}
	return Event{}, io.EOF
}

// Top satisfies the Source interface.
func (l *EventList) Top() (Frame, bool) { return l.stk.Top() }

// Path renders the location of the most recent event.
func (l *EventList) Path() string { return l.stk.Path() }

// Len reports the number of items not yet consumed.
func (l *EventList) Len() int { return len(l.items) - l.pos }
