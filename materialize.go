// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer

import "github.com/creachadair/jstreamer/value"

// Materialize consumes the complete value beginning with first from c and
// returns its in-memory representation.
//
// If first cannot begin a value, the cursor reports an anomaly: in strict
// mode Materialize returns an *AnomalyError, otherwise the anomaly is logged
// and the value is value.Null. If the input ends before the value is
// complete, Materialize reports an *IncompleteError; a partial value is never
// returned.
func Materialize(c *Cursor, first Event) (value.Value, error) {
	switch first.Kind {
	case RecordStart:
		r, err := MaterializeRecord(c)
		if err != nil {
			return nil, err
		}
		return r, nil
	case ArrayStart:
		a, err := MaterializeArray(c)
		if err != nil {
			return nil, err
		}
		return a, nil
	case BoolValue:
		return value.Bool(first.Bool), nil
	case IntValue:
		return value.Int(first.Int), nil
	case UintValue:
		return value.Uint(first.Uint), nil
	case FloatValue:
		return value.Float(first.Float), nil
	case TextValue:
		return value.String(first.Text), nil
	case NullValue:
		return value.Null{}, nil
	}
	if err := c.anomaly(first); err != nil {
		return nil, err
	}
	return value.Null{}, nil
}

// MaterializeArray consumes the elements of an array from c through its
// ArrayEnd, and returns them in order.
// Precondition: the ArrayStart of the array has been consumed.
func MaterializeArray(c *Cursor) (value.Array, error) {
	result := value.Array{}
	if err := forEachElement(c, func(v value.Value) error {
		result = append(result, v)
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// MaterializeRecord consumes the fields of a record from c through its
// RecordEnd, and returns them. If a field name occurs more than once, the
// last value wins.
// Precondition: the RecordStart of the record has been consumed.
func MaterializeRecord(c *Cursor) (value.Record, error) {
	result := make(value.Record)
	r := RecordReader{dflt: CopyInto(result)}
	if err := r.Read(c); err != nil {
		return nil, err
	}
	return result, nil
}

// MaterializeNext consumes and returns the next complete value from c. If c
// has no further input, MaterializeNext returns io.EOF.
func MaterializeNext(c *Cursor) (value.Value, error) {
	e, err := c.Next()
	if err != nil {
		return nil, err // including io.EOF
	}
	return Materialize(c, e)
}
