// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package value defines the in-memory representation of a fully materialized
// document value.
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind identifies the concrete type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota
	BoolKind
	IntKind
	UintKind
	FloatKind
	StringKind
	ArrayKind
	RecordKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	IntKind:    "int",
	UintKind:   "uint",
	FloatKind:  "float",
	StringKind: "string",
	ArrayKind:  "array",
	RecordKind: "record",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[k]
}

// A Value is an arbitrary materialized value. The concrete type is one of
// Null, Bool, Int, Uint, Float, String, Array, or Record.
type Value interface {
	Kind() Kind
}

// Null represents the null constant.
type Null struct{}

// A Bool is a Boolean constant, true or false.
type Bool bool

// An Int is a signed integer value.
type Int int64

// A Uint is an unsigned integer value, used for integers that do not fit in
// an int64.
type Uint uint64

// A Float is a floating-point value.
type Float float64

// A String is a decoded string value.
type String string

// An Array is an ordered sequence of values.
type Array []Value

// A Record is a collection of uniquely-named fields. The order of fields is
// not significant.
type Record map[string]Value

func (Null) Kind() Kind   { return NullKind }
func (Bool) Kind() Kind   { return BoolKind }
func (Int) Kind() Kind    { return IntKind }
func (Uint) Kind() Kind   { return UintKind }
func (Float) Kind() Kind  { return FloatKind }
func (String) Kind() Kind { return StringKind }
func (Array) Kind() Kind  { return ArrayKind }
func (Record) Kind() Kind { return RecordKind }

func (Null) String() string    { return "null" }
func (b Bool) String() string  { return strconv.FormatBool(bool(b)) }
func (z Int) String() string   { return strconv.FormatInt(int64(z), 10) }
func (u Uint) String() string  { return strconv.FormatUint(uint64(u), 10) }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

func (a Array) String() string  { return fmt.Sprintf("Array(len=%d)", len(a)) }
func (r Record) String() string { return fmt.Sprintf("Record(len=%d)", len(r)) }

// Keys returns the field names of r in lexicographic order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether a and b are structurally equal. Numbers of different
// kinds are equal if they denote the same quantity.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Record:
		y, ok := b.(Record)
		if !ok || len(x) != len(y) {
			return false
		}
		for key, xv := range x {
			yv, ok := y[key]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case Int, Uint, Float:
		return numEqual(a, b)
	default:
		return a == b
	}
}

func numEqual(a, b Value) bool {
	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Int:
			return x == y
		case Uint:
			return x >= 0 && uint64(x) == uint64(y)
		case Float:
			return float64(x) == float64(y)
		}
	case Uint:
		switch y := b.(type) {
		case Int:
			return numEqual(b, a)
		case Uint:
			return x == y
		case Float:
			return float64(x) == float64(y)
		}
	case Float:
		switch y := b.(type) {
		case Int, Uint:
			return numEqual(b, a)
		case Float:
			return x == y || (math.IsNaN(float64(x)) && math.IsNaN(float64(y)))
		}
	}
	return false
}
