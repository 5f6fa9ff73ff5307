// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"strconv"
)

// ToPlain converts v into a tree of plain Go values: nil, bool, int64,
// uint64, float64, string, []any, and map[string]any.
func ToPlain(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(t)
	case Int:
		return int64(t)
	case Uint:
		return uint64(t)
	case Float:
		return float64(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = ToPlain(elt)
		}
		return out
	case Record:
		out := make(map[string]any, len(t))
		for key, elt := range t {
			out[key] = ToPlain(elt)
		}
		return out
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

// A number is the interface satisfied by textual number types such as
// json.Number.
type number interface {
	String() string
	Int64() (int64, error)
	Float64() (float64, error)
}

// FromPlain converts a tree of plain Go values into a Value. It accepts the
// types produced by ToPlain, other sized integer and float types, textual
// numbers (json.Number), and values that already implement Value.
func FromPlain(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(t), nil
	case int8:
		return Int(t), nil
	case int16:
		return Int(t), nil
	case int32:
		return Int(t), nil
	case int64:
		return Int(t), nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint8:
		return Int(t), nil
	case uint16:
		return Int(t), nil
	case uint32:
		return Int(t), nil
	case uint64:
		return fromUint(t), nil
	case float32:
		return Float(t), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case number:
		return parseNumber(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			ev, err := FromPlain(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		out := make(Record, len(t))
		for key, elt := range t {
			ev, err := FromPlain(elt)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			out[key] = ev
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

func fromUint(u uint64) Value {
	if u <= 1<<63-1 {
		return Int(u)
	}
	return Uint(u)
}

// parseNumber classifies a textual number the way sources do: an int64 if it
// fits, otherwise a uint64 if it fits, otherwise a float64.
func parseNumber(n number) (Value, error) {
	if z, err := n.Int64(); err == nil {
		return Int(z), nil
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return Uint(u), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", n.String(), err)
	}
	return Float(f), nil
}
