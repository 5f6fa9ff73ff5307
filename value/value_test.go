// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value_test

import (
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jstreamer/value"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b value.Value
		want bool
	}{
		{value.Null{}, value.Null{}, true},
		{value.Null{}, value.Bool(false), false},
		{value.Bool(true), value.Bool(true), true},
		{value.String("a"), value.String("a"), true},
		{value.String("a"), value.String("b"), false},
		{value.Int(3), value.Float(3), true},
		{value.Float(3), value.Int(3), true},
		{value.Int(3), value.Uint(3), true},
		{value.Uint(3), value.Float(3.5), false},
		{value.Float(2), value.Uint(2), true},
		{value.Int(-1), value.Uint(math.MaxUint64), false},
		{value.Float(math.NaN()), value.Float(math.NaN()), true},
		{value.Array{value.Int(1), value.Int(2)}, value.Array{value.Int(1), value.Int(2)}, true},
		{value.Array{value.Int(1)}, value.Array{value.Int(1), value.Int(2)}, false},
		{value.Array{}, value.Record{}, false},
		{
			value.Record{"a": value.Record{"b": value.Array{value.Int(1)}}},
			value.Record{"a": value.Record{"b": value.Array{value.Float(1)}}},
			true,
		},
		{value.Record{"a": value.Null{}}, value.Record{"b": value.Null{}}, false},
	}
	for _, test := range tests {
		if got := value.Equal(test.a, test.b); got != test.want {
			t.Errorf("Equal(%v, %v): got %v, want %v", test.a, test.b, got, test.want)
		}
	}
}

func TestPlain(t *testing.T) {
	const input = `{"a": [1, -2, 2.5, "x", true, null], "b": {"c": 18446744073709551615}}`
	var plain any
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	if err := dec.Decode(&plain); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, err := value.FromPlain(plain)
	if err != nil {
		t.Fatalf("FromPlain: %v", err)
	}
	want := value.Record{
		"a": value.Array{
			value.Int(1), value.Int(-2), value.Float(2.5),
			value.String("x"), value.Bool(true), value.Null{},
		},
		"b": value.Record{"c": value.Uint(math.MaxUint64)},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("FromPlain (-want, +got):\n%s", diff)
	}

	back := value.ToPlain(v)
	wantPlain := map[string]any{
		"a": []any{int64(1), int64(-2), 2.5, "x", true, nil},
		"b": map[string]any{"c": uint64(math.MaxUint64)},
	}
	if diff := cmp.Diff(wantPlain, back); diff != "" {
		t.Errorf("ToPlain (-want, +got):\n%s", diff)
	}
}

func TestFromPlainErrors(t *testing.T) {
	for _, bad := range []any{
		struct{}{},
		[]any{1, make(chan int)},
		map[string]any{"x": func() {}},
	} {
		if v, err := value.FromPlain(bad); err == nil {
			t.Errorf("FromPlain(%T): got %v, want error", bad, v)
		}
	}
}

func TestRecordKeys(t *testing.T) {
	r := value.Record{"c": value.Null{}, "a": value.Int(1), "b": value.Bool(false)}
	if diff := cmp.Diff([]string{"a", "b", "c"}, r.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
}
