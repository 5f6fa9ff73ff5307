// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstreamer_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jstreamer"
)

func TestEventList(t *testing.T) {
	l := jstreamer.NewEventList(
		bRec,
		K("a"), jstreamer.Int(1),
		K("odd key"), bArr,
		jstreamer.Text("x"),
		bRec, K("b"), jstreamer.Null(), eRec,
		bArr, eArr,
		eArr,
		K("c"), bRec, eRec,
		eRec,
	)
	const want = `
RecordStart $ depth=1
Int(1) $.a depth=1
ArrayStart $["odd key"] depth=2
Text("x") $["odd key"][0] depth=2
RecordStart $["odd key"][1] depth=3
Null $["odd key"][1].b depth=3
RecordEnd $["odd key"][1] depth=2
ArrayStart $["odd key"][2] depth=3
ArrayEnd $["odd key"][2] depth=2
ArrayEnd $["odd key"] depth=1
RecordStart $.c depth=2
RecordEnd $.c depth=1
RecordEnd $ depth=0
`
	c := jstreamer.NewCursor(l)
	var sb strings.Builder
	for {
		e, err := c.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next: unexpected error: %v", err)
		}
		fmt.Fprintf(&sb, "%v %s depth=%d\n", e, c.Path(), c.Depth())
	}
	if diff := diffStrings(want, sb.String()); diff != "" {
		t.Errorf("Events: (-want, +got)\n%s", diff)
	}
	if n := l.Len(); n != 0 {
		t.Errorf("Len after EOF: got %d, want 0", n)
	}
}

func TestStackErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []any
		estr  string
	}{
		{"UnbalancedEnd", []any{eRec}, "unbalanced RecordEnd"},
		{"MismatchedEnd", []any{bArr, eRec}, "unexpected RecordEnd"},
		{"KeyInArray", []any{bArr, K("a")}, `field name "a" outside a record`},
		{"KeyAtTop", []any{K("a")}, `field name "a" outside a record`},
		{"MissingKey", []any{bRec, jstreamer.Int(1)}, "Int without a field name"},
		{"DoubleKey", []any{bRec, K("a"), K("b")}, `field name "b" follows a field name`},
		{"DanglingKey", []any{bRec, K("a"), eRec}, "unexpected RecordEnd"},
		{"Invalid", []any{jstreamer.Event{}}, "invalid event"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := jstreamer.NewEventList(test.input...)
			var err error
			for err == nil {
				_, err = l.Next()
			}
			if err == io.EOF {
				t.Fatal("Next: reached EOF without error")
			}
			if got := err.Error(); !strings.HasSuffix(got, test.estr) {
				t.Errorf("Error: got %q, want suffix %q", got, test.estr)
			}
		})
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		frames []jstreamer.Frame
		want   string
	}{
		{nil, "$"},
		{[]jstreamer.Frame{{Key: "a"}}, "$.a"},
		{[]jstreamer.Frame{{Key: "a"}, {InArray: true, Index: 3}, {Key: "b"}}, "$.a[3].b"},
		{[]jstreamer.Frame{{Key: ""}}, `$[""]`},
		{[]jstreamer.Frame{{Key: `say "hi"`}}, `$["say \"hi\""]`},
	}
	for _, test := range tests {
		if got := jstreamer.FormatPath(test.frames); got != test.want {
			t.Errorf("FormatPath(%v): got %q, want %q", test.frames, got, test.want)
		}
	}
}

func TestStackMembers(t *testing.T) {
	var s jstreamer.Stack
	type state struct{ InArray, HasMembers, WantKey bool }
	check := func(label string, want state) {
		t.Helper()
		got := state{s.InArray(), s.HasMembers(), s.WantKey()}
		if got != want {
			t.Errorf("%s: got %+v, want %+v", label, got, want)
		}
	}
	observe := func(e jstreamer.Event) {
		t.Helper()
		if err := s.Observe(e); err != nil {
			t.Fatalf("Observe(%v): unexpected error: %v", e, err)
		}
	}

	check("empty", state{})
	observe(bRec)
	check("new record", state{WantKey: true})
	if err := s.SetKey("a"); err != nil {
		t.Fatalf("SetKey: unexpected error: %v", err)
	}
	check("field name", state{HasMembers: true})
	observe(bArr)
	check("new array", state{InArray: true})
	observe(jstreamer.Int(1))
	check("one element", state{InArray: true, HasMembers: true})
	observe(eArr)
	check("after array", state{HasMembers: true, WantKey: true})
	observe(eRec)
	check("closed", state{})
}
