// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jstreamer/internal/escape"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{`a "b" c`, `"a \"b\" c"`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"nl\n", `"nl\n"`},
		{"\x01", `"\u0001"`},
		{"café", "\"café\""},
		{"\u2028", `"\u2028"`},
		{"bad\xffbyte", `"bad\ufffdbyte"`},
	}
	for _, test := range tests {
		if got := escape.Quote(test.input); got != test.want {
			t.Errorf("Quote(%q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestIsName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"a", true},
		{"_x9", true},
		{"9x", false},
		{"odd key", false},
		{"a.b", false},
		{"été", true},
	}
	for _, test := range tests {
		if got := escape.IsName(test.input); got != test.want {
			t.Errorf("IsName(%q): got %v, want %v", test.input, got, test.want)
		}
	}
}
