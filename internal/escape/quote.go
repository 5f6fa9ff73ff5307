// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of field names for display in paths.
package escape

import (
	"unicode"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes name as a double-quoted JSON string, escaping quotation
// marks, backslashes, and control characters.
func Quote(name string) string {
	src := mem.S(name)
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
			}
		case r == '\\' || r == '"':
			buf = append(buf, '\\', byte(r))
		case r == utf8.RuneError && n <= 1:
			buf = append(buf, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			buf = append(buf, `\u202`...)
			buf = append(buf, hexDigit[int(r&15)])
		default:
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(max(n, 1))
	}
	return string(append(buf, '"'))
}

// IsName reports whether name can be written bare in a dotted path: it is
// non-empty, begins with a letter or underscore, and contains only letters,
// digits, and underscores.
func IsName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		} else if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
