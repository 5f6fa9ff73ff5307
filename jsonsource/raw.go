// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonsource

import (
	"io"
	"strings"
)

// A recorder is an io.Reader that keeps the bytes the decoder has read and
// the source has not yet scanned, so that the source can check the
// separators the decoder skips over.
//
// The decoder has always read at least through the end of the token it most
// recently returned, so the text up to that point is available here.
type recorder struct {
	r    io.Reader
	buf  []byte // bytes read and not yet discarded
	pos  int    // scan position in buf
	base int64  // input offset of buf[0]
}

func (t *recorder) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	t.buf = append(t.buf, p[:n]...)
	return n, err
}

// offset reports the input offset of the scan position.
func (t *recorder) offset() int64 { return t.base + int64(t.pos) }

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

// separators advances past whitespace and separators at the scan position,
// and returns the separators in the order found along with the offset of the
// first of them. If there are none, the offset is that of the next token.
func (t *recorder) separators() (string, int64) {
	var seps []byte
	var off int64 = -1
	for t.pos < len(t.buf) {
		b := t.buf[t.pos]
		if b == ',' || b == ':' {
			if off < 0 {
				off = t.offset()
			}
			seps = append(seps, b)
		} else if !isSpace(b) {
			break
		}
		t.pos++
	}
	if off < 0 {
		off = t.offset()
	}
	return string(seps), off
}

// skipToken advances past the token at the scan position, and discards the
// scanned bytes once they make up at least half the buffer.
func (t *recorder) skipToken() {
	if t.pos < len(t.buf) {
		switch t.buf[t.pos] {
		case '{', '}', '[', ']':
			t.pos++
		case '"':
			t.pos++
			for t.pos < len(t.buf) {
				b := t.buf[t.pos]
				t.pos++
				if b == '\\' {
					t.pos++
				} else if b == '"' {
					break
				}
			}
			t.pos = min(t.pos, len(t.buf))
		default:
			for t.pos < len(t.buf) {
				b := t.buf[t.pos]
				if isSpace(b) || strings.IndexByte(`,:[]{}"`, b) >= 0 {
					break
				}
				t.pos++
			}
		}
	}
	if t.pos >= len(t.buf)/2 {
		t.base += int64(t.pos)
		t.buf = t.buf[:copy(t.buf, t.buf[t.pos:])]
		t.pos = 0
	}
}
