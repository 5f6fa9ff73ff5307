// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonsource implements a jstreamer.Source that reads JSON text.
//
// Tokenizing is done by the go-json decoder. The source reports field names
// through its context rather than as events, as jstreamer.Source requires:
//
//	src := jsonsource.New(input)
//	c := jstreamer.NewCursor(src)
//
// The input may contain any number of JSON values in sequence. With the
// AllowComments option, the source accepts JWCC input (JSON with comments and
// trailing commas); this requires the complete input to be read before the
// first event is reported.
package jsonsource

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/jstreamer"
	"github.com/goccy/go-json"
	"github.com/tailscale/hujson"
)

// An Option configures a Source.
type Option func(*options)

type options struct {
	jwcc bool
}

// AllowComments configures the source to accept (true) or reject (false)
// comments and trailing commas in the input.
func AllowComments(ok bool) Option { return func(o *options) { o.jwcc = ok } }

// Source is a jstreamer.Source that reads JSON text from an io.Reader.
type Source struct {
	dec *json.Decoder
	raw *recorder
	stk jstreamer.Stack
	err error // sticky error, reported by Next
}

// New constructs a Source that reads JSON text from r.
func New(r io.Reader, opts ...Option) *Source {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s := new(Source)
	if o.jwcc {
		r, s.err = standardize(r)
	}
	s.raw = &recorder{r: r}
	s.dec = json.NewDecoder(s.raw)
	s.dec.UseNumber()
	return s
}

// NewBytes constructs a Source that reads JSON text from data.
func NewBytes(data []byte, opts ...Option) *Source { return New(bytes.NewReader(data), opts...) }

// standardize reads all of r and converts it from JWCC to standard JSON.
func standardize(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, &SyntaxError{Offset: -1, Message: err.Error(), err: err}
	}
	return bytes.NewReader(std), nil
}

// Next satisfies the jstreamer.Source interface. It returns io.EOF at the end
// of the input, and a *SyntaxError if the input is not valid JSON.
func (s *Source) Next() (jstreamer.Event, error) {
	if s.err != nil {
		return jstreamer.Event{}, s.err
	}
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			if sep, off := s.raw.separators(); sep != "" {
				return s.failAt(off, "unexpected %q at end of input", sep)
			}
			return jstreamer.Event{}, err
		} else if err != nil {
			return s.fail(err, "%v", err)
		}

		// The decoder does not check the commas and colons between tokens.
		sep, off := s.raw.separators()
		s.raw.skipToken()
		if want := s.separator(tok); sep != want {
			if sep != "" {
				return s.failAt(off, "unexpected %q before %s", sep, tokenString(tok))
			}
			return s.failAt(off, "missing %q before %s", want, tokenString(tok))
		}

		// A string in a record awaiting a field name is the name of the next
		// field, and is not reported as an event.
		if key, ok := tok.(string); ok && s.stk.WantKey() {
			if err := s.stk.SetKey(key); err != nil {
				return s.fail(err, "%v", err)
			}
			continue
		}

		e, err := toEvent(tok)
		if err != nil {
			return s.fail(err, "%v", err)
		}
		if err := s.stk.Observe(e); err != nil {
			return s.fail(err, "%v", err)
		}
		return e, nil
	}
}

// Top satisfies the jstreamer.Source interface.
func (s *Source) Top() (jstreamer.Frame, bool) { return s.stk.Top() }

// Path renders the location of the most recent event.
func (s *Source) Path() string { return s.stk.Path() }

// Offset reports the byte offset of the decoder in the input.
func (s *Source) Offset() int64 { return s.dec.InputOffset() }

func (s *Source) fail(err error, msg string, args ...any) (jstreamer.Event, error) {
	s.err = &SyntaxError{
		Offset:  s.dec.InputOffset(),
		Message: fmt.Sprintf(msg, args...),
		err:     err,
	}
	return jstreamer.Event{}, s.err
}

func (s *Source) failAt(offset int64, msg string, args ...any) (jstreamer.Event, error) {
	s.err = &SyntaxError{Offset: offset, Message: fmt.Sprintf(msg, args...)}
	return jstreamer.Event{}, s.err
}

// separator reports the separator that must precede tok in the current state
// of the stack: "," between fields and elements, ":" between a field name and
// its value, and nothing otherwise.
func (s *Source) separator(tok json.Token) string {
	if s.stk.Depth() == 0 {
		return ""
	}
	if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
		return ""
	}
	if s.stk.InArray() || s.stk.WantKey() {
		if s.stk.HasMembers() {
			return ","
		}
		return ""
	}
	return ":"
}

func tokenString(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return string(rune(t))
	case string:
		return strconv.Quote(t)
	}
	return fmt.Sprint(tok)
}

func toEvent(tok json.Token) (jstreamer.Event, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return jstreamer.BeginRecord, nil
		case '}':
			return jstreamer.EndRecord, nil
		case '[':
			return jstreamer.BeginArray, nil
		case ']':
			return jstreamer.EndArray, nil
		}
	case string:
		return jstreamer.Text(t), nil
	case bool:
		return jstreamer.Bool(t), nil
	case nil:
		return jstreamer.Null(), nil
	case json.Number:
		return numberEvent(string(t))
	case float64:
		return jstreamer.Float(t), nil
	}
	return jstreamer.Event{}, fmt.Errorf("unexpected token %v (%T)", tok, tok)
}

// numberEvent classifies the text of a JSON number. Integers are reported as
// signed if they fit in an int64, as unsigned if they fit in a uint64, and
// otherwise as floating-point, as are numbers with a fraction or exponent.
func numberEvent(text string) (jstreamer.Event, error) {
	if !strings.ContainsAny(text, ".eE") {
		if z, err := strconv.ParseInt(text, 10, 64); err == nil {
			return jstreamer.Int(z), nil
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return jstreamer.Uint(u), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return jstreamer.Event{}, fmt.Errorf("invalid number %q", text)
	}
	return jstreamer.Float(f), nil
}

// SyntaxError is the concrete type of errors reported by a Source for input
// that is not valid.
type SyntaxError struct {
	Offset  int64 // byte offset in the input, or -1 if unknown
	Message string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Offset < 0 {
		return "invalid input: " + s.Message
	}
	return fmt.Sprintf("at offset %d: %s", s.Offset, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
