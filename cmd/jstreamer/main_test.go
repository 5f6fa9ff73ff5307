// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jstreamer/value"
	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

// writeFile writes a file with the given content in a temporary directory and
// returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Write %q: %v", name, err)
	}
	return path
}

// run executes the command line and returns its standard output and error.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, log bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&log)
	err = root.Execute()
	return out.String(), log.String(), err
}

func TestEvents(t *testing.T) {
	path := writeFile(t, "in.json", `{"a": [1, "x"], "b": {}}`)
	got, _, err := run(t, "events", "--color", "off", path)
	if err != nil {
		t.Fatalf("events: unexpected error: %v", err)
	}
	const want = `
RecordStart $
ArrayStart $.a
Int(1) $.a[0]
Text("x") $.a[1]
ArrayEnd $.a
RecordStart $.b
RecordEnd $.b
RecordEnd $
`
	if diff := cmp.Diff(strings.TrimSpace(want), strings.TrimSpace(got)); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}
}

func TestEventsColor(t *testing.T) {
	path := writeFile(t, "in.json", `[true]`)
	got, _, err := run(t, "events", "--color", "on", path)
	if err != nil {
		t.Fatalf("events: unexpected error: %v", err)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Output has no color escapes: %q", got)
	}
}

func TestExtract(t *testing.T) {
	in1 := writeFile(t, "one.json", `
{"id": 1, "name": "a", "junk": [1, 2, {"deep": true}]}
{"id": 2}
`)
	in2 := writeFile(t, "two.json", `{"id": 3, "extra": {"name": "nested"}}`)

	got, log, err := run(t, "extract", "-j", "2", "--field", "id,name", in1, in2)
	if err != nil {
		t.Fatalf("extract: unexpected error: %v", err)
	}
	const want = `{"id":1,"name":"a"}
{"id":2}
{"id":3}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}

	// Only the second input never had a "name" field.
	if n := strings.Count(log, "requested field not found"); n != 1 {
		t.Errorf("Got %d warnings, want 1:\n%s", n, log)
	}
	if !strings.Contains(log, "field=name") || !strings.Contains(log, "two.json") {
		t.Errorf("Warning does not name the field and input:\n%s", log)
	}
}

func TestExtractMsgpack(t *testing.T) {
	in := writeFile(t, "in.yaml", "id: 5\ntags: [x, y]\nskip: {a: 1}\n")
	got, _, err := run(t, "extract", "--format", "yaml", "--output", "msgpack", "-f", "id", "-f", "tags", in)
	if err != nil {
		t.Fatalf("extract: unexpected error: %v", err)
	}

	dec := msgpack.NewDecoder(strings.NewReader(got))
	plain, err := dec.DecodeInterface()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, err := value.FromPlain(plain)
	if err != nil {
		t.Fatalf("FromPlain: %v", err)
	}
	want := value.Record{
		"id":   value.Int(5),
		"tags": value.Array{value.String("x"), value.String("y")},
	}
	if !value.Equal(want, v) {
		t.Errorf("Decoded %v, want %v", plain, value.ToPlain(want))
	}
	if _, err := dec.DecodeInterface(); err != io.EOF {
		t.Errorf("Decode after last value: got %v, want EOF", err)
	}
}

func TestEach(t *testing.T) {
	in := writeFile(t, "in.jwcc", `{
  "items": [
    {"name": "a", "price": 5},
    {"name": "b", "price": 15}, // expensive
    {"name": "c", "price": 25, "sale": true},
  ],
}`)
	tests := []struct {
		where string
		want  string
	}{
		{"", `{"name":"a","price":5}
{"name":"b","price":15}
{"name":"c","price":25,"sale":true}
`},
		{"price > 10", `{"name":"b","price":15}
{"name":"c","price":25,"sale":true}
`},
		{`it.sale == true || name == "a"`, `{"name":"a","price":5}
{"name":"c","price":25,"sale":true}
`},
	}
	for _, test := range tests {
		got, _, err := run(t, "each", "--format", "jwcc", "--check", "--field", "items", "--where", test.where, in)
		if err != nil {
			t.Errorf("each --where %q: unexpected error: %v", test.where, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("each --where %q: output (-want, +got):\n%s", test.where, diff)
		}
	}

	if _, _, err := run(t, "each", "--format", "jwcc", "--field", "items", "--where", "price >", in); err == nil {
		t.Error("each with an invalid expression: got nil, want error")
	}
	if _, _, err := run(t, "each", "--format", "jwcc", "--field", "items", in+".missing"); err == nil {
		t.Error("each with a missing input: got nil, want error")
	}
}

func TestConfig(t *testing.T) {
	in := writeFile(t, "in.yaml", "a: !custom value\nb: 1\n")
	cfgPath := writeFile(t, "config.toml", `
format = "yaml"
strict = true
color = "off"
`)

	// The config file selects YAML input and strict mode.
	if _, _, err := run(t, "--config", cfgPath, "extract", "-f", "a", in); err == nil {
		t.Error("extract in strict mode: got nil, want error")
	}

	// A flag overrides the config file.
	got, log, err := run(t, "--config", cfgPath, "--strict=false", "extract", "-f", "a", "-f", "b", in)
	if err != nil {
		t.Fatalf("extract: unexpected error: %v", err)
	}
	if want := `{"a":null,"b":1}` + "\n"; got != want {
		t.Errorf("Output: got %q, want %q", got, want)
	}
	if !strings.Contains(log, "unexpected event in place of a value") {
		t.Errorf("Log does not report the anomaly:\n%s", log)
	}

	bad := writeFile(t, "bad.toml", "colour = \"on\"\n")
	if _, _, err := run(t, "--config", bad, "events", in); err == nil {
		t.Error("Unknown config setting: got nil, want error")
	}
	if _, _, err := run(t, "--format", "xml", "events", in); err == nil {
		t.Error("Unknown format: got nil, want error")
	}
}

func TestMaxDepth(t *testing.T) {
	in := writeFile(t, "deep.json", `{"a": [[[[1]]]]}`)
	if _, _, err := run(t, "--max-depth", "3", "extract", "-f", "a", in); err == nil {
		t.Error("extract beyond max depth: got nil, want error")
	}
	if _, _, err := run(t, "--max-depth", "5", "extract", "-f", "a", in); err != nil {
		t.Errorf("extract within max depth: unexpected error: %v", err)
	}
}
