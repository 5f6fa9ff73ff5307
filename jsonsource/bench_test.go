// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonsource_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/jstreamer"
	"github.com/creachadair/jstreamer/jsonsource"
	"github.com/goccy/go-json"
)

// benchInput generates a stream of n records, each with a small array field
// and a larger nested field that most readers will skip.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	for i := range n {
		fmt.Fprintf(&buf, `{"id": %d, "name": "record-%d", "tags": ["a", "b", %d.5], `, i, i, i)
		buf.WriteString(`"payload": {"rows": [`)
		for j := range 20 {
			if j > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, `{"k": %d, "v": "value \"%d\"", "ok": true, "x": null}`, j, j)
		}
		buf.WriteString("]}}\n")
	}
	return buf.Bytes()
}

func BenchmarkSource(b *testing.B) {
	input := benchInput(500)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			dec.UseNumber()
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Events", func(b *testing.B) {
		for b.Loop() {
			src := jsonsource.NewBytes(input)
			for {
				_, err := src.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Materialize", func(b *testing.B) {
		for b.Loop() {
			c := jstreamer.NewCursor(jsonsource.NewBytes(input))
			for {
				_, err := jstreamer.MaterializeNext(c)
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("OneField", func(b *testing.B) {
		r := jstreamer.NewRecordReader()
		r.SetHandler("id", jstreamer.HandlerFunc(func(*jstreamer.Cursor, string, jstreamer.Event) error {
			return nil
		}))
		for b.Loop() {
			c := jstreamer.NewCursor(jsonsource.NewBytes(input))
			for {
				err := r.ReadDocument(c)
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})
}
