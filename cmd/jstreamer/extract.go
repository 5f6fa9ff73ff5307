// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/creachadair/jstreamer"
	"github.com/creachadair/jstreamer/value"
	"github.com/creachadair/mds/mapset"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
)

func newExtractCmd(cfg *settings) *cobra.Command {
	var fields []string
	var output string
	cmd := &cobra.Command{
		Use:   "extract --field NAME... FILE...",
		Short: "Extract selected fields from each top-level record",
		Long: `Read each top-level record of the inputs and print a record containing
only the named fields. Other fields are skipped without being kept in memory.
Outputs are written in the order of the inputs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fields) == 0 {
				return fmt.Errorf("at least one --field is required")
			}
			enc, err := newEncoder(output)
			if err != nil {
				return err
			}
			x := &extractor{cfg: cfg, fields: fields, encode: enc}
			return x.run(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
	cmd.Flags().StringSliceVarP(&fields, "field", "f", nil, "field names to extract (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output encoding (json|msgpack)")
	return cmd
}

// An encoder writes one plain value to w.
type encoder func(w io.Writer, v any) error

func newEncoder(name string) (encoder, error) {
	switch name {
	case "json":
		return func(w io.Writer, v any) error { return json.NewEncoder(w).Encode(v) }, nil
	case "msgpack":
		return func(w io.Writer, v any) error { return msgpack.NewEncoder(w).Encode(v) }, nil
	default:
		return nil, fmt.Errorf("unknown output encoding %q", name)
	}
}

type extractor struct {
	cfg    *settings
	fields []string
	encode encoder
}

// run extracts from each of the named inputs, up to cfg.jobs at a time, and
// writes the results to w in input order.
func (x *extractor) run(ctx context.Context, w io.Writer, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	outs := make([]bytes.Buffer, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(x.cfg.jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := x.file(&outs[i], path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range outs {
		if _, err := outs[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

// file extracts the requested fields from each top-level record of the named
// input, and writes one encoded record per document to buf.
func (x *extractor) file(buf *bytes.Buffer, path string) error {
	c, closer, err := x.cfg.openInput(path)
	if err != nil {
		return err
	}
	defer closer.Close()

	missing := mapset.New(x.fields...)
	var ndocs int
	for {
		out := value.Record{}
		r := jstreamer.NewRecordReader()
		for _, name := range x.fields {
			r.SetHandler(name, jstreamer.CopyInto(out))
		}
		if err := r.ReadDocument(c); err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		ndocs++
		missing.Remove(out.Keys()...)
		if err := x.encode(buf, value.ToPlain(out)); err != nil {
			return err
		}
	}

	log := x.cfg.log.With("input", path)
	log.Debug("extracted", "documents", ndocs)
	if !missing.IsEmpty() {
		names := missing.Slice()
		slices.Sort(names)
		for _, name := range names {
			log.Warn("requested field not found", "field", name)
		}
	}
	return nil
}
