// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/creachadair/jstreamer"
	"github.com/creachadair/jstreamer/value"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newEachCmd(cfg *settings) *cobra.Command {
	var field, where string
	cmd := &cobra.Command{
		Use:   "each --field NAME [--where EXPR] FILE",
		Short: "Print the elements of an array field one at a time",
		Long: `Read each top-level record of the input and print the elements of the
array in the named field as JSON, one per line. Only one element is held in
memory at a time.

If --where is given, only elements for which the expression is true are
printed. The element is bound to "it", and if the element is a record, its
fields are also bound by name:

   jstreamer each --field items --where 'price > 10 && it.tags != nil' input.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if field == "" {
				return fmt.Errorf("a --field is required")
			}
			f, err := newFilter(where)
			if err != nil {
				return err
			}
			c, closer, err := cfg.openInput(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			bw := bufio.NewWriter(cmd.OutOrStdout())
			defer bw.Flush()
			n, err := eachElement(c, field, f, bw)
			cfg.log.Debug("each complete", "field", field, "printed", n)
			return err
		},
	}
	cmd.Flags().StringVarP(&field, "field", "f", "", "name of the array field")
	cmd.Flags().StringVarP(&where, "where", "w", "", "print only elements satisfying this expression")
	return cmd
}

// A filter reports whether an element should be printed. A nil filter
// accepts every element.
type filter struct {
	prog *vm.Program
}

func newFilter(src string) (*filter, error) {
	if src == "" {
		return nil, nil
	}
	prog, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}
	return &filter{prog: prog}, nil
}

func (f *filter) match(elt any) (bool, error) {
	if f == nil {
		return true, nil
	}
	env := map[string]any{}
	if rec, ok := elt.(map[string]any); ok {
		for key, v := range rec {
			env[key] = v
		}
	}
	env["it"] = elt
	out, err := expr.Run(f.prog, env)
	if err != nil {
		return false, err
	}
	ok, _ := out.(bool)
	return ok, nil
}

// eachElement prints the elements of the named array field of each top-level
// record read from c that satisfy f, and reports how many were printed.
func eachElement(c *jstreamer.Cursor, field string, f *filter, w io.Writer) (int, error) {
	var nprinted, index int
	enc := json.NewEncoder(w)

	r := jstreamer.NewRecordReader()
	r.SetHandler(field, jstreamer.ForEachElement(func(v value.Value) error {
		defer func() { index++ }()
		elt := value.ToPlain(v)
		ok, err := f.match(elt)
		if err != nil {
			return fmt.Errorf("element %d: %w", index, err)
		} else if !ok {
			return nil
		}
		nprinted++
		return enc.Encode(elt)
	}))
	for {
		if err := r.ReadDocument(c); err == io.EOF {
			return nprinted, nil
		} else if err != nil {
			return nprinted, err
		}
		index = 0
	}
}
