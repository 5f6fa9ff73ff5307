// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/creachadair/jstreamer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEventsCmd(cfg *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "events FILE",
		Short: "Print the events of the input with their locations",
		Long: `Print each event of the input on its own line, followed by the path of
the value it belongs to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closer, err := cfg.openInput(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()
			return printEvents(cmd.OutOrStdout(), c, cfg)
		},
	}
}

func printEvents(w io.Writer, c *jstreamer.Cursor, cfg *settings) error {
	var (
		structure = cfg.newColor(color.FgBlue, color.Bold).SprintFunc()
		scalar    = cfg.newColor(color.FgGreen).SprintFunc()
		unknown   = cfg.newColor(color.FgRed).SprintFunc()
		path      = cfg.newColor(color.FgHiBlack).SprintFunc()
	)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	var nevents int
	for {
		e, err := c.Next()
		if err == io.EOF {
			cfg.log.Debug("end of input", "events", nevents)
			return nil
		} else if err != nil {
			return err
		}
		nevents++

		label := e.String()
		switch {
		case e.IsScalar():
			label = scalar(label)
		case e.Kind == jstreamer.Extension:
			label = unknown(label)
		default:
			label = structure(label)
		}
		fmt.Fprintf(bw, "%s %s\n", label, path(c.Path()))
	}
}
