// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jstreamer reads streams of JSON, JWCC, or YAML documents and
// reports, extracts, or filters their contents without holding more of each
// document in memory than the requested fields.
//
// Usage:
//
//	jstreamer events FILE
//	jstreamer extract --field NAME... FILE...
//	jstreamer each --field NAME [--where EXPR] FILE
//
// A FILE of "-" reads standard input.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := new(settings)
	root := &cobra.Command{
		Use:   "jstreamer",
		Short: "Stream the contents of JSON and YAML documents",
		Long: `Read a stream of JSON, JWCC, or YAML documents one event at a time,
printing the events, extracting selected fields of each top-level record, or
filtering the elements of an array field.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cfg.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Format, "format", "json", "input format (json|jwcc|yaml)")
	pf.IntVar(&cfg.MaxDepth, "max-depth", 0, "maximum nesting depth (0 for the library default)")
	pf.BoolVar(&cfg.Strict, "strict", false, "report unexpected events as errors instead of nulls")
	pf.BoolVar(&cfg.CheckHandlers, "check", false, "verify that each field handler consumes exactly its value")
	pf.StringVar(&cfg.configPath, "config", "", "read default settings from this TOML file")
	pf.StringVar(&cfg.Color, "color", "auto", "colorize output (auto|on|off)")
	pf.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")
	pf.IntVarP(&cfg.jobs, "jobs", "j", 1, "number of input files to read concurrently")

	root.AddCommand(newEventsCmd(cfg), newExtractCmd(cfg), newEachCmd(cfg))
	return root
}
