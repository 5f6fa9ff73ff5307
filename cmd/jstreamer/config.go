// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/jstreamer"
	"github.com/creachadair/jstreamer/jsonsource"
	"github.com/creachadair/jstreamer/yamlsource"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// settings are the options shared by all subcommands. The exported fields may
// also be set by the config file; a flag given on the command line takes
// precedence over the file.
type settings struct {
	MaxDepth      int    `toml:"max_depth"`
	Strict        bool   `toml:"strict"`
	CheckHandlers bool   `toml:"check_handlers"`
	Format        string `toml:"format"`
	Color         string `toml:"color"`

	configPath string
	verbose    bool
	jobs       int

	log      *slog.Logger
	useColor bool
}

// flagNames maps config keys to the flags that override them.
var flagNames = map[string]string{
	"max_depth":      "max-depth",
	"strict":         "strict",
	"check_handlers": "check",
	"format":         "format",
	"color":          "color",
}

// load applies the config file, if any, and checks the resulting settings.
func (s *settings) load(cmd *cobra.Command) error {
	if s.configPath != "" {
		var file settings
		meta, err := toml.DecodeFile(s.configPath, &file)
		if err != nil {
			return fmt.Errorf("%s: failed to parse TOML: %w", s.configPath, err)
		}
		if un := meta.Undecoded(); len(un) != 0 {
			return fmt.Errorf("%s: unknown setting %q", s.configPath, un[0].String())
		}
		flags := cmd.Flags()
		for key, flag := range flagNames {
			if !meta.IsDefined(key) || flags.Changed(flag) {
				continue
			}
			switch key {
			case "max_depth":
				s.MaxDepth = file.MaxDepth
			case "strict":
				s.Strict = file.Strict
			case "check_handlers":
				s.CheckHandlers = file.CheckHandlers
			case "format":
				s.Format = file.Format
			case "color":
				s.Color = file.Color
			}
		}
	}

	switch s.Format {
	case "json", "jwcc", "yaml":
	default:
		return fmt.Errorf("unknown input format %q", s.Format)
	}
	switch s.Color {
	case "on":
		s.useColor = true
	case "off":
		s.useColor = false
	case "auto":
		s.useColor = isTerminal(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unknown color mode %q", s.Color)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth %d", s.MaxDepth)
	}
	s.jobs = max(s.jobs, 1)

	level := slog.LevelInfo
	if s.verbose {
		level = slog.LevelDebug
	}
	s.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	s.log.Debug("settings loaded", "format", s.Format, "max_depth", s.MaxDepth,
		"strict", s.Strict, "check_handlers", s.CheckHandlers, "config", s.configPath)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// newColor returns a color for output, enabled only if the settings allow it.
func (s *settings) newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if s.useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// openInput opens the named input and returns a cursor over its documents.
// The caller must close the returned closer when the cursor is no longer
// needed.
func (s *settings) openInput(path string) (*jstreamer.Cursor, io.Closer, error) {
	r := io.NopCloser(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		r = f
	}

	var src jstreamer.Source
	switch s.Format {
	case "json":
		src = jsonsource.New(r)
	case "jwcc":
		src = jsonsource.New(r, jsonsource.AllowComments(true))
	case "yaml":
		src = yamlsource.New(r)
	}
	c := jstreamer.NewCursor(src)
	if s.MaxDepth > 0 {
		c.SetMaxDepth(s.MaxDepth)
	}
	c.SetStrict(s.Strict)
	c.CheckHandlers(s.CheckHandlers)
	c.SetLogger(s.log.With("input", path))
	return c, r, nil
}
