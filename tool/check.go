// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tool

import (
	"flag"

	"github.com/jinrudals/wake/config"
	"github.com/jinrudals/wake/desugar"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/source"
)

// check loads, parses, and desugars the named files, printing every
// diagnostic produced along the way. It exits 1 if any diagnostic
// reaches the project's configured fail severity, mirroring the
// teacher's own check subcommand (tool/check.go), adapted from
// typechecking modules to running this front end's own pipeline over
// them (this front end has no type checker of its own; spec.md §1
// marks inference as an out-of-scope collaborator).
func (c *Cmd) check(args ...string) {
	flags := flag.NewFlagSet("check", flag.ExitOnError)
	text := `Check parses and desugars the named source files, printing any
diagnostics produced. It exits with code 1 if a diagnostic at or above
the configured fail severity is found.`
	c.Parse(flags, args, text, "check files...")
	if flags.NArg() == 0 {
		flags.Usage()
	}
	if c.Config == nil {
		c.Config = config.Default()
	}

	files, err := loadFiles(flags.Args())
	if err != nil {
		c.Fatal(err)
	}
	diags := diagnostics.NewSink()
	desugar.DesugarTop(files, diags)
	c.reportDiagnostics(diags)

	if diags.HasSeverity(c.Config.Severity()) {
		c.Exit(1)
	}
}

// loadFiles reads each named path into a source.File. A load failure
// (missing file, I/O error) aborts immediately; invalid UTF-8 does
// not, since the lexer surfaces that itself token by token.
func loadFiles(paths []string) ([]*source.File, error) {
	files := make([]*source.File, 0, len(paths))
	for _, p := range paths {
		f, err := source.Open(p)
		if f == nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (c *Cmd) reportDiagnostics(diags *diagnostics.Sink) {
	for _, d := range diags.All() {
		c.Println(d.String())
		if c.Log != nil {
			c.Log.Diagnostic(d)
		}
	}
	if n := len(diags.All()); n > 0 && c.Log != nil {
		c.Log.Debugf("%d diagnostic(s)", n)
	}
}
