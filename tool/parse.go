// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tool

import (
	"flag"
	"strings"

	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/parser"
	"github.com/jinrudals/wake/source"
)

// parseCmd parses one file and prints its CST as an indented tree: an
// interior node's kind name, or a leaf's token kind plus its raw
// source text. Diagnostics recovered during parsing print first.
func (c *Cmd) parseCmd(args ...string) {
	flags := flag.NewFlagSet("parse", flag.ExitOnError)
	text := `Parse prints the concrete syntax tree of a single source file.`
	c.Parse(flags, args, text, "parse file")
	if flags.NArg() != 1 {
		flags.Usage()
	}

	file, err := source.Open(flags.Arg(0))
	if file == nil {
		c.Fatal(err)
	}
	diags := diagnostics.NewSink()
	tree := parser.New(file, diags).Parse()
	c.reportDiagnostics(diags)
	dumpElement(c, file, tree.Root(), 0)
}

func dumpElement(c *Cmd, file *source.File, e cst.Element, depth int) {
	if e.Empty() {
		return
	}
	indent := strings.Repeat("  ", depth)
	if e.IsNode() {
		c.Printf("%s%s\n", indent, e.ID())
		child := e.FirstChildElement()
		for !child.Empty() {
			dumpElement(c, file, child, depth+1)
			child = child.NextSiblingElement(e)
		}
		return
	}
	begin, end := e.Span()
	c.Printf("%s%s %q\n", indent, e.ID(), string(file.Bytes[begin:end]))
}
