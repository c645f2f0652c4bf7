// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Command wake is the command-line driver for the wake language
// front end: lexing, layout filtering, parsing, and desugaring of
// source files into diagnostics and a package tree, with no type
// checker or evaluator of its own.
package main

import (
	"os"

	"github.com/jinrudals/wake/tool"
)

func main() {
	cmd := &tool.Cmd{}
	cmd.Flags().Parse(os.Args[1:])
	cmd.Main()
}
