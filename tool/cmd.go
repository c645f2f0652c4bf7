// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package tool implements the wake front-end command: a driver that
// loads source files, runs them through the lexer/layout/parser/
// desugar pipeline, and reports diagnostics, per spec.md's own note
// that "no CLI, env vars, or persisted state are part of the core:
// those belong to collaborators". Modeled on the teacher's own
// tool.Cmd/Func/commands dispatch pattern (tool/main.go, tool/cmd.go).
package tool

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	golog "log"

	"github.com/jinrudals/wake/config"
	"github.com/jinrudals/wake/log"
)

// Func is the type of a subcommand function.
type Func func(*Cmd, ...string)

// Cmd holds the configuration, flags, and runtime objects needed to
// run a wake subcommand.
type Cmd struct {
	// Config is the project configuration, already resolved by Main
	// from the -config flag (or config.Default() if none applied).
	Config *config.Config

	// ConfigFile overrides config.DefaultPath when set via -config.
	ConfigFile string

	// Commands contains additional invocable subcommands, folded on
	// top of the package's builtin set.
	Commands map[string]Func

	Stdout, Stderr io.Writer
	Log            *log.Logger

	logFlag string
	flags   *flag.FlagSet
	exit    func(int)
}

// Call dispatches directly to the named subcommand, bypassing Main's
// flag parsing and config/logging resolution — useful for embedding
// wake's subcommands in another driver, or for tests that want to
// invoke one without a process exit. Reports whether name was found.
func (c *Cmd) Call(name string, args ...string) bool {
	fn := c.commands()[name]
	if fn == nil {
		return false
	}
	fn(c, args...)
	return true
}

// OverrideExit replaces the function Exit/Fatal/Fatalf call to end the
// command, in place of os.Exit. Tests use this to observe an exit
// code without actually terminating the test binary.
func (c *Cmd) OverrideExit(fn func(int)) { c.exit = fn }

var builtinCommands = map[string]Func{
	"check": (*Cmd).check,
	"parse": (*Cmd).parseCmd,
}

const help = `wake is the wake language front-end's command-line driver.

Usage of wake:
	wake [flags] <command> [args]`

func (c *Cmd) commands() map[string]Func {
	m := make(map[string]Func, len(builtinCommands)+len(c.Commands))
	for name, f := range builtinCommands {
		m[name] = f
	}
	for name, f := range c.Commands {
		m[name] = f
	}
	return m
}

func (c *Cmd) usage(flags *flag.FlagSet) {
	fmt.Fprintln(c.stderr(), help)
	fmt.Fprintln(c.stderr(), "Commands:")
	var names []string
	for name := range c.commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(c.stderr(), "\t"+name)
	}
	fmt.Fprintln(c.stderr(), "Global flags:")
	flags.PrintDefaults()
	c.Exit(2)
}

// Flags initializes and returns the top-level FlagSet; the caller
// parses it (e.g. against os.Args[1:]) before calling Main.
func (c *Cmd) Flags() *flag.FlagSet {
	if c.flags == nil {
		c.flags = flag.NewFlagSet("wake", flag.ExitOnError)
		c.flags.Usage = func() { c.usage(c.flags) }
		c.flags.StringVar(&c.ConfigFile, "config", config.DefaultPath, "path to project config.yaml")
		c.flags.StringVar(&c.logFlag, "log", "info", "log level: off, error, info, debug")
	}
	return c.flags
}

// Main resolves configuration and logging, then dispatches to the
// requested subcommand. The caller must have already parsed Flags().
func (c *Cmd) Main() {
	flags := c.Flags()
	if flags.NArg() == 0 {
		c.usage(flags)
		return
	}

	var level log.Level
	switch c.logFlag {
	case "off":
		level = log.OffLevel
	case "error":
		level = log.ErrorLevel
	case "info":
		level = log.InfoLevel
	case "debug":
		level = log.DebugLevel
	default:
		c.Fatalf("unrecognized log level %q", c.logFlag)
	}
	c.Log = log.New(golog.New(c.stderr(), "wake: ", 0), level)

	cfg, err := config.ParseFile(c.ConfigFile)
	if err != nil {
		c.Fatal(err)
	}
	c.Config = cfg

	name := flags.Arg(0)
	fn := c.commands()[name]
	if fn == nil {
		c.usage(flags)
		return
	}
	fn(c, flags.Args()[1:]...)
}

func (c *Cmd) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *Cmd) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

// Parse parses fs against args, adding the standard -help flag
// (mirroring the teacher's (*Cmd).Parse).
func (c *Cmd) Parse(fs *flag.FlagSet, args []string, helpText, usage string) {
	helpFlag := fs.Bool("help", false, "display subcommand help")
	fs.Usage = func() {
		fmt.Fprintln(c.stderr(), "usage: wake "+usage)
		fmt.Fprintln(c.stderr(), "Flags:")
		fs.PrintDefaults()
		c.Exit(2)
	}
	if err := fs.Parse(args); err != nil {
		c.Fatal(err)
	}
	if *helpFlag {
		fmt.Fprintln(c.stderr(), "usage: wake "+usage)
		fmt.Fprintln(c.stderr())
		fmt.Fprintln(c.stderr(), helpText)
		fmt.Fprintln(c.stderr())
		fmt.Fprintln(c.stderr(), "Flags:")
		fs.PrintDefaults()
		c.Exit(0)
	}
}

// Exit ends the command with code, via the function OverrideExit last
// installed, or os.Exit if none was.
func (c *Cmd) Exit(code int) {
	if c.exit != nil {
		c.exit(code)
		return
	}
	os.Exit(code)
}

// Fatal prints v to stderr and exits 1.
func (c *Cmd) Fatal(v ...interface{}) {
	fmt.Fprintln(c.stderr(), v...)
	c.Exit(1)
}

// Fatalf prints a formatted message to stderr and exits 1.
func (c *Cmd) Fatalf(format string, v ...interface{}) {
	fmt.Fprintf(c.stderr(), format, v...)
	fmt.Fprintln(c.stderr())
	c.Exit(1)
}

// Println prints v to stdout.
func (c *Cmd) Println(v ...interface{}) { fmt.Fprintln(c.stdout(), v...) }

// Printf prints a formatted message to stdout.
func (c *Cmd) Printf(format string, v ...interface{}) { fmt.Fprintf(c.stdout(), format, v...) }
