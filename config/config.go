// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package config defines the wake CLI driver's project configuration:
// a YAML-backed file at `.wake/config.yaml` naming the package search
// path roots and the diagnostic severity at which the driver's exit
// code turns non-zero. None of the front-end packages (lexer, layout,
// cst, parser, ast, desugar) read this file themselves; they operate
// only on explicit arguments, so config stays a pure driver concern,
// mirroring how the teacher's own config package sits above (never
// inside) its evaluation engine.
package config

import (
	"io/ioutil"
	"os"

	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/wakeerrors"
	yaml "gopkg.in/yaml.v2"
)

// DefaultPath is where the driver looks for a project config file
// when none is given explicitly on the command line.
const DefaultPath = ".wake/config.yaml"

// Config is the parsed contents of a project's config.yaml.
type Config struct {
	// Roots lists the directories searched for `package NAME` source
	// files, in search order. An empty Roots searches the working
	// directory only.
	Roots []string `yaml:"roots,omitempty"`

	// FailSeverity is the lowest diagnostics.Severity that makes the
	// driver exit non-zero. "error" (the zero value once resolved) by
	// default; "warning" makes warnings fail the build too.
	FailSeverity string `yaml:"fail_severity,omitempty"`
}

// Default returns a Config with the same defaults ParseFile falls
// back to for a missing file: no extra search roots, ERROR-severity
// failure.
func Default() *Config {
	return &Config{FailSeverity: "error"}
}

// Severity resolves FailSeverity into a diagnostics.Severity, "error"
// (including an empty/unrecognised string, so a config typo degrades
// safely rather than silently disabling the failure check) otherwise.
func (c *Config) Severity() diagnostics.Severity {
	switch c.FailSeverity {
	case "warning":
		return diagnostics.WARNING
	case "info":
		return diagnostics.INFO
	default:
		return diagnostics.ERROR
	}
}

// Parse parses a Config from YAML-formatted bytes.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, wakeerrors.E("config.Parse", wakeerrors.Invalid, err)
	}
	return cfg, nil
}

// ParseFile reads and parses the config at filename. A missing file
// is not an error: it yields Default(), since a project need not
// carry a config.yaml at all to be buildable.
func ParseFile(filename string) (*Config, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, wakeerrors.E("config.ParseFile", filename, err)
	}
	return Parse(b)
}

// Marshal renders cfg back to YAML, e.g. for a `wake config init`
// subcommand to write a starter file.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
