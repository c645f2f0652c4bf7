// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package config_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/jinrudals/wake/config"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.Empty(t, cfg.Roots)
	require.Equal(t, diagnostics.ERROR, cfg.Severity())
}

func TestParseRootsAndSeverity(t *testing.T) {
	cfg, err := config.Parse([]byte("roots:\n  - src\n  - vendor/wake\nfail_severity: warning\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"src", "vendor/wake"}, cfg.Roots)
	require.Equal(t, diagnostics.WARNING, cfg.Severity())
}

func TestParseUnknownSeverityFallsBackToError(t *testing.T) {
	cfg, err := config.Parse([]byte("fail_severity: bogus\n"))
	require.NoError(t, err)
	require.Equal(t, diagnostics.ERROR, cfg.Severity())
}

func TestParseFileMissingYieldsDefault(t *testing.T) {
	cfg, err := config.ParseFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestParseFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	want := &config.Config{Roots: []string{"a", "b"}, FailSeverity: "info"}
	b, err := config.Marshal(want)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(path, b, 0o644))

	got, err := config.ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestParseFilePropagatesReadError(t *testing.T) {
	dir := t.TempDir()
	// A directory can't be opened as a config file; ParseFile should
	// surface that as an error rather than silently defaulting, since
	// it isn't the "file does not exist" case Default() is meant for.
	_, err := config.ParseFile(dir)
	require.Error(t, err)
}
