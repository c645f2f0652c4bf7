// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tool_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/jinrudals/wake/tool"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.wake")
	require.NoError(t, ioutil.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestCheckPassesOnCleanFile(t *testing.T) {
	path := writeSource(t, "def x = 1\n")
	var stdout, stderr bytes.Buffer
	c := &tool.Cmd{Stdout: &stdout, Stderr: &stderr}
	exitCode := -1
	c.OverrideExit(func(code int) { exitCode = code })
	c.Call("check", path)
	require.Equal(t, -1, exitCode, "clean file should not exit")
}

func TestCheckFailsOnSyntaxError(t *testing.T) {
	path := writeSource(t, "def = \n")
	var stdout, stderr bytes.Buffer
	c := &tool.Cmd{Stdout: &stdout, Stderr: &stderr}
	var exitCode int
	c.OverrideExit(func(code int) { exitCode = code })
	c.Call("check", path)
	require.Equal(t, 1, exitCode)
	require.NotEmpty(t, stdout.String())
}

func TestParseCmdPrintsTree(t *testing.T) {
	path := writeSource(t, "def x = 1\n")
	var stdout, stderr bytes.Buffer
	c := &tool.Cmd{Stdout: &stdout, Stderr: &stderr}
	c.OverrideExit(func(code int) {})
	c.Call("parse", path)
	require.Contains(t, stdout.String(), "Def")
}
