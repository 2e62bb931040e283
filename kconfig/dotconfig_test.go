// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigAppliesAssignmentsAndUnset(t *testing.T) {
	cfg := parseTestTree(t, `
config FOO
	bool "foo"

config BAR
	bool "bar"
	default y

config BAZ
	string "baz"
`)

	dir := t.TempDir()
	path := filepath.Join(dir, ".config")
	content := "CONFIG_FOO=y\n# CONFIG_BAR is not set\nCONFIG_BAZ=\"hello world\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, cfg.LoadConfig(path, true))

	assert.Equal(t, "y", cfg.Symbol("FOO").Value())
	assert.Equal(t, "n", cfg.Symbol("BAR").Value())
	assert.Equal(t, "hello world", cfg.Symbol("BAZ").Value())
}

func TestLoadConfigSkipsUndefinedSymbol(t *testing.T) {
	cfg := parseTestTree(t, "config FOO\n\tbool \"foo\"\n")

	dir := t.TempDir()
	path := filepath.Join(dir, ".config")
	require.NoError(t, os.WriteFile(path, []byte("CONFIG_FOO=y\nCONFIG_GHOST=y\n"), 0o644))

	require.NoError(t, cfg.LoadConfig(path, true))
	assert.Equal(t, "y", cfg.Symbol("FOO").Value())
	assert.Nil(t, cfg.Symbol("GHOST"), "an undefined symbol mentioned only in the .config is never registered")
}

func TestWriteConfigThenLoadRoundTrips(t *testing.T) {
	cfg := parseTestTree(t, `
config FOO
	bool "foo"

config BAR
	tristate "bar"
	depends on FOO

config NAME
	string "name"
	default "unset"
`)

	require.NoError(t, cfg.Symbol("FOO").SetValue("y"))
	require.NoError(t, cfg.Symbol("BAR").SetValue("m"))
	require.NoError(t, cfg.Symbol("NAME").SetValue("picked"))

	dir := t.TempDir()
	path := filepath.Join(dir, ".config")
	require.NoError(t, cfg.WriteConfig(path, ""))

	cfg2 := parseTestTree(t, `
config FOO
	bool "foo"

config BAR
	tristate "bar"
	depends on FOO

config NAME
	string "name"
	default "unset"
`)
	require.NoError(t, cfg2.LoadConfig(path, true))

	assert.Equal(t, "y", cfg2.Symbol("FOO").Value())
	assert.Equal(t, "m", cfg2.Symbol("BAR").Value())
	assert.Equal(t, "picked", cfg2.Symbol("NAME").Value())
}
