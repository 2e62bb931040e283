// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolDefaultYes(t *testing.T) {
	cfg := parseTestTree(t, "config FOO\n\tbool\n\tdefault y\n")

	foo := cfg.Symbol("FOO")
	require.NotNil(t, foo)
	assert.Equal(t, "y", foo.Value())
	assert.Equal(t, "CONFIG_FOO=y\n", foo.ConfigString())
}

func TestDependsOnGatesAssignable(t *testing.T) {
	cfg := parseTestTree(t, `
config M
	bool
config S
	tristate
	depends on M
`)

	m := cfg.Symbol("M")
	s := cfg.Symbol("S")

	require.NoError(t, m.SetValue("n"))
	assert.Empty(t, s.Assignable(), "S should not be assignable while M=n")

	require.NoError(t, m.SetValue("y"))
	assert.Equal(t, []Tristate{No, Mod, Yes}, s.Assignable(), "modules on: S assignable should be nmy")
}

func TestDependsOnAssignableModulesOff(t *testing.T) {
	cfg := parseTestTree(t, `
config MODULES
	bool
config M
	bool
config S
	tristate
	depends on M
`)

	require.NoError(t, cfg.Symbol("MODULES").SetValue("n"))
	require.NoError(t, cfg.Symbol("M").SetValue("y"))

	assert.Equal(t, []Tristate{No, Yes}, cfg.Symbol("S").Assignable(), "modules off: S assignable should be ny")
}

func TestIntRangeClampsDefault(t *testing.T) {
	cfg := parseTestTree(t, "config N\n\tint\n\trange 10 20\n\tdefault 5\n")

	n := cfg.Symbol("N")
	assert.Equal(t, "10", n.Value(), "default 5 should clamp up to the range minimum")

	require.NoError(t, n.SetValue("25"))
	assert.Equal(t, "10", n.Value(), "an out-of-range user value falls back to the clamped default")

	require.NoError(t, n.SetValue("15"))
	assert.Equal(t, "15", n.Value())
}

func TestSelectLiftsValue(t *testing.T) {
	cfg := parseTestTree(t, `
config A
	bool
	default y
	select B
config B
	bool
`)

	assert.Equal(t, "y", cfg.Symbol("B").Value())
}

func TestUndefinedSymbolValueIsOwnName(t *testing.T) {
	cfg := parseTestTree(t, "config A\n\tbool\n\tdepends on NEVER_DEFINED\n")
	nd := cfg.Symbol("NEVER_DEFINED")
	require.NotNil(t, nd)
	assert.Equal(t, "NEVER_DEFINED", nd.Value())
	assert.False(t, nd.IsDefined())
}

func TestInvalidationReachesDependents(t *testing.T) {
	cfg := parseTestTree(t, `
config A
	bool
config B
	bool
	default A
`)

	a := cfg.Symbol("A")
	b := cfg.Symbol("B")

	require.NoError(t, a.SetValue("y"))
	assert.Equal(t, "y", b.Value())

	require.NoError(t, a.SetValue("n"))
	assert.Equal(t, "n", b.Value())
}
