// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceDefaultModeIsModWithoutSelection(t *testing.T) {
	cfg := parseTestTree(t, `
choice
	prompt "pick one"
	tristate

config X
	tristate "X"

config Y
	tristate "Y"
endchoice
`)

	choices := cfg.Choices()
	require.Len(t, choices, 1)
	c := choices[0]

	assert.Equal(t, Mod, c.Value(), "a visible tristate choice with no forced selection defaults to mode m")
	assert.Equal(t, []Tristate{Mod, Yes}, c.Assignable())
	assert.Nil(t, c.Selection(), "mode m has no selected member")
}

func TestChoiceSettingMemberYForcesModeAndSiblingOff(t *testing.T) {
	cfg := parseTestTree(t, `
choice
	prompt "pick one"
	tristate

config X
	tristate "X"

config Y
	tristate "Y"
endchoice
`)

	x := cfg.Symbol("X")
	y := cfg.Symbol("Y")
	c := x.Choice
	require.NotNil(t, c)
	require.Same(t, c, y.Choice)

	require.NoError(t, x.SetValue("y"))

	assert.Equal(t, Yes, c.Value())
	assert.Same(t, x, c.Selection())
	assert.Equal(t, "y", x.Value())
	assert.Equal(t, "n", y.Value(), "selecting X forces the sibling Y off")
}

func TestChoiceDefaultEntryPicksDefaultMember(t *testing.T) {
	cfg := parseTestTree(t, `
choice
	prompt "pick one"
	bool
	default Y

config X
	bool "X"

config Y
	bool "Y"
endchoice
`)

	c := cfg.Choices()[0]
	assert.Equal(t, Yes, c.Value(), "a bool-effective choice is always fully engaged once visible")
	assert.Same(t, cfg.Symbol("Y"), c.Selection())
}

func TestOptionalChoiceAdmitsNoOnlyAtModVisibility(t *testing.T) {
	cfg := parseTestTree(t, `
config GATE
	tristate

choice
	prompt "pick one"
	tristate
	optional
	depends on GATE

config X
	tristate "X"
endchoice
`)

	gate := cfg.Symbol("GATE")
	c := cfg.Choices()[0]

	require.NoError(t, gate.SetValue("m"))
	assert.Equal(t, []Tristate{No, Mod}, c.Assignable(), "optional admits n at the m visibility tier")

	require.NoError(t, gate.SetValue("y"))
	assert.Equal(t, []Tristate{Yes}, c.Assignable(), "optional does not admit n once fully visible, only y")

	require.NoError(t, c.SetMode("n"))
	assert.Equal(t, No, c.Value(), "a mode outside the current tier is still stored and clamped down by visibility")
	assert.Nil(t, c.Selection())
}
