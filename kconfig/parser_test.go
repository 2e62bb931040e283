// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceDirectivePullsInAnotherFile(t *testing.T) {
	dir := t.TempDir()

	sub := "config CHILD\n\tbool \"child\"\n\tdefault y\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Kconfig.child"), []byte(sub), 0o644))

	root := "mainmenu \"test tree\"\n\nconfig PARENT\n\tbool \"parent\"\n\nsource \"Kconfig.child\"\n"
	rootPath := filepath.Join(dir, "Kconfig")
	require.NoError(t, os.WriteFile(rootPath, []byte(root), 0o644))

	cfg, err := New(context.Background(), rootPath, WithSrctree(dir))
	require.NoError(t, err)

	assert.Equal(t, "test tree", cfg.MainmenuText())

	parent := cfg.Symbol("PARENT")
	require.NotNil(t, parent)
	assert.True(t, parent.IsDefined())

	child := cfg.Symbol("CHILD")
	require.NotNil(t, child)
	assert.True(t, child.IsDefined())
	assert.Equal(t, "y", child.Value())

	assert.Len(t, cfg.Symbols(), 2)
}

func TestMenuconfigAutoMenuPromotion(t *testing.T) {
	cfg := parseTestTree(t, `
menuconfig M
	bool "feature M"

config SUB
	bool "sub feature"
	depends on M
`)

	m := cfg.Symbol("M")
	require.NotNil(t, m)
	require.Len(t, m.Nodes, 1)

	mNode := m.Nodes[0]
	require.NotNil(t, mNode.List, "SUB should have been promoted under M's auto-menu")

	sub := cfg.Symbol("SUB")
	require.NotNil(t, sub)
	require.Len(t, sub.Nodes, 1)
	assert.Same(t, mNode, sub.Nodes[0].Parent)
}

func TestIfBlockFlattensDependencyIntoChildren(t *testing.T) {
	cfg := parseTestTree(t, `
config GATE
	bool

if GATE
config INSIDE
	bool "inside"
endif
`)

	gate := cfg.Symbol("GATE")
	inside := cfg.Symbol("INSIDE")

	require.NoError(t, gate.SetValue("n"))
	assert.Equal(t, No, inside.Visibility())

	require.NoError(t, gate.SetValue("y"))
	assert.Equal(t, Yes, inside.Visibility())
}
