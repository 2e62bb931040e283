// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"context"
	"strings"
	"testing"
)

// newTestConfig builds a bare Config suitable for exercising the
// expression/value/visibility engine directly, without going through the
// file parser.
func newTestConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		ctx:             context.Background(),
		configPrefix:    "CONFIG_",
		warningsEnabled: false,
		syms:            map[string]*Symbol{},
		env:             newEnvironment(nil),
	}
}

// parseTestTree parses src as a standalone in-memory Kconfig tree (no
// "source" directives) and runs it through the same finalize/dependents
// passes New does, returning the Config.
func parseTestTree(t *testing.T, src string) *Config {
	t.Helper()

	cfg := &Config{
		ctx:             context.Background(),
		configPrefix:    "CONFIG_",
		warningsEnabled: true,
		undefWarnings:   true,
		syms:            map[string]*Symbol{},
		env:             newEnvironment(nil),
	}

	p := newParser(cfg)
	top := &MenuNode{IsMenu: true}
	p.blocks = []*blockCtx{{node: top}}
	p.readers = []*lineReader{newLineReader(strings.NewReader(src), "<test>")}

	if err := p.run(); err != nil {
		t.Fatalf("parsing test tree: %v", err)
	}
	cfg.topMenu = top

	finalizeTree(cfg, top)
	buildDependentsGraph(cfg)
	return cfg
}
