// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package main

import (
	"os"

	"github.com/mattn/go-isatty"
)

// colorEnabled reports whether stdout should get ANSI color/dim output,
// honoring the same NO_COLOR/CLICOLOR/CLICOLOR_FORCE precedence as most
// terminal tooling: an explicit disable wins, then a forced enable, then
// falling back to whether stdout is actually a terminal.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if v := os.Getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

const dimCode = "\x1b[2m"
const resetCode = "\x1b[0m"

// dim wraps s in a dim SGR sequence when color is enabled, used for the
// "<choice>" placeholder name of an anonymous choice in "dump".
func dim(s string) string {
	if !colorEnabled() {
		return s
	}
	return dimCode + s + resetCode
}
