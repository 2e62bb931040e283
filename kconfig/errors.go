// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import "fmt"

// SyntaxError is returned by New when a Kconfig source file violates
// Kconfig grammar: an unknown keyword, a malformed expression, or a
// dangling if/endif, choice/endchoice, menu/endmenu. An unterminated quoted
// string is not reported: the lexer takes the rest of the line as the
// string's text.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// IOError wraps a failure to open, read, or write a file referenced by a
// Kconfig tree: the top-level file passed to New, a "source" directive
// target, or a .config file passed to LoadConfig/WriteConfig.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ValueError is returned by Symbol.SetValue for a bool/tristate value other
// than "n", "m" or "y", by Choice.SetMode for a mode other than those three,
// and by Choice.SetSelection for a symbol that is not a member. A value
// outside the current assignable set, or an int/hex value that fails to
// parse or lies outside an active range, is stored without a ValueError.
type ValueError struct {
	Symbol string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%q is not a valid value for %s: %s", e.Value, e.Symbol, e.Reason)
}
