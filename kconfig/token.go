// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

// tokenKind classifies a single lexed token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokKeyword
	tokIdent
	tokString
	tokConst // the tristate literals "n", "m", "y"
	tokAnd   // &&
	tokOr    // ||
	tokNot   // !
	tokEqual
	tokUnequal
	tokLess
	tokLessEqual
	tokGreater
	tokGreaterEqual
	tokLParen
	tokRParen
)

// token is one element of the sequence produced by lexLine for a single
// logical (continuation-joined) Kconfig line.
type token struct {
	kind tokenKind
	text string
}

// keywords is the full reserved-word table. A line's first
// token must name one of these or the line is rejected.
var keywords = map[string]bool{
	"config": true, "menu": true, "endmenu": true, "if": true, "endif": true,
	"choice": true, "endchoice": true, "source": true, "comment": true,
	"mainmenu": true, "bool": true, "tristate": true, "int": true, "hex": true,
	"string": true, "def_bool": true, "def_tristate": true, "default": true,
	"depends": true, "on": true, "select": true, "imply": true, "range": true,
	"prompt": true, "help": true, "option": true, "env": true,
	"defconfig_list": true, "modules": true, "allnoconfig_y": true,
	"optional": true, "visible": true, "menuconfig": true,
}

func isIdentByte(b byte) bool {
	return b == '.' || b == '/' || b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
