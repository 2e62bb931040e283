// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

// This file implements the propertyParser variants dispatched from
// parser.go's parseNodeBody: one per construct that can own nested property
// lines (config/menuconfig, choice, menu, comment). Each only needs to know
// what a given leading keyword means in its own context; the shared
// line-pulling and help-text handling lives in parser.go.

// splitAtIf scans toks for a top-level (paren-depth 0) "if" keyword token
// and splits there, matching the common "VALUE if COND" property shape used
// by default/def_bool/def_tristate/select/imply/range/prompt.
func splitAtIf(toks []token) (value []token, cond []token, hasCond bool) {
	depth := 0
	for i, t := range toks {
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
		case tokKeyword:
			if depth == 0 && t.text == "if" {
				return toks[:i], toks[i+1:], true
			}
		}
	}
	return toks, nil, false
}

func (p *parser) parseCond(toks []token) (*expr, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	return p.parseExprTokens(toks)
}

func operandExpr(p *parser, t token) *expr {
	switch t.kind {
	case tokString:
		return constExpr(t.text)
	case tokConst:
		return constExpr(t.text)
	case tokIdent:
		if _, ok := parseIntBase(t.text, 0); ok {
			return constExpr(t.text)
		}
		return symExpr(p.lookupSymbol(t.text))
	default:
		return constExpr(t.text)
	}
}

func addPrompt(n *MenuNode, text string, cond *expr) {
	n.PromptText = text
	n.PromptCond = cond
}

// ---- config / menuconfig -------------------------------------------------

type symbolPropertyParser struct {
	sym *Symbol
	n   *MenuNode
	p   *parser
}

func (sp symbolPropertyParser) handle(kw string, rest []token, indent int) (bool, error) {
	p := sp.p
	sym := sp.sym
	n := sp.n

	switch kw {
	case "bool", "tristate", "int", "hex", "string":
		sym.Type = typeFromKeyword(kw)
		if len(rest) > 0 && rest[0].kind == tokString {
			value, condToks, _ := splitAtIf(rest)
			cond, err := p.parseCond(condToks)
			if err != nil {
				return false, err
			}
			addPrompt(n, value[0].text, cond)
		}
		return true, nil

	case "def_bool", "def_tristate":
		if kw == "def_bool" {
			sym.Type = TypeBool
		} else {
			sym.Type = TypeTristate
		}
		valueToks, condToks, _ := splitAtIf(rest)
		value, err := p.parseExprTokens(valueToks)
		if err != nil {
			return false, err
		}
		cond, err := p.parseCond(condToks)
		if err != nil {
			return false, err
		}
		sym.Defaults = append(sym.Defaults, defaultEntry{value: value, cond: cond})
		return true, nil

	case "default":
		valueToks, condToks, _ := splitAtIf(rest)
		value, err := p.parseExprTokens(valueToks)
		if err != nil {
			return false, err
		}
		cond, err := p.parseCond(condToks)
		if err != nil {
			return false, err
		}
		sym.Defaults = append(sym.Defaults, defaultEntry{value: value, cond: cond})
		return true, nil

	case "depends":
		cond, err := p.parseDependsOn(rest)
		if err != nil {
			return false, err
		}
		n.Dep = andExpr(n.Dep, cond)
		return true, nil

	case "select", "imply":
		if len(rest) > 0 && rest[0].kind == tokConst {
			// "select n" (or another tristate constant) names no symbol
			// and is ignored.
			return true, nil
		}
		if len(rest) == 0 || rest[0].kind != tokIdent {
			return false, p.failf("%s requires a symbol name", kw)
		}
		target := p.lookupSymbol(rest[0].text)
		_, condToks, _ := splitAtIf(rest[1:])
		cond, err := p.parseCond(condToks)
		if err != nil {
			return false, err
		}
		if kw == "select" {
			sym.Selects = append(sym.Selects, targetEntry{target: target, cond: cond})
		} else {
			sym.Implies = append(sym.Implies, targetEntry{target: target, cond: cond})
		}
		return true, nil

	case "range":
		if len(rest) < 2 {
			return false, p.failf("range requires two bounds")
		}
		low := operandExpr(p, rest[0])
		high := operandExpr(p, rest[1])
		_, condToks, _ := splitAtIf(rest[2:])
		cond, err := p.parseCond(condToks)
		if err != nil {
			return false, err
		}
		sym.Ranges = append(sym.Ranges, rangeEntry{low: low, high: high, cond: cond})
		return true, nil

	case "prompt":
		if len(rest) == 0 || rest[0].kind != tokString {
			return false, p.failf("prompt requires a quoted string")
		}
		_, condToks, _ := splitAtIf(rest[1:])
		cond, err := p.parseCond(condToks)
		if err != nil {
			return false, err
		}
		addPrompt(n, rest[0].text, cond)
		return true, nil

	case "option":
		return true, p.parseOption(sym, rest)

	default:
		return false, nil
	}
}

func (p *parser) parseDependsOn(rest []token) (*expr, error) {
	if len(rest) == 0 || rest[0].kind != tokKeyword || rest[0].text != "on" {
		return nil, p.failf("depends requires \"on\"")
	}
	return p.parseExprTokens(rest[1:])
}

func (p *parser) parseOption(sym *Symbol, rest []token) error {
	if len(rest) == 0 {
		return p.failf("option requires a name")
	}
	switch rest[0].text {
	case "env":
		if len(rest) < 3 || rest[1].kind != tokEqual || rest[2].kind != tokString {
			return p.failf("option env requires a quoted variable name")
		}
		sym.EnvVar = rest[2].text
	case "defconfig_list":
		sym.IsDefconfigList = true
		if p.cfg.defconfigList == nil {
			p.cfg.defconfigList = sym
		} else if p.cfg.defconfigList != sym {
			p.cfg.warnf("option defconfig_list on %s ignored: %s already has it", sym.Name, p.cfg.defconfigList.Name)
		}
	case "modules":
		if sym.Name != "MODULES" {
			p.cfg.warnf("option modules on %s ignored: only MODULES is the modules symbol", sym.Name)
			break
		}
		sym.IsOptionModules = true
		p.cfg.modules = sym
	case "allnoconfig_y":
		sym.IsAllnoconfigY = true
	default:
		if p.cfg.warningsEnabled {
			p.cfg.warnf("unknown option %q on %s", rest[0].text, sym.Name)
		}
	}
	return nil
}

func typeFromKeyword(kw string) SymbolType {
	switch kw {
	case "bool":
		return TypeBool
	case "tristate":
		return TypeTristate
	case "int":
		return TypeInt
	case "hex":
		return TypeHex
	case "string":
		return TypeString
	default:
		return TypeUnknown
	}
}

// ---- choice ---------------------------------------------------------------

type choicePropertyParser struct {
	c *Choice
	n *MenuNode
	p *parser
}

func (cp choicePropertyParser) handle(kw string, rest []token, indent int) (bool, error) {
	p := cp.p
	c := cp.c
	n := cp.n

	switch kw {
	case "bool", "tristate":
		c.Type = typeFromKeyword(kw)
		return true, nil

	case "prompt":
		if len(rest) == 0 || rest[0].kind != tokString {
			return false, p.failf("prompt requires a quoted string")
		}
		_, condToks, _ := splitAtIf(rest[1:])
		cond, err := p.parseCond(condToks)
		if err != nil {
			return false, err
		}
		addPrompt(n, rest[0].text, cond)
		return true, nil

	case "default":
		if len(rest) == 0 || rest[0].kind != tokIdent {
			return false, p.failf("default requires a symbol name")
		}
		target := p.lookupSymbol(rest[0].text)
		_, condToks, _ := splitAtIf(rest[1:])
		cond, err := p.parseCond(condToks)
		if err != nil {
			return false, err
		}
		c.Defaults = append(c.Defaults, targetEntry{target: target, cond: cond})
		return true, nil

	case "optional":
		c.IsOptional = true
		return true, nil

	case "depends":
		cond, err := p.parseDependsOn(rest)
		if err != nil {
			return false, err
		}
		n.Dep = andExpr(n.Dep, cond)
		return true, nil

	default:
		return false, nil
	}
}

// ---- menu -------------------------------------------------------------

type menuPropertyParser struct {
	n *MenuNode
	p *parser
}

func (mp menuPropertyParser) handle(kw string, rest []token, indent int) (bool, error) {
	p := mp.p
	n := mp.n

	switch kw {
	case "depends":
		cond, err := p.parseDependsOn(rest)
		if err != nil {
			return false, err
		}
		n.Dep = andExpr(n.Dep, cond)
		return true, nil

	case "visible":
		if len(rest) == 0 || rest[0].kind != tokKeyword || rest[0].text != "if" {
			return false, p.failf("visible requires \"if\"")
		}
		cond, err := p.parseExprTokens(rest[1:])
		if err != nil {
			return false, err
		}
		n.VisibleIf = andExpr(n.VisibleIf, cond)
		return true, nil

	default:
		return false, nil
	}
}

// ---- comment ------------------------------------------------------------

type commentPropertyParser struct {
	n *MenuNode
	p *parser
}

func (cp commentPropertyParser) handle(kw string, rest []token, indent int) (bool, error) {
	if kw == "depends" {
		cond, err := cp.p.parseDependsOn(rest)
		if err != nil {
			return false, err
		}
		cp.n.Dep = andExpr(cp.n.Dep, cond)
		return true, nil
	}
	return false, nil
}
