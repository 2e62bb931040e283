// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"strconv"
	"strings"
)

// SymbolType is the declared type of a Symbol: the type keyword (or
// def_bool/def_tristate shorthand) used in its "config" block.
type SymbolType int

const (
	TypeUnknown SymbolType = iota
	TypeBool
	TypeTristate
	TypeInt
	TypeHex
	TypeString
)

func (t SymbolType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeTristate:
		return "tristate"
	case TypeInt:
		return "int"
	case TypeHex:
		return "hex"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// defaultEntry is one "default VALUE [if COND]" (or def_bool/def_tristate
// shorthand) attached to a symbol node. value is itself an expr: for
// bool/tristate symbols it is a boolean expression; for int/hex/string
// symbols it is a single symbol reference or constant whose string value is
// used verbatim.
type defaultEntry struct {
	value *expr
	cond  *expr
}

// targetEntry is one "select TARGET [if COND]" or "imply TARGET [if COND]".
type targetEntry struct {
	target *Symbol
	cond   *expr
}

// rangeEntry is one "range LOW HIGH [if COND]" on an int/hex symbol.
type rangeEntry struct {
	low, high *expr
	cond      *expr
}

// Symbol is a single configuration item: the target of a "config" block
// and/or an automatically materialized placeholder for a name referenced
// but never declared (type TypeUnknown).
type Symbol struct {
	cfg  *Config
	Name string
	Type SymbolType

	// Nodes lists every menu node that declares this symbol; a symbol
	// sourced from more than one "config NAME" block across the tree has
	// one entry per occurrence, in parse order.
	Nodes []*MenuNode

	Defaults []defaultEntry
	Selects  []targetEntry
	Implies  []targetEntry
	Ranges   []rangeEntry

	// RevDep and WeakRevDep accumulate, respectively, the OR of "this
	// select's condition AND the selecting symbol's own condition" and the
	// equivalent for imply, across every symbol that selects/implies this
	// one. Both start life as the explicit constant "n" (never nil): OR
	// accumulation needs an "n" identity element, and nil means "y" for
	// AND/condition purposes, so nil would be the wrong starting point.
	RevDep     *expr
	WeakRevDep *expr

	// DirectDeps is the OR, across every node that defines this symbol, of
	// that node's EffectiveDep (its own "depends on" AND'd with every
	// enclosing menu/if/choice condition) -- the symbol is reachable if any
	// one of its definition sites is. Built once during finalize.
	DirectDeps *expr

	UserValue string // "" means unset
	Choice    *Choice

	IsAllnoconfigY  bool
	EnvVar          string
	IsOptionModules bool
	IsDefconfigList bool

	directDependents   map[*Symbol]bool
	dependentsComputed bool
	cachedDependents   []*Symbol

	valValid     bool
	cachedVal    string
	visValid     bool
	cachedVis    Tristate
	assignValid  bool
	cachedAssign []Tristate

	writeToConf bool
}

// String returns the symbol's name, so that %v/%s formatting of a *Symbol
// in logs and error messages reads naturally.
func (s *Symbol) String() string {
	return s.Name
}

// EffectiveType is Type, promoted from TypeTristate to TypeBool when the
// symbol belongs to a choice currently in mode "y", or when the MODULES
// symbol is off. Several value/assignable rules consult this promoted type
// rather than the raw declared Type.
func (s *Symbol) EffectiveType() SymbolType {
	if s.Type == TypeTristate {
		if s.Choice != nil && s.Choice.Value() == Yes {
			return TypeBool
		}
		if s.cfg.modulesValue() == No {
			return TypeBool
		}
	}
	return s.Type
}

// IsDefined reports whether at least one "config NAME" block declared this
// symbol, as opposed to it existing only as a reference.
func (s *Symbol) IsDefined() bool {
	return len(s.Nodes) > 0
}

func (s *Symbol) invalidate() {
	s.valValid = false
	s.visValid = false
	s.assignValid = false
}

// Value returns the symbol's current value as a string: "n"/"m"/"y" for
// bool/tristate symbols, a canonical decimal or "0x..."-prefixed string for
// int/hex, the literal string for string symbols, and the symbol's own name
// for an undefined (TypeUnknown) symbol.
func (s *Symbol) Value() string {
	if s.valValid {
		return s.cachedVal
	}

	var val string
	switch s.Type {
	case TypeUnknown:
		val = s.Name

	case TypeString:
		val = s.computeStringValue()

	case TypeInt, TypeHex:
		val = s.computeNumericValue()

	default: // TypeBool, TypeTristate
		if s.Choice != nil {
			val = string(s.choiceMemberValue())
		} else {
			val = string(s.computeTristateValue())
		}
	}

	s.cachedVal = val
	s.valValid = true
	return val
}

// computeTristateValue computes the value of a bool/tristate symbol that is
// not a choice member.
func (s *Symbol) computeTristateValue() Tristate {
	vis := s.Visibility()
	s.writeToConf = vis != No

	var val Tristate
	if vis != No && s.UserValue != "" {
		// An explicit user value always wins once visible, clamped to the
		// current visibility -- including a deliberate "n" override of a
		// "default y", which must not fall through to the defaults scan
		// below.
		val = minTri(Tristate(s.UserValue), vis)
	} else {
		val = No
		for _, d := range s.Defaults {
			if eval(d.cond) != No {
				val = minTri(Tristate(exprValueString(d.value)), eval(d.cond))
				s.writeToConf = true
				break
			}
		}
	}

	if eval(s.DirectDeps) != No {
		val = maxTri(val, eval(s.WeakRevDep))
	}

	rd := eval(s.RevDep)
	if rd != No {
		val = maxTri(val, rd)
		s.writeToConf = true
	}

	if val == Mod {
		if s.EffectiveType() == TypeBool || eval(s.WeakRevDep) == Yes {
			val = Yes
		}
	}

	return val
}

// choiceMemberValue computes the value of a bool/tristate symbol that
// belongs to a choice.
func (s *Symbol) choiceMemberValue() Tristate {
	c := s.Choice
	vis := s.Visibility()
	s.writeToConf = vis != No
	if vis == No || c.Value() == No {
		return No
	}
	if c.Value() == Yes {
		if c.Selection() == s {
			return Yes
		}
		return No
	}
	// mode == Mod
	if s.UserValue == "m" || s.UserValue == "y" {
		return Mod
	}
	return No
}

func (s *Symbol) computeStringValue() string {
	vis := s.Visibility()
	s.writeToConf = vis != No
	if vis != No && s.UserValue != "" {
		return s.UserValue
	}
	for _, d := range s.Defaults {
		if eval(d.cond) != No {
			s.writeToConf = true
			return exprValueString(d.value)
		}
	}
	return ""
}

func (s *Symbol) computeNumericValue() string {
	vis := s.Visibility()
	s.writeToConf = vis != No

	base := 10
	if s.Type == TypeHex {
		base = 16
	}

	var activeLow, activeHigh *int64
	for _, r := range s.Ranges {
		if eval(r.cond) != No {
			lo, okLo := parseIntBase(exprValueString(r.low), base)
			hi, okHi := parseIntBase(exprValueString(r.high), base)
			if okLo && okHi {
				activeLow, activeHigh = &lo, &hi
			}
			break
		}
	}

	if vis != No && s.UserValue != "" {
		if n, ok := parseIntBase(s.UserValue, base); ok {
			if activeLow == nil || (n >= *activeLow && n <= *activeHigh) {
				return canonicalNumeric(n, s.Type)
			}
		}
	}

	for _, d := range s.Defaults {
		if eval(d.cond) != No {
			s.writeToConf = true
			v := exprValueString(d.value)
			if n, ok := parseIntBase(v, base); ok {
				if activeLow != nil {
					if n < *activeLow {
						n = *activeLow
					} else if n > *activeHigh {
						n = *activeHigh
					}
				}
				return canonicalNumeric(n, s.Type)
			}
			return v
		}
	}

	if activeLow != nil && *activeLow > 0 {
		return canonicalNumeric(*activeLow, s.Type)
	}

	return ""
}

func canonicalNumeric(n int64, t SymbolType) string {
	if t == TypeHex {
		if n < 0 {
			return "-0x" + strconv.FormatInt(-n, 16)
		}
		return "0x" + strconv.FormatInt(n, 16)
	}
	return strconv.FormatInt(n, 10)
}

// exprValueString extracts the plain string value of an expr used as a
// non-boolean default/range bound: a symbol reference contributes its own
// Value(), a bare constant contributes its literal text, and (defensively)
// any compound boolean expr falls back to its tristate evaluation.
func exprValueString(e *expr) string {
	if e == nil {
		return ""
	}
	switch e.tag {
	case exprSymbol:
		return e.sym.Value()
	case exprConst:
		return e.str
	default:
		return string(eval(e))
	}
}

// Visibility returns the symbol's visibility: the max,
// across every declaring node's own prompt condition (AND'd with that
// node's finalized tree visibility), in the n < m < y order; a final "m" is
// promoted to "y" when the effective type is not tristate, or when modules
// are off.
func (s *Symbol) Visibility() Tristate {
	if s.visValid {
		return s.cachedVis
	}

	vis := computeNodeVisibility(s.Nodes)

	if s.Choice != nil {
		cv := s.Choice.Visibility()
		if s.Type != TypeTristate {
			if s.Choice.Value() != Yes {
				vis = No
			}
		} else if vis == Mod && s.Choice.Value() == Yes {
			vis = No
		}
		vis = minTri(vis, cv)
	}

	if vis == Mod && s.EffectiveType() != TypeTristate {
		vis = Yes
	}

	s.cachedVis = vis
	s.visValid = true
	return vis
}

// computeNodeVisibility is the generic "max over prompt conditions, each
// AND'd with the node's own finalized dependency visibility" computation
// shared by Symbol.Visibility and Choice.Visibility. A symbol/choice that
// never registers an explicit prompt at any of its nodes (a bare type
// declaration used only as a default/select/imply target) falls back to
// its bare dependency chain instead of being permanently invisible: its
// "prompt" is implicitly always-true, narrowed only by "depends on".
func computeNodeVisibility(nodes []*MenuNode) Tristate {
	anyPrompt := false
	for _, n := range nodes {
		if n.PromptText != "" {
			anyPrompt = true
			break
		}
	}

	vis := No
	for _, n := range nodes {
		switch {
		case n.PromptText != "":
			vis = maxTri(vis, minTri(eval(n.PromptCond), n.visibility()))
		case !anyPrompt:
			vis = maxTri(vis, n.visibility())
		}
	}
	return vis
}

// Assignable returns the ordered subsequence of "nmy" the symbol's
// UserValue may currently be set to.
func (s *Symbol) Assignable() []Tristate {
	if s.assignValid {
		return s.cachedAssign
	}

	var out []Tristate
	vis := s.Visibility()
	rd := eval(s.RevDep)
	boolish := s.EffectiveType() == TypeBool || eval(s.WeakRevDep) == Yes

	switch vis {
	case No:
		// empty

	case Yes:
		switch rd {
		case No:
			if boolish {
				out = []Tristate{No, Yes}
			} else {
				out = []Tristate{No, Mod, Yes}
			}
		case Mod:
			if boolish {
				out = []Tristate{Yes}
			} else {
				out = []Tristate{Mod, Yes}
			}
		default: // Yes
			out = []Tristate{Yes}
		}

	case Mod:
		switch rd {
		case No:
			if !boolish {
				out = []Tristate{Mod}
			} else {
				out = []Tristate{Yes}
			}
		case Yes:
			out = []Tristate{Yes}
		default: // Mod
			out = []Tristate{Mod}
		}
	}

	s.cachedAssign = out
	s.assignValid = true
	return out
}

// DependsOn renders the symbol's own accumulated dependency condition (the
// "depends on" of every declaring node, OR'd together since any one node
// being reachable is enough) back into Kconfig expression syntax. Returns
// "y" for a symbol with no dependency at all. Used to explain an
// out-of-visibility assignment warning in SetValue.
func (s *Symbol) DependsOn() string {
	var dep *expr
	first := true
	for _, n := range s.Nodes {
		if first {
			dep = n.EffectiveDep
			first = false
			continue
		}
		dep = &expr{tag: exprOr, x: dep, y: n.EffectiveDep}
	}
	return exprString(dep)
}

func assignableContains(set []Tristate, v Tristate) bool {
	for _, t := range set {
		if t == v {
			return true
		}
	}
	return false
}

func minTri(a, b Tristate) Tristate {
	if a.rank() < b.rank() {
		return a
	}
	return b
}

func maxTri(a, b Tristate) Tristate {
	if a.rank() > b.rank() {
		return a
	}
	return b
}

// SetValue assigns a new user value to the symbol. For bool/tristate the
// string must be "n", "m", or "y", and is always stored even when it falls
// outside Assignable() for the symbol's current visibility -- computeTristate
// Value's min(user_value, visibility) clamps it at read time, and a warning
// is logged rather than the assignment being refused, since visibility can
// change afterward and make the same value assignable again (e.g. loading a
// .config whose lines are not in dependency order). For int/hex/string any
// string is accepted at this layer (numeric parsing and range clamping
// happen lazily in Value()). An empty string clears the user value. Returns
// a *ValueError only for a bool/tristate token that isn't "n", "m", or "y".
func (s *Symbol) SetValue(v string) error {
	if v == "" {
		s.UserValue = ""
		s.cfg.invalidateDependents(s)
		if s.Name == "MODULES" {
			s.cfg.invalidateAll()
		}
		return nil
	}

	// A choice member assigned "y" becomes the choice's selection, which is
	// what actually drives choiceMemberValue's mode-"y" branch; a plain
	// UserValue of "y" on a member is never consulted there. "m"/"n" on a
	// member still go through UserValue, same as a non-choice symbol.
	if s.Choice != nil && (s.Type == TypeBool || s.Type == TypeTristate) && v == "y" {
		return s.Choice.SetSelection(s)
	}

	if s.Type == TypeBool || s.Type == TypeTristate {
		switch v {
		case "n", "m", "y":
		default:
			return &ValueError{Symbol: s.Name, Value: v, Reason: "not a valid tristate value"}
		}
		if !assignableContains(s.Assignable(), Tristate(v)) {
			if dep := s.DependsOn(); dep != "y" {
				s.cfg.warnf("%s: assigning %q outside its current visibility (depends on %s); value is stored and will read back clamped", s.Name, v, dep)
			} else {
				s.cfg.warnf("%s: assigning %q outside its current visibility; value is stored and will read back clamped", s.Name, v)
			}
		}
	}

	s.UserValue = v
	s.cfg.invalidateDependents(s)

	if s.Name == "MODULES" {
		s.cfg.invalidateAll()
	}

	return nil
}

// UnsetValue clears the symbol's user value, equivalent to SetValue("").
func (s *Symbol) UnsetValue() {
	_ = s.SetValue("")
}

// ConfigString renders the symbol as it would appear in a .config file, or
// "" if it should be omitted (write_to_conf false, or environment-backed).
func (s *Symbol) ConfigString() string {
	_ = s.Value() // populate writeToConf
	if !s.writeToConf || s.EnvVar != "" {
		return ""
	}

	prefix := s.cfg.configPrefix
	switch s.Type {
	case TypeBool, TypeTristate:
		if s.Value() == "n" {
			return "# " + prefix + s.Name + " is not set\n"
		}
		return prefix + s.Name + "=" + s.Value() + "\n"
	case TypeInt, TypeHex:
		return prefix + s.Name + "=" + s.Value() + "\n"
	case TypeString:
		return prefix + s.Name + "=\"" + escapeConfigString(s.Value()) + "\"\n"
	default:
		return ""
	}
}

func escapeConfigString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
