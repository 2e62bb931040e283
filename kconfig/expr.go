// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"strconv"
	"strings"
)

// Tristate is one of the three totally ordered values a bool or tristate
// symbol, or a boolean expression, can take: No < Mod < Yes.
type Tristate string

const (
	No  Tristate = "n"
	Mod Tristate = "m"
	Yes Tristate = "y"
)

// rank gives No/Mod/Yes their position in the n < m < y ordering, used by
// AND (min) and OR (max).
func (t Tristate) rank() int {
	switch t {
	case No:
		return 0
	case Mod:
		return 1
	default:
		return 2
	}
}

func triFromRank(r int) Tristate {
	switch r {
	case 0:
		return No
	case 1:
		return Mod
	default:
		return Yes
	}
}

// exprTag identifies the shape of an expr node.
type exprTag int

const (
	exprSymbol exprTag = iota
	exprConst          // a literal "y"/"m"/"n" or bare string/number constant
	exprAnd
	exprOr
	exprNot
	exprEqual
	exprUnequal
	exprLess
	exprLessEqual
	exprGreater
	exprGreaterEqual
)

// expr is the single recursive type backing every boolean and relational
// expression in a Kconfig tree: a "depends on", "default ... if", "select",
// range condition, or visibility condition. A nil *expr means "no condition
// present", which evaluates to Yes everywhere it is consulted -- callers
// must not confuse that with the explicit constant "n" node, which some
// fields (RevDep, WeakRevDep) are seeded with instead of nil specifically
// so that OR-accumulation starts from an identity element of "n", not "y".
type expr struct {
	tag  exprTag
	sym  *Symbol // exprSymbol
	str  string  // exprConst
	x, y *expr   // operands; y is unused by exprNot and exprSymbol/exprConst
}

func constExpr(s string) *expr { return &expr{tag: exprConst, str: s} }
func symExpr(s *Symbol) *expr  { return &expr{tag: exprSymbol, sym: s} }

var constN = constExpr("n")
var constM = constExpr("m")
var constY = constExpr("y")

// andExpr builds the conjunction of e1 and e2, treating a nil operand as the
// identity element "y" and collapsing to nil when both operands are nil, so
// that "no dependency at all" keeps propagating as nil rather than growing a
// tree of trivial "&& y" nodes.
func andExpr(e1, e2 *expr) *expr {
	if e1 == nil {
		return e2
	}
	if e2 == nil {
		return e1
	}
	return &expr{tag: exprAnd, x: e1, y: e2}
}

// orExpr builds the disjunction of e1 and e2. A nil operand means "no
// condition", i.e. "y", which absorbs OR, so the result is nil whenever
// either operand is nil. rev_dep/weak_rev_dep accumulation in buildRevDeps
// builds its OR nodes directly rather than through this helper.
func orExpr(e1, e2 *expr) *expr {
	if e1 == nil || e2 == nil {
		return nil
	}
	return &expr{tag: exprOr, x: e1, y: e2}
}

func notExpr(e *expr) *expr {
	if e == nil {
		return nil
	}
	return &expr{tag: exprNot, x: e}
}

// eval evaluates e to a Tristate. A nil expression (no condition) is always
// Yes. AND takes the min of its operands with short-circuit on No; OR takes
// the max with short-circuit on Yes; NOT swaps No and Yes and leaves Mod
// unchanged. A symbol leaf evaluates to its own value when it is a bool or
// tristate symbol, else to No (consulting the symbol's declared type, not
// any choice/MODULES-driven promotion of it).
func eval(e *expr) Tristate {
	if e == nil {
		return Yes
	}

	switch e.tag {
	case exprSymbol:
		if e.sym.Type == TypeBool || e.sym.Type == TypeTristate {
			return Tristate(e.sym.Value())
		}
		return No

	case exprConst:
		switch e.str {
		case "n", "m", "y":
			return Tristate(e.str)
		default:
			// A bare non-tristate string/number constant used in boolean
			// context (e.g. "depends on \"foo\"") is never true.
			return No
		}

	case exprAnd:
		l := eval(e.x)
		if l == No {
			return No
		}
		r := eval(e.y)
		if l.rank() < r.rank() {
			return l
		}
		return r

	case exprOr:
		l := eval(e.x)
		if l == Yes {
			return Yes
		}
		r := eval(e.y)
		if l.rank() > r.rank() {
			return l
		}
		return r

	case exprNot:
		switch eval(e.x) {
		case Yes:
			return No
		case No:
			return Yes
		default:
			return Mod
		}

	case exprEqual, exprUnequal, exprLess, exprLessEqual, exprGreater, exprGreaterEqual:
		return evalRelation(e.tag, e.x, e.y)

	default:
		return No
	}
}

// typeAndVal extracts the (declared type, current string value) pair for an
// expr operand used in a relational comparison: a symbol contributes its own
// declared type and current value, a bare constant is always a string.
func typeAndVal(e *expr) (SymbolType, string) {
	if e.tag == exprSymbol {
		return e.sym.Type, e.sym.Value()
	}
	return TypeString, e.str
}

// baseForCompare returns the integer base to parse a relational operand's
// string value under, given the declared type it was extracted from:
// TypeHex always parses base 16, TypeInt always parses base 10, and every
// other type (including TypeString) is parsed with base 0, i.e. inferred
// from a "0x"/"0"-style prefix, the same way strconv.ParseInt(s, 0, 64)
// infers a base from the literal's own prefix.
func baseForCompare(t SymbolType) int {
	switch t {
	case TypeHex:
		return 16
	case TypeInt:
		return 10
	default:
		return 0
	}
}

// parseIntBase parses s as a signed integer under the given base, with the
// same prefix handling as Python's int(s, base): an explicit base of 16
// additionally accepts (and strips) a leading "0x"/"0X", and a base of 0
// infers the base from a "0x"/"0X"/"0" prefix, falling back to base 10.
func parseIntBase(s string, base int) (int64, bool) {
	t := s
	neg := false
	if len(t) > 0 && (t[0] == '+' || t[0] == '-') {
		neg = t[0] == '-'
		t = t[1:]
	}

	switch base {
	case 16:
		if len(t) > 1 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') {
			t = t[2:]
		}
	case 0:
		// strconv.ParseInt already infers 0x/0o/0b/decimal for base 0.
	}

	if neg {
		t = "-" + t
	}

	n, err := strconv.ParseInt(t, base, 64)
	return n, err == nil
}

// evalRelation implements the six relational operators (=, !=, <, <=, >, >=):
// when both operands are string-typed the comparison is lexicographic;
// otherwise both sides are parsed as integers (with the base implied by
// each operand's own type) and compared numerically, falling back to a
// lexicographic comparison -- but only for = and != -- when either side
// fails to parse.
func evalRelation(tag exprTag, a, b *expr) Tristate {
	t1, v1 := typeAndVal(a)
	t2, v2 := typeAndVal(b)

	var cmp int
	if t1 == TypeString && t2 == TypeString {
		cmp = strings.Compare(v1, v2)
	} else {
		n1, ok1 := parseIntBase(v1, baseForCompare(t1))
		n2, ok2 := parseIntBase(v2, baseForCompare(t2))
		if ok1 && ok2 {
			switch {
			case n1 < n2:
				cmp = -1
			case n1 > n2:
				cmp = 1
			default:
				cmp = 0
			}
		} else if tag == exprEqual || tag == exprUnequal {
			cmp = strings.Compare(v1, v2)
		} else {
			return No
		}
	}

	var ok bool
	switch tag {
	case exprEqual:
		ok = cmp == 0
	case exprUnequal:
		ok = cmp != 0
	case exprLess:
		ok = cmp < 0
	case exprLessEqual:
		ok = cmp <= 0
	case exprGreater:
		ok = cmp > 0
	case exprGreaterEqual:
		ok = cmp >= 0
	}

	if ok {
		return Yes
	}
	return No
}

// exprSyms appends every Symbol referenced anywhere in e to out, used by the
// dependency graph builder to wire a symbol's direct dependents.
func exprSyms(e *expr, out []*Symbol) []*Symbol {
	if e == nil {
		return out
	}
	switch e.tag {
	case exprSymbol:
		out = append(out, e.sym)
	case exprConst:
	case exprNot:
		out = exprSyms(e.x, out)
	default:
		out = exprSyms(e.x, out)
		out = exprSyms(e.y, out)
	}
	return out
}

// exprString renders e back into Kconfig source syntax, used by
// Symbol.DependsOn to explain an out-of-visibility assignment warning.
func exprString(e *expr) string {
	if e == nil {
		return "y"
	}
	switch e.tag {
	case exprSymbol:
		return e.sym.Name
	case exprConst:
		return e.str
	case exprNot:
		return "!" + parenIfCompound(e.x)
	case exprAnd:
		return parenIfCompound(e.x) + " && " + parenIfCompound(e.y)
	case exprOr:
		return parenIfCompound(e.x) + " || " + parenIfCompound(e.y)
	case exprEqual:
		return exprString(e.x) + " = " + exprString(e.y)
	case exprUnequal:
		return exprString(e.x) + " != " + exprString(e.y)
	case exprLess:
		return exprString(e.x) + " < " + exprString(e.y)
	case exprLessEqual:
		return exprString(e.x) + " <= " + exprString(e.y)
	case exprGreater:
		return exprString(e.x) + " > " + exprString(e.y)
	case exprGreaterEqual:
		return exprString(e.x) + " >= " + exprString(e.y)
	default:
		return "?"
	}
}

func parenIfCompound(e *expr) string {
	if e != nil && (e.tag == exprAnd || e.tag == exprOr) {
		return "(" + exprString(e) + ")"
	}
	return exprString(e)
}
