// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import "testing"

func TestEvalAndShortCircuits(t *testing.T) {
	cfg := newTestConfig(t)
	a := cfg.symbolRef("A")
	a.Type = TypeBool
	a.UserValue = "n"
	a.Nodes = []*MenuNode{{PromptText: "A", Item: a}}

	e := andExpr(symExpr(a), constY)
	if got := eval(e); got != No {
		t.Fatalf("eval(A && y) = %q, want n", got)
	}
}

func TestEvalOrTakesMax(t *testing.T) {
	n := eval(orExpr(constN, constM))
	if n != Mod {
		t.Fatalf("eval(n || m) = %q, want m", n)
	}
	y := eval(orExpr(constM, constY))
	if y != Yes {
		t.Fatalf("eval(m || y) = %q, want y", y)
	}
}

func TestEvalNotFlipsNAndY(t *testing.T) {
	if eval(notExpr(constN)) != Yes {
		t.Fatal("!n should be y")
	}
	if eval(notExpr(constY)) != No {
		t.Fatal("!y should be n")
	}
	if eval(notExpr(constM)) != Mod {
		t.Fatal("!m should stay m")
	}
}

func TestEvalRelationNumericVsString(t *testing.T) {
	cfg := newTestConfig(t)
	n := cfg.symbolRef("N")
	n.Type = TypeInt
	n.Defaults = []defaultEntry{{value: constExpr("10")}}

	rel := &expr{tag: exprGreater, x: symExpr(n), y: constExpr("5")}
	if eval(rel) != Yes {
		t.Fatal("10 > 5 should be y")
	}

	rel2 := &expr{tag: exprLess, x: symExpr(n), y: constExpr("5")}
	if eval(rel2) != No {
		t.Fatal("10 < 5 should be n")
	}
}

func TestEvalRelationHexBase(t *testing.T) {
	cfg := newTestConfig(t)
	h := cfg.symbolRef("H")
	h.Type = TypeHex
	h.Defaults = []defaultEntry{{value: constExpr("0x10")}}

	rel := &expr{tag: exprEqual, x: symExpr(h), y: constExpr("16")}
	if eval(rel) != Yes {
		t.Fatal("0x10 == 16 should be y (hex parses under base 16)")
	}
}

func TestEvalRelationStringFallback(t *testing.T) {
	rel := &expr{tag: exprEqual, x: constExpr("foo"), y: constExpr("foo")}
	if eval(rel) != Yes {
		t.Fatal(`"foo" = "foo" should be y`)
	}
	relOrder := &expr{tag: exprLess, x: constExpr("foo"), y: constExpr("bar")}
	if eval(relOrder) != No {
		t.Fatal(`two string constants compare lexicographically: "foo" < "bar" should be n`)
	}
}
