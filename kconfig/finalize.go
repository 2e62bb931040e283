// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

// finalizeTree runs the post-parse passes over the freshly parsed menu tree
// rooted at top, in order:
//
//  1. flattenIfBlocks splices every "if"/"endif" wrapper out of the tree,
//     AND'ing its condition into each of its direct children.
//  2. promoteAutoMenus nests a "menuconfig" entry's following siblings
//     under it when their own "depends on" names that menuconfig's symbol.
//  3. propagateDeps walks the now-final tree top-down, building each node's
//     EffectiveDep (its own Dep AND'd with every ancestor's) and folding
//     any enclosing "visible if" into prompt-bearing nodes' PromptCond.
//  4. buildRevDeps accumulates every symbol's RevDep (from "select") and
//     WeakRevDep (from "imply"), and every symbol's DirectDeps (the OR of
//     its defining nodes' EffectiveDep).
func finalizeTree(cfg *Config, top *MenuNode) {
	top.List = flattenIfBlocks(top.List, top)
	top.List = promoteAutoMenus(top.List)
	propagateDeps(top.List, nil, nil)
	buildRevDeps(cfg)
}

// flattenIfBlocks rebuilds the sibling chain starting at node (whose
// structural parent is parent), removing every IsIfBlock wrapper: its own
// children are spliced into the chain in its place, each with the if
// block's Dep AND'd in and its Parent corrected to parent. Recurses into
// each kept node's own List first so nested if-blocks collapse bottom-up.
func flattenIfBlocks(node *MenuNode, parent *MenuNode) *MenuNode {
	var head, tail *MenuNode

	for n := node; n != nil; {
		next := n.Next

		if n.List != nil {
			n.List = flattenIfBlocks(n.List, n)
		}

		if n.IsIfBlock {
			for c := n.List; c != nil; c = c.Next {
				c.Dep = andExpr(c.Dep, n.Dep)
				c.Parent = parent
			}
			if n.List != nil {
				last := n.List
				for last.Next != nil {
					last = last.Next
				}
				if head == nil {
					head = n.List
				} else {
					tail.Next = n.List
				}
				tail = last
			}
			n = next
			continue
		}

		n.Parent = parent
		n.Next = nil
		if head == nil {
			head = n
		} else {
			tail.Next = n
		}
		tail = n
		n = next
	}

	return head
}

// hasAutoMenuDep reports whether dep names target as one of the top-level
// AND'd conjuncts, the same shallow check real Kconfig performs: a
// "depends on X || Y" does not qualify a following entry for auto-nesting
// under menuconfig X, but "depends on X" and "depends on X && Y" do, and so
// does target appearing as the left operand of "X = y", "X = m", or
// "X != n".
func hasAutoMenuDep(dep *expr, target *Symbol) bool {
	if dep == nil {
		return false
	}
	switch dep.tag {
	case exprSymbol:
		return dep.sym == target
	case exprAnd:
		return hasAutoMenuDep(dep.x, target) || hasAutoMenuDep(dep.y, target)
	case exprEqual:
		return dep.x.tag == exprSymbol && dep.x.sym == target &&
			dep.y.tag == exprConst && (dep.y.str == "y" || dep.y.str == "m")
	case exprUnequal:
		return dep.x.tag == exprSymbol && dep.x.sym == target &&
			dep.y.tag == exprConst && dep.y.str == "n"
	default:
		return false
	}
}

// autoMenuCond returns the expression hasAutoMenuDep should check for n: when
// n carries a prompt, its prompt condition AND'd with its Dep (so both
// "bool \"S\" if M" and a separate "depends on M" qualify), or its Dep
// otherwise.
func autoMenuCond(n *MenuNode) *expr {
	if n.PromptText != "" {
		return andExpr(n.PromptCond, n.Dep)
	}
	return n.Dep
}

// promoteAutoMenus rebuilds the sibling chain starting at node, moving the
// run of immediately-following siblings whose own dependency condition
// (autoMenuCond) names a preceding "menuconfig" entry's symbol into that
// entry's List, recursively processing the resulting (and originally
// nested) children lists too.
func promoteAutoMenus(node *MenuNode) *MenuNode {
	for n := node; n != nil; n = n.Next {
		if n.List != nil {
			n.List = promoteAutoMenus(n.List)
		}
	}

	for n := node; n != nil; n = n.Next {
		if !n.IsMenuconfig {
			continue
		}
		mc := n.Symbol()
		if mc == nil {
			continue
		}
		for n.Next != nil && hasAutoMenuDep(autoMenuCond(n.Next), mc) {
			promoted := n.Next
			n.Next = promoted.Next
			promoted.Next = nil
			promoted.Parent = n
			promoted.List = promoteAutoMenus(promoted.List)
			appendChild(n, promoted)
		}
	}

	return node
}

func appendChild(parent, child *MenuNode) {
	if parent.List == nil {
		parent.List = child
		return
	}
	last := parent.List
	for last.Next != nil {
		last = last.Next
	}
	last.Next = child
}

// propagateDeps walks the sibling chain starting at node top-down, building
// EffectiveDep and folding any accumulated "visible if" into prompt
// conditions, per MenuNode.EffectiveDep's doc comment.
func propagateDeps(node *MenuNode, parentDep *expr, parentVisibleIf *expr) {
	for n := node; n != nil; n = n.Next {
		dep := andExpr(parentDep, n.Dep)
		n.EffectiveDep = dep

		visIf := parentVisibleIf
		if n.IsMenu && n.VisibleIf != nil {
			visIf = andExpr(visIf, n.VisibleIf)
		}
		if n.PromptText != "" && visIf != nil {
			n.PromptCond = andExpr(n.PromptCond, visIf)
		}

		if n.List != nil {
			propagateDeps(n.List, dep, visIf)
		}
	}
}

// buildRevDeps accumulates RevDep/WeakRevDep from every symbol's
// select/imply entries onto their targets, and DirectDeps from every
// symbol's own defining nodes.
func buildRevDeps(cfg *Config) {
	for _, sym := range cfg.definedSyms {
		for _, sel := range sym.Selects {
			contrib := andExpr(symExpr(sym), sel.cond)
			sel.target.RevDep = &expr{tag: exprOr, x: sel.target.RevDep, y: contrib}
		}
		for _, imp := range sym.Implies {
			contrib := andExpr(symExpr(sym), imp.cond)
			imp.target.WeakRevDep = &expr{tag: exprOr, x: imp.target.WeakRevDep, y: contrib}
		}
	}

	for _, sym := range cfg.definedSyms {
		var dd *expr
		for _, n := range sym.Nodes {
			if dd == nil {
				dd = n.EffectiveDep
			} else {
				dd = &expr{tag: exprOr, x: dd, y: n.EffectiveDep}
			}
		}
		sym.DirectDeps = dd
	}
}
