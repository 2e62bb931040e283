// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

// MenuNode is one entry in the menu tree: a config/menuconfig statement, a
// choice block, a menu block, or a comment. Rather than collecting children
// into a slice, MenuNode links siblings through Next and the first child
// through List, a linked-list shape that matters for
// finalizeTree: auto-menu promotion and "if" flattening both splice nodes
// out of (or into) the middle of a sibling chain in O(1), which a slice
// representation would make O(n) per splice.
type MenuNode struct {
	// Item is the Symbol or *Choice this node declares, or nil for a menu
	// or comment node that carries no symbol.
	Item interface{}

	// Parent, Next, and List thread the tree: Parent is the enclosing menu
	// node (nil at the root), Next is the following sibling at the same
	// depth, and List is the first child (entries textually nested under a
	// menu/choice/if block, or promoted under it by auto-menu).
	Parent *MenuNode
	Next   *MenuNode
	List   *MenuNode

	// IsMenu marks a "menu"/"endmenu" block (and the root node); a
	// menuconfig entry that receives children through auto-menu promotion
	// keeps IsMenu false. IsChoice marks a choice block.
	// IsMenuconfig marks a "menuconfig" entry, which auto-menu treats as a
	// candidate submenu head.
	IsMenu       bool
	IsChoice     bool
	IsMenuconfig bool

	// IsIfBlock marks a transient node materialized for an "if"/"endif"
	// block. finalizeTree's flattenIfBlocks pass splices such a node's List
	// children up into its own place in the sibling chain, AND'ing Dep into
	// each child, and the node itself never survives finalize ("if-block
	// flattening").
	IsIfBlock bool

	// PromptText and PromptCond hold this node's own prompt, as opposed to a
	// plain "config" entry with no prompt text at all. See
	// computeNodeVisibility for how a symbol with no prompted node at any of
	// its declarations is still made visible through its bare dependency
	// chain.
	PromptText string
	PromptCond *expr

	Help string

	// Dep is this node's own accumulated "depends on" condition, combined
	// during finalize with every enclosing menu/if/choice condition to
	// produce the node's effective visibility.
	Dep *expr

	// VisibleIf holds a "menu"-only "visible if COND" clause: it narrows
	// the prompt visibility of entries nested under the menu without
	// affecting their assignability, so it is AND'd into each child's
	// PromptCond during finalize rather than into Dep.
	VisibleIf *expr

	// EffectiveDep is the AND of this node's own Dep with every ancestor's
	// Dep, built once by finalizeTree. It is an expr, not a cached
	// Tristate, because the symbols it references can still change value
	// after finalize; evaluating it is cheap since Symbol/Choice value
	// lookups are themselves cached.
	EffectiveDep *expr

	Filename string
	Linenr   int
}

// visibility evaluates this node's structural dependency chain: the AND of
// its own and every ancestor's "depends on", independent of its prompt's own
// condition.
func (n *MenuNode) visibility() Tristate {
	return eval(n.EffectiveDep)
}

// Symbol returns node's Item as a *Symbol, or nil if the node names a choice
// or carries no symbol.
func (n *MenuNode) Symbol() *Symbol {
	s, _ := n.Item.(*Symbol)
	return s
}

// ChoiceItem returns node's Item as a *Choice, or nil if the node names a
// symbol or carries no symbol.
func (n *MenuNode) ChoiceItem() *Choice {
	c, _ := n.Item.(*Choice)
	return c
}
