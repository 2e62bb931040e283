// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

// buildDependentsGraph scans every defined symbol's expressions (defaults,
// select/imply targets, ranges, rev_dep, weak_rev_dep, direct_deps, and
// every node's prompt condition) and records, on each referenced symbol R,
// that the scanning symbol is one of R's direct dependents: R changing
// value means the scanning symbol's cached value/visibility/assignable may
// have changed too. Choice membership is handled separately, by expanding
// neighbors through Symbol.Choice.Syms at BFS time rather than materializing
// O(n^2) sibling edges up front.
func buildDependentsGraph(cfg *Config) {
	for _, owner := range cfg.definedSyms {
		var refs []*Symbol

		for _, d := range owner.Defaults {
			refs = exprSyms(d.value, refs)
			refs = exprSyms(d.cond, refs)
		}
		for _, sel := range owner.Selects {
			refs = append(refs, sel.target)
			refs = exprSyms(sel.cond, refs)
		}
		for _, imp := range owner.Implies {
			refs = append(refs, imp.target)
			refs = exprSyms(imp.cond, refs)
		}
		for _, r := range owner.Ranges {
			refs = exprSyms(r.low, refs)
			refs = exprSyms(r.high, refs)
			refs = exprSyms(r.cond, refs)
		}
		refs = exprSyms(owner.RevDep, refs)
		refs = exprSyms(owner.WeakRevDep, refs)
		refs = exprSyms(owner.DirectDeps, refs)
		for _, n := range owner.Nodes {
			refs = exprSyms(n.PromptCond, refs)
			refs = exprSyms(n.Dep, refs)
		}

		for _, r := range refs {
			if r == nil || r == owner {
				continue
			}
			if r.directDependents == nil {
				r.directDependents = map[*Symbol]bool{}
			}
			r.directDependents[owner] = true
		}
	}
}

// dependentsClosure returns the reflexive-transitive closure of sym's direct
// dependents, expanding choice membership (a choice member's neighbors
// include its choice siblings) along the way. The result is cached on sym.
func dependentsClosure(sym *Symbol) []*Symbol {
	if sym.dependentsComputed {
		return sym.cachedDependents
	}

	seen := map[*Symbol]bool{sym: true}
	queue := []*Symbol{sym}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for dep := range cur.directDependents {
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
		if cur.Choice != nil {
			for _, sib := range cur.Choice.Syms {
				if !seen[sib] {
					seen[sib] = true
					queue = append(queue, sib)
				}
			}
		}
	}

	out := make([]*Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}

	sym.cachedDependents = out
	sym.dependentsComputed = true
	return out
}

// invalidateDependents clears sym's own caches and those of every symbol in
// its dependents closure; it also invalidates the choice of every choice
// member in that closure, since a member's value and dependencies feed into
// Choice.Value/Visibility/Selection.
func (cfg *Config) invalidateDependents(sym *Symbol) {
	for _, s := range dependentsClosure(sym) {
		s.invalidate()
		if s.Choice != nil {
			s.Choice.invalidate()
		}
	}
	if sym.Choice != nil {
		sym.Choice.invalidate()
	}
}

// invalidateDependentsOfChoice invalidates c's own cache, every member's
// cache, and every member's dependents closure, since a choice mode/
// selection change can ripple through anything depending on a member.
func (cfg *Config) invalidateDependentsOfChoice(c *Choice) {
	c.invalidate()
	for _, m := range c.Syms {
		cfg.invalidateDependents(m)
	}
}

// invalidateAll clears every symbol's and choice's cache: used when the
// MODULES symbol's value changes, since it feeds every tristate/bool
// EffectiveType computation in the tree.
func (cfg *Config) invalidateAll() {
	for _, s := range cfg.definedSyms {
		s.invalidate()
	}
	for _, c := range cfg.choices {
		c.invalidate()
	}
}
