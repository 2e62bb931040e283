// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

// Choice is a "choice"/"endchoice" block: a mutually exclusive group of
// bool or tristate Symbols, of which at most one may be "y" (exactly one,
// once the choice's own mode reaches "y").
type Choice struct {
	cfg  *Config
	Name string // "" for an anonymous choice (the common case)
	Type SymbolType

	Nodes []*MenuNode
	Syms  []*Symbol // members, in declaration order

	// Defaults is the list of "default SYM [if COND]" entries naming a
	// preferred member to select once the choice's mode reaches "y" and no
	// member has been explicitly selected.
	Defaults []targetEntry

	IsOptional bool

	UserValue     string
	UserSelection *Symbol

	valValid  bool
	cachedVal Tristate

	visValid  bool
	cachedVis Tristate

	assignValid  bool
	cachedAssign []Tristate
}

// EffectiveType promotes TypeTristate to TypeBool when modules are off, the
// same rule Symbol.EffectiveType applies.
func (c *Choice) EffectiveType() SymbolType {
	if c.Type == TypeTristate && c.cfg.modulesValue() == No {
		return TypeBool
	}
	return c.Type
}

func (c *Choice) invalidate() {
	c.valValid = false
	c.visValid = false
	c.assignValid = false
}

// Visibility is the max, across all declaring nodes, of each node's own
// prompt condition AND'd with its finalized tree visibility; a final "m" is
// promoted to "y" when the effective type is not tristate.
func (c *Choice) Visibility() Tristate {
	if c.visValid {
		return c.cachedVis
	}
	vis := computeNodeVisibility(c.Nodes)
	if vis == Mod && c.EffectiveType() != TypeTristate {
		vis = Yes
	}
	c.cachedVis = vis
	c.visValid = true
	return vis
}

// Assignable returns the set of modes ("n"/"m"/"y") the choice's own mode
// may currently be set to. A choice visible as "y" is always fully engaged
// ("y") once it is either "optional" or bool-effective; a non-optional
// tristate choice visible as "y" additionally admits "m", letting it be
// engaged without a member forced on yet. "optional" only admits "n" at the
// "m" visibility tier, letting the choice be skipped while merely reachable,
// not once it is fully selectable.
func (c *Choice) Assignable() []Tristate {
	if c.assignValid {
		return c.cachedAssign
	}

	var out []Tristate
	switch c.Visibility() {
	case No:
		// empty
	case Yes:
		switch {
		case c.IsOptional, c.EffectiveType() == TypeBool:
			out = []Tristate{Yes}
		default:
			out = []Tristate{Mod, Yes}
		}
	case Mod:
		if c.IsOptional {
			out = []Tristate{No, Mod}
		} else {
			out = []Tristate{Mod}
		}
	}

	c.cachedAssign = out
	c.assignValid = true
	return out
}

// Value is the choice's own mode, clamped to its visibility: an explicitly
// set mode wins; otherwise "y" once a member has been selected or when the
// choice is bool-effective, and "m" for a tristate choice with no selected
// member. An invisible choice is "n".
func (c *Choice) Value() Tristate {
	if c.valValid {
		return c.cachedVal
	}

	vis := c.Visibility()
	val := No

	if vis != No {
		switch {
		case c.UserValue != "":
			// Clamped below, same as computeTristateValue does for a plain
			// symbol -- a mode set while less visible than now is still
			// honored rather than discarded.
			val = Tristate(c.UserValue)
		case c.UserSelection != nil:
			val = Yes
		case c.EffectiveType() == TypeBool:
			val = Yes
		default:
			val = Mod
		}
		val = minTri(val, vis)
	}

	c.cachedVal = val
	c.valValid = true
	return val
}

// Selection returns the member Symbol currently selected when the choice's
// mode is "y", or nil if the mode is "n"/"m" or no member can be resolved.
func (c *Choice) Selection() *Symbol {
	if c.Value() != Yes {
		return nil
	}
	if c.UserSelection != nil && c.UserSelection.Visibility() != No {
		return c.UserSelection
	}
	return c.DefaultSelection()
}

// DefaultSelection walks the choice's "default" entries in declaration
// order and returns the first visible named member whose condition is not
// "n"; failing that, the first visible member in declaration order; nil if
// no member is visible at all.
func (c *Choice) DefaultSelection() *Symbol {
	for _, d := range c.Defaults {
		if eval(d.cond) != No && d.target.Visibility() != No {
			return d.target
		}
	}
	for _, s := range c.Syms {
		if s.Visibility() != No {
			return s
		}
	}
	return nil
}

// SetMode assigns the choice's own mode directly ("n", "m", or "y"). This
// is the rarely-used direct path; the common path is selecting a member via
// SetSelection, which drives the mode to "y" implicitly. A mode outside the
// choice's current Assignable() is still stored (and logged as a warning)
// rather than refused, consistent with Symbol.SetValue: Value() clamps it
// against visibility at read time.
func (c *Choice) SetMode(v string) error {
	if v == "" {
		c.UserValue = ""
		c.invalidateAll()
		return nil
	}
	switch v {
	case "n", "m", "y":
	default:
		return &ValueError{Symbol: c.Name, Value: v, Reason: "not a valid choice mode"}
	}
	if !assignableContains(c.Assignable(), Tristate(v)) {
		c.cfg.warnf("%s: assigning mode %q outside its current visibility; value is stored and will read back clamped", c.Name, v)
	}
	c.UserValue = v
	c.invalidateAll()
	return nil
}

// SetSelection selects member as the choice's "y" member, forcing the
// choice's mode to "y". member must be one of c.Syms.
func (c *Choice) SetSelection(member *Symbol) error {
	found := false
	for _, s := range c.Syms {
		if s == member {
			found = true
			break
		}
	}
	if !found {
		return &ValueError{Symbol: c.Name, Value: member.Name, Reason: "not a member of this choice"}
	}
	c.UserSelection = member
	c.UserValue = "y"
	c.invalidateAll()
	return nil
}

func (c *Choice) invalidateAll() {
	c.invalidate()
	for _, s := range c.Syms {
		s.invalidate()
	}
	c.cfg.invalidateDependentsOfChoice(c)
}
