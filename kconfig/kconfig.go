// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

// Package kconfig parses, evaluates, and serializes Kconfig configuration
// trees: the symbol/choice/menu language used by the Linux kernel and a
// number of other projects to describe build-time options, their types,
// defaults, dependencies, and mutual constraints.
package kconfig

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"kconfig.sh/log"
)

// Config is a fully parsed and finalized Kconfig tree: every defined
// Symbol and Choice, the menu structure linking them, and the current set
// of user-assigned values. Construct one with New; it is not safe for
// concurrent use by more than one goroutine.
type Config struct {
	ctx context.Context

	srctree         string
	configPrefix    string
	warningsEnabled bool
	undefWarnings   bool
	env             *environment

	syms        map[string]*Symbol
	definedSyms []*Symbol
	choices     []*Choice

	topMenu       *MenuNode
	modules       *Symbol
	defconfigList *Symbol
	mainmenuText  string

	filename string
}

// Option configures a Config constructed by New.
type Option func(*Config)

// WithWarnings enables or disables non-fatal warning output to the logger
// attached to ctx; enabled by default.
func WithWarnings(enabled bool) Option {
	return func(c *Config) { c.warningsEnabled = enabled }
}

// WithUndefWarnings enables or disables the specific warning emitted when a
// .config assigns a value to an undefined symbol; enabled by default,
// independently toggleable.
func WithUndefWarnings(enabled bool) Option {
	return func(c *Config) { c.undefWarnings = enabled }
}

// WithSrctree sets the fallback directory relative paths are resolved
// against when opening the root file or a "source" target fails to open
// directly. Defaults to the $srctree environment variable.
func WithSrctree(dir string) Option {
	return func(c *Config) { c.srctree = dir }
}

// WithConfigPrefix overrides the symbol-name prefix used when reading and
// writing .config files (default "CONFIG_", or $CONFIG_ if set).
func WithConfigPrefix(prefix string) Option {
	return func(c *Config) { c.configPrefix = prefix }
}

// WithEnv overrides or augments the process environment captured at
// construction time; later entries win over os.Environ().
func WithEnv(vars map[string]string) Option {
	return func(c *Config) { c.env = newEnvironment(vars) }
}

// New parses filename as the root of a Kconfig tree and returns the
// resulting Config, or a *SyntaxError/*IOError on failure. ctx threads a
// logger (via kconfig.sh/log) through parsing for warning output.
func New(ctx context.Context, filename string, opts ...Option) (*Config, error) {
	cfg := &Config{
		ctx:             ctx,
		configPrefix:    "CONFIG_",
		warningsEnabled: true,
		undefWarnings:   true,
		syms:            map[string]*Symbol{},
		filename:        filename,
	}

	for _, o := range opts {
		o(cfg)
	}
	if cfg.env == nil {
		cfg.env = newEnvironment(nil)
	}
	if cfg.srctree == "" {
		if v, ok := cfg.env.lookup("srctree"); ok {
			cfg.srctree = v
		}
	}
	if v, ok := cfg.env.lookup("CONFIG_"); ok {
		cfg.configPrefix = v
	}

	p := newParser(cfg)
	top, err := p.parseFile(filename)
	if err != nil {
		return nil, err
	}
	cfg.topMenu = top

	applyEnvDefaults(cfg)
	finalizeTree(cfg, top)
	buildDependentsGraph(cfg)

	return cfg, nil
}

// applyEnvDefaults appends a default for every symbol declared with
// "option env=NAME" sourcing its value from the environment. The
// env-sourced default is appended after any defaults already declared at
// that point, not prepended, so an explicit "default" line in the source
// still wins when both apply to the same condition.
func applyEnvDefaults(cfg *Config) {
	for _, sym := range cfg.definedSyms {
		if sym.EnvVar == "" {
			continue
		}
		v, ok := cfg.env.lookup(sym.EnvVar)
		if !ok {
			if cfg.warningsEnabled {
				cfg.warnf("environment variable %q referenced by option env on %s is not set", sym.EnvVar, sym.Name)
			}
			continue
		}
		sym.Defaults = append(sym.Defaults, defaultEntry{value: constExpr(v), cond: nil})
	}
}

// symbolRef returns the Symbol named name, creating a fresh TypeUnknown
// placeholder on first reference. Every mention of a name anywhere in a
// Kconfig tree -- "config NAME", an expression operand, a select/imply
// target -- resolves through this single table, so later-declared symbols
// are linked up correctly regardless of source order.
func (cfg *Config) symbolRef(name string) *Symbol {
	if s, ok := cfg.syms[name]; ok {
		return s
	}
	s := &Symbol{cfg: cfg, Name: name, RevDep: constN, WeakRevDep: constN}
	cfg.syms[name] = s
	return s
}

// finalize hook: parseConfig appends a symbol to cfg.definedSyms exactly
// once, the first time a "config NAME" block actually declares it (as
// opposed to symbolRef's placeholder creation on bare reference).
func (cfg *Config) noteDefined(s *Symbol) {
	if len(s.Nodes) == 1 {
		cfg.definedSyms = append(cfg.definedSyms, s)
	}
}

func (cfg *Config) warnf(format string, args ...interface{}) {
	if !cfg.warningsEnabled {
		return
	}
	log.G(cfg.ctx).Warnf(format, args...)
}

// modulesValue returns the value of the symbol named MODULES, the switch
// that promotes TypeTristate to TypeBool throughout the tree when it is
// "n". An undefined MODULES symbol has type TypeUnknown and therefore a
// value equal to its own name, which is never "n", so modules default to
// "on" when no MODULES symbol exists.
func (cfg *Config) modulesValue() Tristate {
	m := cfg.modules
	if m == nil {
		m = cfg.syms["MODULES"]
	}
	if m == nil {
		return Yes
	}
	return Tristate(m.Value())
}

// Symbol returns the symbol named name if it was ever referenced, or nil.
// Use Symbol(name).IsDefined() to distinguish a placeholder from a real
// "config NAME" declaration.
func (cfg *Config) Symbol(name string) *Symbol {
	return cfg.syms[name]
}

// Symbols returns every defined symbol, in declaration order.
func (cfg *Config) Symbols() []*Symbol {
	return cfg.definedSyms
}

// Choices returns every choice block, in declaration order.
func (cfg *Config) Choices() []*Choice {
	return cfg.choices
}

// TopMenu returns the root MenuNode; its List is the first top-level entry.
func (cfg *Config) TopMenu() *MenuNode {
	return cfg.topMenu
}

// MainmenuText returns the text set by a "mainmenu" statement, or "" if
// none was present.
func (cfg *Config) MainmenuText() string {
	return cfg.mainmenuText
}

// ClearUserValues clears every symbol's and choice's UserValue/UserSelection,
// returning the tree to its all-default state.
func (cfg *Config) ClearUserValues() {
	for _, s := range cfg.definedSyms {
		s.UserValue = ""
	}
	for _, c := range cfg.choices {
		c.UserValue = ""
		c.UserSelection = nil
	}
	cfg.invalidateAll()
}

// EvalString evaluates s, a boolean expression in Kconfig syntax over this
// configuration's symbol table, and returns its tristate value. A bare "m"
// is rewritten to "m && MODULES" so a standalone modules-possible query
// respects the MODULES switch the same way a real expression operand
// would.
func (cfg *Config) EvalString(s string) (Tristate, error) {
	toks := lexLine(s)
	if len(toks) == 1 && toks[0].kind == tokConst && toks[0].text == "m" {
		return eval(andExpr(constM, symExpr(cfg.symbolRef("MODULES")))), nil
	}

	p := newParser(cfg)
	p.readers = []*lineReader{newLineReader(nil, "<eval_string>")}
	e, err := p.parseExprTokens(toks)
	if err != nil {
		return No, errors.Wrap(err, "parsing expression")
	}
	return eval(e), nil
}

// DefconfigFilename walks the defaults of the symbol marked "option
// defconfig_list", in order, expanding symbol
// references in each candidate filename and returning the first one that
// can be opened (resolving relative paths against srctree as a fallback).
// Returns "" if no symbol was so marked or none of its defaults resolve to
// an openable file.
func (cfg *Config) DefconfigFilename() string {
	sym := cfg.defconfigList
	if sym == nil {
		return ""
	}
	for _, d := range sym.Defaults {
		if eval(d.cond) == No {
			continue
		}
		name := expandSymRefs(cfg, exprValueString(d.value))
		if name == "" {
			continue
		}
		if _, err := os.Stat(name); err == nil {
			return name
		}
		if cfg.srctree != "" {
			joined := cfg.srctree + string(os.PathSeparator) + name
			if _, err := os.Stat(joined); err == nil {
				return joined
			}
		}
	}
	return ""
}
