// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"kconfig.sh/log"
)

// configLinePattern matches "PREFIXNAME=VALUE"; configUnsetPattern matches
// "# PREFIXNAME is not set". Both are compiled per-load since the prefix is
// configurable.
func configLinePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\w+)=(.*)$`)
}

func configUnsetPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^# ` + regexp.QuoteMeta(prefix) + `(\w+) is not set$`)
}

// LoadConfig reads a .config-format file from path and applies its
// assignments as user values. If replace is true every symbol's user value
// is cleared first; otherwise prior user values survive and only the
// caches are invalidated. An undefined symbol or malformed string quoting
// produces a suppressible warning and the line is skipped; a symbol
// assigned more than once in the same load produces a warning and the later
// assignment takes effect. None of these aborts the load.
func (cfg *Config) LoadConfig(path string, replace bool) error {
	f, err := os.Open(path)
	if err != nil {
		return &IOError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	if replace {
		cfg.ClearUserValues()
	}

	setLine := configLinePattern(cfg.configPrefix)
	unsetLine := configUnsetPattern(cfg.configPrefix)
	seenThisLoad := map[string]bool{}

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		var name, rawValue string
		var isUnset bool

		if m := setLine.FindStringSubmatch(line); m != nil {
			name, rawValue = m[1], m[2]
		} else if m := unsetLine.FindStringSubmatch(line); m != nil {
			name = m[1]
			isUnset = true
		} else {
			continue
		}

		sym := cfg.syms[name]
		if sym == nil || !sym.IsDefined() {
			if cfg.undefWarnings {
				cfg.warnf("%s:%d: %s is not a defined symbol", path, lineNo, name)
			}
			continue
		}

		if seenThisLoad[name] {
			cfg.warnf("%s:%d: %s assigned more than once in this load", path, lineNo, name)
		}
		seenThisLoad[name] = true

		if isUnset {
			if err := sym.SetValue("n"); err != nil {
				cfg.warnf("%s:%d: %s", path, lineNo, err)
			}
			continue
		}

		value := rawValue
		if sym.Type == TypeString {
			unquoted, ok := unquoteConfigString(rawValue)
			if !ok {
				cfg.warnf("%s:%d: malformed string literal for %s", path, lineNo, name)
				continue
			}
			value = unquoted
		}

		if err := sym.SetValue(value); err != nil {
			cfg.warnf("%s:%d: %s", path, lineNo, err)
		}
	}

	if err := sc.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return nil
}

// unquoteConfigString strips a leading and trailing '"' and un-escapes
// "\\\"" and "\\\\", returning ok=false if the value is not properly quoted.
func unquoteConfigString(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	inner := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == '\\') {
			b.WriteByte(inner[i+1])
			i++
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String(), true
}

// defaultHeader is the single commented line WriteConfig prepends when the
// caller passes an empty header.
const defaultHeader = "# Generated by kconfig.sh\n"

// WriteConfig walks the menu tree in source order and writes to path, in
// .config format, each symbol whose value is marked for output (it is
// visible, or an active default or select gave it its value; symbols backed
// by "option env" are left out), plus a banner for each visible menu and
// comment. header is
// written verbatim before the body; an empty header falls back to
// defaultHeader.
func (cfg *Config) WriteConfig(path string, header string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Op: "create", Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if header == "" {
		header = defaultHeader
	}
	if _, err := w.WriteString(header); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	written := map[*Symbol]bool{}
	if err := writeMenuNode(w, cfg.topMenu.List, written); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	log.G(cfg.ctx).Debugf("wrote %s", path)
	return nil
}

func writeMenuNode(w *bufio.Writer, node *MenuNode, written map[*Symbol]bool) error {
	for n := node; n != nil; n = n.Next {
		switch {
		case n.Symbol() != nil:
			sym := n.Symbol()
			if !written[sym] {
				written[sym] = true
				if s := sym.ConfigString(); s != "" {
					if _, err := w.WriteString(s); err != nil {
						return err
					}
				}
			}

		case n.IsMenu && n.PromptText != "" && eval(n.PromptCond) != No && n.visibility() != No:
			if _, err := fmt.Fprintf(w, "\n#\n# %s\n#\n", n.PromptText); err != nil {
				return err
			}

		case !n.IsMenu && !n.IsChoice && n.ChoiceItem() == nil && n.Item == nil && n.PromptText != "" &&
			eval(n.PromptCond) != No && n.visibility() != No:
			// A plain comment node.
			if _, err := fmt.Fprintf(w, "\n#\n# %s\n#\n", n.PromptText); err != nil {
				return err
			}
		}

		if n.List != nil {
			if err := writeMenuNode(w, n.List, written); err != nil {
				return err
			}
		}
	}
	return nil
}
