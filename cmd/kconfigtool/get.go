// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"kconfig.sh/internal/cmdutil"
)

type getCmd struct {
	flags *rootFlags
}

func newGetCmd(flags *rootFlags) *cobra.Command {
	return cmdutil.New(&getCmd{flags: flags}, cmdutil.Spec{
		Use:   "get KCONFIG SYMBOL",
		Short: "Print one symbol's current value",
		Long: heredoc.Doc(`
			Parse a Kconfig tree, optionally apply a .config on top of it, and
			print the named symbol's current value to stdout.`),
		Example: heredoc.Doc(`
			$ kconfigtool get --config .config Kconfig CONFIG_FOO`),
		Args:  cobra.ExactArgs(2),
		Group: "inspect",
	})
}

func (c *getCmd) Run(cmd *cobra.Command, args []string) error {
	h, err := c.flags.loadConfig(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	sym := h.cfg.Symbol(symbolName(args[1]))
	if sym == nil || !sym.IsDefined() {
		return errors.Errorf("%s is not a defined symbol", args[1])
	}

	fmt.Println(sym.Value())
	return nil
}

// symbolName strips a leading "CONFIG_" so both "FOO" and "CONFIG_FOO" name
// the same symbol on the command line.
func symbolName(s string) string {
	const prefix = "CONFIG_"
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}
