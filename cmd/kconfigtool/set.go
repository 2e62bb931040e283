// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package main

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"kconfig.sh/internal/cmdutil"
)

type setCmd struct {
	flags *rootFlags
	write string
}

func newSetCmd(flags *rootFlags) *cobra.Command {
	c := &setCmd{flags: flags}
	cmd := cmdutil.New(c, cmdutil.Spec{
		Use:   "set KCONFIG SYMBOL VALUE",
		Short: "Assign one symbol's value and write the result back out",
		Long: heredoc.Doc(`
			Parse a Kconfig tree, optionally apply a .config on top of it,
			assign VALUE to SYMBOL, and write the resulting .config to --write
			(or back to --config in place if --write is not given).`),
		Example: heredoc.Doc(`
			$ kconfigtool set --config .config --write .config Kconfig CONFIG_FOO y`),
		Args:  cobra.ExactArgs(3),
		Group: "edit",
	})
	cmd.Flags().StringVar(&c.write, "write", "", "path to write the updated .config to (default: --config)")
	return cmd
}

func (c *setCmd) Run(cmd *cobra.Command, args []string) error {
	h, err := c.flags.loadConfig(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	sym := h.cfg.Symbol(symbolName(args[1]))
	if sym == nil || !sym.IsDefined() {
		return errors.Errorf("%s is not a defined symbol", args[1])
	}
	if err := sym.SetValue(args[2]); err != nil {
		return err
	}

	out := c.write
	if out == "" {
		out = h.configPath
	}
	if out == "" {
		return errors.New("no --config or --write destination given")
	}
	return h.cfg.WriteConfig(out, "")
}
