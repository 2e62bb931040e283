// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package main

import (
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"kconfig.sh/internal/cmdutil"
	"kconfig.sh/kconfig"
)

type dumpCmd struct {
	flags *rootFlags
}

func newDumpCmd(flags *rootFlags) *cobra.Command {
	return cmdutil.New(&dumpCmd{flags: flags}, cmdutil.Spec{
		Use:   "dump KCONFIG",
		Short: "List every defined symbol, its type, value, and visibility",
		Long: heredoc.Doc(`
			Parse a Kconfig tree, optionally apply a .config on top of it, and
			print one row per defined symbol: name, type, current value, and
			visibility ("n"/"m"/"y").`),
		Example: heredoc.Doc(`
			$ kconfigtool dump Kconfig
			$ kconfigtool dump --config .config Kconfig`),
		Args:  cobra.ExactArgs(1),
		Group: "inspect",
	})
}

func (c *dumpCmd) Run(cmd *cobra.Command, args []string) error {
	h, err := c.flags.loadConfig(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Symbol", "Type", "Value", "Visibility"})
	table.SetAutoWrapText(false)

	for _, sym := range h.cfg.Symbols() {
		table.Append([]string{sym.Name, sym.Type.String(), sym.Value(), string(sym.Visibility())})
	}

	for _, ch := range h.cfg.Choices() {
		name := ch.Name
		if name == "" {
			name = dim("<choice>")
		}
		sel := "-"
		if s := ch.Selection(); s != nil {
			sel = s.Name
		}
		table.Append([]string{name, "choice", string(ch.Value()), sel})
	}

	table.Render()
	return nil
}
