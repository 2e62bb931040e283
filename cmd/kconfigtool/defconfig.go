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

type defconfigCmd struct {
	flags *rootFlags
}

func newDefconfigCmd(flags *rootFlags) *cobra.Command {
	return cmdutil.New(&defconfigCmd{flags: flags}, cmdutil.Spec{
		Use:   "defconfig KCONFIG",
		Short: "Print the resolved path of the tree's default .config",
		Long: heredoc.Doc(`
			Parse a Kconfig tree and print the filename named by the symbol
			marked "option defconfig_list", resolved the same way the tree's
			own default-config lookup would.`),
		Example: heredoc.Doc(`
			$ kconfigtool defconfig Kconfig`),
		Args:  cobra.ExactArgs(1),
		Group: "inspect",
	})
}

func (c *defconfigCmd) Run(cmd *cobra.Command, args []string) error {
	h, err := c.flags.loadConfig(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	path := h.cfg.DefconfigFilename()
	if path == "" {
		return errors.New("no resolvable defconfig_list entry")
	}

	fmt.Println(path)
	return nil
}
