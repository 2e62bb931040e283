// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

// Command kconfigtool is a small CLI over the kconfig.sh library: load a
// Kconfig tree plus an optional .config, inspect or change symbol values,
// and write the result back out.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"kconfig.sh/log"
)

func newRootCmd() *cobra.Command {
	var srctree string
	var dotconfig string
	var quiet bool

	root := &cobra.Command{
		Use:           "kconfigtool",
		Short:         "Inspect and edit Kconfig trees from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&srctree, "srctree", "", "directory \"source\" paths resolve against (default: $srctree)")
	root.PersistentFlags().StringVar(&dotconfig, "config", "", "optional .config file to load after parsing")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress warning output")

	root.AddCommand(
		newDumpCmd(&rootFlags{srctreeFlag: &srctree, dotconfigFlag: &dotconfig, quietFlag: &quiet}),
		newGetCmd(&rootFlags{srctreeFlag: &srctree, dotconfigFlag: &dotconfig, quietFlag: &quiet}),
		newSetCmd(&rootFlags{srctreeFlag: &srctree, dotconfigFlag: &dotconfig, quietFlag: &quiet}),
		newDefconfigCmd(&rootFlags{srctreeFlag: &srctree, dotconfigFlag: &dotconfig, quietFlag: &quiet}),
	)

	return root
}

// rootFlags carries the persistent flags down to each subcommand without a
// package-level global.
type rootFlags struct {
	srctreeFlag   *string
	dotconfigFlag *string
	quietFlag     *bool
}

func (f *rootFlags) loadConfig(ctx context.Context, kconfigFile string) (*cfgHandle, error) {
	return loadTree(ctx, kconfigFile, *f.srctreeFlag, *f.dotconfigFlag, !*f.quietFlag)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.L.Error(err)
		os.Exit(1)
	}
}
