// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

// Package cmdutil builds cobra commands for kconfigtool's flat subcommand
// tree. It is the same Use/Short/Long/Example/Annotations idiom as a
// reflection-based command factory, minus the reflection: kconfigtool has
// four subcommands with their own explicit flags, not the dozens a
// struct-to-flag builder earns its keep on.
package cmdutil

import "github.com/spf13/cobra"

// AnnotationHelpGroup is the annotation key under which New records a
// Spec's Group; kconfigtool's usage output does not read it.
const AnnotationHelpGroup = "help:group"

// Runnable is implemented by a subcommand's option struct.
type Runnable interface {
	Run(cmd *cobra.Command, args []string) error
}

// Spec describes one subcommand: everything New needs besides the
// Runnable itself.
type Spec struct {
	Use     string
	Short   string
	Long    string
	Example string
	Aliases []string
	Group   string
	Args    cobra.PositionalArgs
}

// New builds a *cobra.Command from spec, wiring r.Run as RunE.
func New(r Runnable, spec Spec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.Use,
		Short:   spec.Short,
		Long:    spec.Long,
		Example: spec.Example,
		Aliases: spec.Aliases,
		Args:    spec.Args,
		RunE:    r.Run,
	}
	if spec.Group != "" {
		cmd.Annotations = map[string]string{AnnotationHelpGroup: spec.Group}
	}
	return cmd
}
