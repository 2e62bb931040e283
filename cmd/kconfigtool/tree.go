// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package main

import (
	"context"

	"kconfig.sh/kconfig"
)

// cfgHandle bundles the parsed Config with the path a later "set" should
// write back to.
type cfgHandle struct {
	cfg        *kconfig.Config
	configPath string
}

func loadTree(ctx context.Context, kconfigFile, srctree, dotconfig string, warnings bool) (*cfgHandle, error) {
	opts := []kconfig.Option{kconfig.WithWarnings(warnings)}
	if srctree != "" {
		opts = append(opts, kconfig.WithSrctree(srctree))
	}

	cfg, err := kconfig.New(ctx, kconfigFile, opts...)
	if err != nil {
		return nil, err
	}

	if dotconfig != "" {
		if err := cfg.LoadConfig(dotconfig, true); err != nil {
			return nil, err
		}
	}

	return &cfgHandle{cfg: cfg, configPath: dotconfig}, nil
}
