// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/assets"
	"codeberg.org/tatoolbox/l10n/config"
	"codeberg.org/tatoolbox/l10n/i18n"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Load a catalog directory and reload it on changes",
		Long: `Load every catalog in a directory the way the application does, then reload
them whenever a catalog file is written, created, removed or renamed. Use it
while translating to see load errors and warnings as soon as a file is saved.

The directory defaults to catalog.dir from the configuration. The command runs
until interrupted.`,
		Example: `  # Watch the configured catalog directory
  l10n watch

  # Watch another directory with debug logging
  L10N_LOG_LEVEL=debug l10n watch ./locales`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := config.Global.Catalog.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	if dir == "" {
		return errNoCatalogDir
	}

	fsys, root := assets.Catalogs(dir)
	if err := i18n.Setup(fsys, root); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (%d languages)\n", dir, len(i18n.Languages()))

	return i18n.Watch(cmd.Context(), dir, nil)
}
