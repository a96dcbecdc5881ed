// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package cli implements the l10n command line: inspection and conversion of
Qt Linguist .ts catalogs, and a hot-reloading catalog watcher.
*/
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/config"
)

//nolint:gochecknoinits // cobra reads this before any command runs
func init() {
	cobra.EnableTraverseRunHooks = true
}

// NewRootCommand creates the root l10n command with every subcommand attached.
// Exported for testability (SetArgs/SetOut).
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "l10n",
		Short: "Qt Linguist catalog toolkit",
		Long: `Inspect, check and convert the Qt Linguist (.ts) translation catalogs
of TextureAtlas Toolbox.`,
		Version:       config.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := outputFormat(cmd); err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("config")
			if err := config.Global.LoadConfig(path); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log.Debug().Str("sys", "cli").Str("command", cmd.CommandPath()).Msg("Running command")

			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringP("output", "o", formatText, "Output format: text, json, yaml")

	rootCmd.AddCommand(
		newLintCommand(),
		newLookupCommand(),
		newStatsCommand(),
		newRoundtripCommand(),
		newExportPOCommand(),
		newWatchCommand(),
		newLanguagesCommand(),
		newVersionCommand(),
	)

	return rootCmd
}
