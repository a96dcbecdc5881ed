// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/config"
)

type versionInfo struct {
	Version  string `json:"version"  yaml:"version"`
	Revision string `json:"revision" yaml:"revision"`
	Go       string `json:"go"       yaml:"go"`
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Show the l10n release and the VCS revision the binary was built from.",
		Example: `  # Show version
  l10n version

  # Machine-readable
  l10n version -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			build := config.Build()
			info := versionInfo{
				Version:  config.BuildVersion,
				Revision: build.Revision(),
				Go:       build.GoVersion,
			}

			return render(cmd, info, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "l10n %s (revision: %s, go: %s)\n", info.Version, info.Revision, info.Go)

				return err
			})
		},
	}
}
