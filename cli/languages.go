// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/i18n"
)

type languagesResult struct {
	Base      string   `json:"base"      yaml:"base"`
	Supported []string `json:"supported" yaml:"supported"`
	Selected  string   `json:"selected"  yaml:"selected"`
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Long: `Load the configured catalogs, the embedded ones unless catalog.dir is set, and
list the languages they provide. The selected language is the one the
application would use: settings.language if set, otherwise the best match for
LC_ALL, LC_MESSAGES and LANG.`,
		Example: `  # Languages of the embedded catalogs
  l10n languages

  # What would an Italian desktop get?
  LANG=it_IT.UTF-8 l10n languages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := i18n.Start(cmd.Context()); err != nil {
				return err
			}

			res := languagesResult{
				Base:     i18n.Base().String(),
				Selected: i18n.FromEnvironment().String(),
			}

			for _, tag := range i18n.Languages() {
				res.Supported = append(res.Supported, tag.String())
			}

			return render(cmd, res, func(w io.Writer) error {
				for _, tag := range res.Supported {
					marker := " "
					if tag == res.Selected {
						marker = "*"
					}

					fmt.Fprintf(w, "%s %s\n", marker, tag)
				}

				return nil
			})
		},
	}
}
