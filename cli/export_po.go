// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"
	"os"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/core/ts"
)

const poFilePermissions = 0o644

func newExportPOCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-po <file>",
		Short: "Convert a catalog to a gettext PO file",
		Long: `Convert a catalog to gettext PO, for translators working with PO editors.

Each context becomes a msgctxt. Messages disambiguated by a comment use
"context|comment" as msgctxt, as lconvert does. Numerus messages become plural
entries. Vanished and obsolete messages are not exported.`,
		Example: `  # Print the PO file
  l10n export-po locales/app_it_it.ts

  # Write it to a file, leaving unfinished translations empty
  l10n export-po locales/app_it_it.ts --finished-only -O it.po`,
		Args: cobra.ExactArgs(1),
		RunE: runExportPO,
	}

	cmd.Flags().StringP("out", "O", "", "Write the PO file to this path instead of stdout")
	cmd.Flags().Bool("finished-only", false, "Leave unfinished translations empty")

	return cmd
}

func runExportPO(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	finishedOnly, _ := cmd.Flags().GetBool("finished-only")

	cat, err := ts.Load(args[0])
	if err != nil {
		return err
	}

	data, err := toPO(cat, finishedOnly).MarshalText()
	if err != nil {
		return fmt.Errorf("failed to encode PO: %w", err)
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)

		return err
	}

	if err := os.WriteFile(out, data, poFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	log.Info().Str("sys", "cli").Str("path", out).Int("messages", cat.Len()).Msg("Exported PO file")

	return nil
}

// toPO converts the current messages of cat to a gettext catalog.
func toPO(cat *ts.Catalog, finishedOnly bool) *gotext.Po {
	po := gotext.NewPo()

	for c, m := range cat.All() {
		switch m.Status {
		case ts.Vanished, ts.Obsolete:
			continue
		case ts.Unfinished:
			if finishedOnly {
				m = &ts.Message{Source: m.Source, Comment: m.Comment, Numerus: m.Numerus}
			}
		}

		msgctxt := c.Name
		if m.Comment != "" {
			msgctxt += "|" + m.Comment
		}

		if !m.Numerus {
			if msgctxt == "" {
				po.Set(m.Source, m.Translation)
			} else {
				po.SetC(m.Source, msgctxt, m.Translation)
			}

			continue
		}

		forms := m.Forms()
		if len(forms) == 0 {
			forms = []string{""}
		}

		for i, form := range forms {
			if msgctxt == "" {
				po.SetN(m.Source, m.Source, i, form)
			} else {
				po.SetNC(m.Source, m.Source, msgctxt, i, form)
			}
		}
	}

	return po
}
