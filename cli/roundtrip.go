// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/core/ts"
)

type roundtripResult struct {
	File      string `json:"file"      yaml:"file"`
	Messages  int    `json:"messages"  yaml:"messages"`
	Equal     bool   `json:"equal"     yaml:"equal"`
	Identical bool   `json:"identical" yaml:"identical"`
}

func newRoundtripCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Check that a catalog survives decoding and re-encoding",
		Long: `Decode a catalog, encode it again in lupdate's layout and decode the result.
The command fails if any translation changed on the way.

The output also tells whether the re-encoded document is byte-identical to the
original. Relative location lines are written as absolute ones, so files
written by lupdate with relative lines are equal but not identical.`,
		Example: `  # Check a catalog
  l10n roundtrip locales/app_it_it.ts

  # Normalise a catalog into a new file
  l10n roundtrip locales/app_it_it.ts --write app_it_it.normalized.ts.gz`,
		Args: cobra.ExactArgs(1),
		RunE: runRoundtrip,
	}

	cmd.Flags().StringP("write", "w", "", "Write the re-encoded catalog to this path (.ts, .ts.gz or .ts.zst)")

	return cmd
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	path := args[0]
	out, _ := cmd.Flags().GetString("write")

	cat, err := ts.Load(path)
	if err != nil {
		return err
	}

	encoded, err := cat.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	again, err := ts.Parse(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to decode re-encoded %s: %w", path, err)
	}

	res := roundtripResult{
		File:     path,
		Messages: cat.Len(),
		Equal:    ts.Equal(cat, again),
	}

	if strings.HasSuffix(path, ".ts") {
		if original, err := os.ReadFile(path); err == nil { // #nosec G304 -- path is a command argument
			res.Identical = bytes.Equal(original, encoded)
		}
	}

	if out != "" {
		if err := cat.Save(out); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}

		log.Info().Str("sys", "cli").Str("path", out).Msg("Wrote re-encoded catalog")
	}

	if err := render(cmd, res, func(w io.Writer) error {
		switch {
		case !res.Equal:
			fmt.Fprintf(w, "%s: translations changed after re-encoding\n", res.File)
		case res.Identical:
			fmt.Fprintf(w, "%s: ok, %d messages, byte-identical\n", res.File, res.Messages)
		default:
			fmt.Fprintf(w, "%s: ok, %d messages\n", res.File, res.Messages)
		}

		return nil
	}); err != nil {
		return err
	}

	if !res.Equal {
		return &ExitError{Code: 1, Err: errMismatch}
	}

	return nil
}
