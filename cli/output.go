// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func outputFormat(cmd *cobra.Command) (string, error) {
	f, _ := cmd.Flags().GetString("output")

	switch f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, f)
	}
}

// render writes v in the selected output format, calling text for the
// human-readable one.
func render(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	f, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case formatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}

		_, err = w.Write(out)

		return err
	default:
		return text(w)
	}
}
