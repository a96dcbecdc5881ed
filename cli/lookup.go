// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/config"
	"codeberg.org/tatoolbox/l10n/core/placeholder"
	"codeberg.org/tatoolbox/l10n/core/ts"
)

type lookupResult struct {
	Language string   `json:"language"          yaml:"language"`
	Text     string   `json:"text"              yaml:"text"`
	Found    bool     `json:"found"             yaml:"found"`
	Status   string   `json:"status,omitempty"  yaml:"status,omitempty"`
	Missing  string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

func newLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <file> <context> <source>",
		Short: "Translate one message",
		Long: `Translate one message the way the application does at runtime: resolve the
best translation under the configured lookup policy, pick the plural form for
--count if given, and fill placeholders from --arg values.

Placeholders without a value are left as written and listed as missing.`,
		Example: `  # Plain lookup
  l10n lookup locales/app_it_it.ts AnimationPreviewWindow Close

  # Named placeholders
  l10n lookup locales/app_it_it.ts AnimationPreviewWindow "Frame {current} of {total}" \
    --arg current=2 --arg total=9

  # Numerus message
  l10n lookup locales/app_pl.ts AnimationPreviewWindow "%n frame(s) exported" --count 5`,
		Args: cobra.ExactArgs(3),
		RunE: runLookup,
	}

	cmd.Flags().String("comment", "", "Disambiguation comment")
	cmd.Flags().IntP("count", "n", 0, "Count selecting the plural form of a numerus message")
	cmd.Flags().StringArrayP("arg", "a", nil, "Placeholder value as name=value (repeatable)")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	comment, _ := cmd.Flags().GetString("comment")
	count, _ := cmd.Flags().GetInt("count")
	rawArgs, _ := cmd.Flags().GetStringArray("arg")

	vars, err := parseVars(rawArgs)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(args[0])
	if err != nil {
		return err
	}

	var res ts.Resolution

	if cmd.Flags().Changed("count") {
		res = cat.ResolveN(args[1], args[2], comment, count)

		if _, ok := vars["n"]; !ok {
			vars["n"] = count
		}
	} else {
		res = cat.Resolve(args[1], args[2], comment)
	}

	out := lookupResult{
		Language: cat.Language,
		Found:    res.Found(),
	}

	if res.Found() {
		out.Status = res.Message.Status.String()
	}

	text, err := placeholder.FormatLocale(cat.LanguageTag(), res.Text, vars)
	out.Text = text

	var missing *placeholder.MissingArgumentError
	if errors.As(err, &missing) {
		out.Missing = missing.Raw
	} else if err != nil {
		return err
	}

	return render(cmd, out, func(w io.Writer) error {
		fmt.Fprintln(w, out.Text)

		if out.Missing != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "missing placeholder argument: %s\n", out.Missing)
		}

		return nil
	})
}

// parseVars turns name=value pairs into placeholder values. Values that parse
// as numbers are passed as numbers so that localized placeholders such as %L1
// format them.
func parseVars(pairs []string) (placeholder.Vars, error) {
	vars := make(placeholder.Vars, len(pairs))

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", errBadArgument, pair)
		}

		if i, err := strconv.Atoi(value); err == nil {
			vars[name] = i
		} else if f, err := strconv.ParseFloat(value, 64); err == nil {
			vars[name] = f
		} else {
			vars[name] = value
		}
	}

	return vars, nil
}

// loadCatalog loads path and applies the configured lookup policy.
func loadCatalog(path string) (*ts.Catalog, error) {
	cat, err := ts.Load(path)
	if err != nil {
		return nil, err
	}

	cat.Policy, _ = ts.ParsePolicy(config.Global.Catalog.Policy)

	return cat, nil
}
