// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/core/ts"
)

type lintIssue struct {
	Severity string `json:"severity"       yaml:"severity"`
	Kind     string `json:"kind"           yaml:"kind"`
	Context  string `json:"context"        yaml:"context"`
	Source   string `json:"source"         yaml:"source"`
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Detail   string `json:"detail"         yaml:"detail"`
	text     string
}

type lintResult struct {
	File   string      `json:"file"            yaml:"file"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
	Issues []lintIssue `json:"issues"          yaml:"issues"`
}

func newLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <file>...",
		Short: "Check catalogs for problems",
		Long: `Check catalogs for problems that break the UI at runtime: placeholder
mismatches between source and translation, conflicting translations of the same
message, finished messages without text and numerus messages with the wrong
number of plural forms. Decode warnings, such as unknown translation types, are
reported too.

The command fails if any file cannot be parsed or has an error-level issue.`,
		Example: `  # Lint every catalog
  l10n lint locales/*.ts

  # Treat warnings as errors in CI
  l10n lint -W locales/*.ts`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLint,
	}

	cmd.Flags().BoolP("warnings-as-errors", "W", false, "Fail on warnings too")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("warnings-as-errors")

	results := make([]lintResult, 0, len(args))
	failed := false

	for _, path := range args {
		res := lintResult{File: path, Issues: []lintIssue{}}

		cat, err := ts.Load(path)
		if err != nil {
			res.Error = err.Error()
			failed = true
			results = append(results, res)

			continue
		}

		issues := ts.Lint(cat)
		if ts.HasErrors(issues) || (strict && len(issues) > 0) {
			failed = true
		}

		for _, i := range issues {
			res.Issues = append(res.Issues, lintIssue{
				Severity: i.Severity.String(),
				Kind:     i.Kind,
				Context:  i.Context,
				Source:   i.Source,
				File:     i.Location.File,
				Line:     i.Location.Line,
				Detail:   i.Detail,
				text:     i.String(),
			})
		}

		results = append(results, res)
	}

	err := render(cmd, results, func(w io.Writer) error {
		for _, res := range results {
			switch {
			case res.Error != "":
				fmt.Fprintf(w, "%s: %s\n", res.File, res.Error)
			case len(res.Issues) == 0:
				fmt.Fprintf(w, "%s: ok\n", res.File)
			}

			for _, i := range res.Issues {
				fmt.Fprintf(w, "%s: %s\n", res.File, i.text)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if failed {
		return &ExitError{Code: 1, Err: errLintFailed}
	}

	return nil
}
