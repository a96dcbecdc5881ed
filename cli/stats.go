// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codeberg.org/tatoolbox/l10n/core/ts"
)

type statsResult struct {
	File     string   `json:"file"     yaml:"file"`
	Stats    ts.Stats `json:"stats"    yaml:"stats"`
	Progress float64  `json:"progress" yaml:"progress"`
}

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>...",
		Short: "Show translation progress",
		Long: `Count the messages of each catalog by status and show the share of current
messages that is finished. Vanished and obsolete messages do not count towards
progress.`,
		Example: `  # Progress of every catalog
  l10n stats locales/*.ts

  # Break down by context
  l10n stats --contexts locales/app_it_it.ts`,
		Args: cobra.MinimumNArgs(1),
		RunE: runStats,
	}

	cmd.Flags().Bool("contexts", false, "Show a row per context")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	perContext, _ := cmd.Flags().GetBool("contexts")

	results := make([]statsResult, 0, len(args))

	for _, path := range args {
		cat, err := ts.Load(path)
		if err != nil {
			return err
		}

		st := cat.Stats()
		results = append(results, statsResult{File: path, Stats: st, Progress: st.Counts.Progress()})
	}

	return render(cmd, results, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		fmt.Fprintln(tw, "FILE\tLANGUAGE\tCONTEXT\tFINISHED\tUNFINISHED\tVANISHED\tOBSOLETE\tPROGRESS")

		for _, res := range results {
			writeCounts(tw, res.File, res.Stats.Language, "*", res.Stats.Counts)

			if !perContext {
				continue
			}

			for _, name := range slices.Sorted(maps.Keys(res.Stats.Contexts)) {
				writeCounts(tw, res.File, res.Stats.Language, name, res.Stats.Contexts[name])
			}
		}

		return tw.Flush()
	})
}

func writeCounts(w io.Writer, file, language, context string, c ts.Counts) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.0f%%\n",
		file, language, context, c.Finished, c.Unfinished, c.Vanished, c.Obsolete, c.Progress()*100)
}
