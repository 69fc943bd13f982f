package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"capcorpus/internal/harvest"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var fetch fetchOptions
	var label labelOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch a channel and label its caption pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch.in = cmd.InOrStdin()
			fetch.out = cmd.OutOrStdout()
			out := cmd.OutOrStdout()
			return ctx.withSession(cmd.Context(), "run", func(runCtx context.Context, s *session) (string, error) {
				res, err := runFetch(runCtx, s, fetch)
				if err != nil {
					return "", err
				}
				fetchLine := fetchSummary(res)
				fmt.Fprintln(out, fetchLine)
				if res.StoppedAt != harvest.StopNone {
					fmt.Fprintf(out, "Stopped after the %s stage; skipping labeling\n", res.StoppedAt)
					return fetchLine, nil
				}

				outcome, err := runLabel(runCtx, s, label)
				if err != nil {
					return "", err
				}
				printLabelOutcome(cmd, outcome)
				return fetchLine + "; " + labelSummaryLine(outcome), nil
			})
		},
	}

	addFetchFlags(cmd, &fetch)
	cmd.Flags().StringVarP(&label.output, "output", "o", "", "Labeled output file")
	cmd.Flags().BoolVarP(&label.force, "force", "f", false, "Relabel even when the output file exists")
	return cmd
}
