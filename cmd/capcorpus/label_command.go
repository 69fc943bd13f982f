package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newLabelCommand(ctx *commandContext) *cobra.Command {
	var opts labelOptions
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "label [raw-file]",
		Short: "Align and label harvested caption pairs",
		Long: "Read a raw transcripts file (the configured channel's by default), align each\n" +
			"caption pair, and write labeled records to the labeled stage directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			return ctx.withSession(cmd.Context(), "label", func(runCtx context.Context, s *session) (string, error) {
				outcome, err := runLabel(runCtx, s, opts)
				if err != nil {
					return "", err
				}
				if jsonOutput {
					return labelSummaryLine(outcome), writeJSON(cmd, outcome)
				}
				printLabelOutcome(cmd, outcome)
				return labelSummaryLine(outcome), nil
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Labeled output file")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Relabel even when the output file exists")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the outcome as JSON")
	return cmd
}

func printLabelOutcome(cmd *cobra.Command, o labelOutcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, labelSummaryLine(o))
	if o.Cached {
		fmt.Fprintln(out, "Use --force to relabel")
		return
	}
	kinds := make([]string, 0, len(o.Summary.DropKinds))
	for kind := range o.Summary.DropKinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(out, "  dropped %s: %d\n", kind, o.Summary.DropKinds[kind])
	}
}
