package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"capcorpus/internal/harvest"
)

func addFetchFlags(cmd *cobra.Command, opts *fetchOptions) {
	cmd.Flags().StringVar(&opts.channel, "channel", "", "Channel name to search for (overrides youtube.channel_name)")
	cmd.Flags().StringVar(&opts.stopAfter, "stop-after", "", "Stop after the channel, playlists, or videos stage")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "Discard stored page tokens and list playlists and videos again")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Accept the first channel search hit without asking")
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Harvest caption pairs from a YouTube channel",
		Long: "Resolve a channel, list its playlists and videos, and download the auto-generated\n" +
			"and manual caption tracks of every video. Interrupted runs resume from the store.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.in = cmd.InOrStdin()
			opts.out = cmd.OutOrStdout()
			return ctx.withSession(cmd.Context(), "fetch", func(runCtx context.Context, s *session) (string, error) {
				res, err := runFetch(runCtx, s, opts)
				if err != nil {
					return "", err
				}
				summary := fetchSummary(res)
				fmt.Fprintln(cmd.OutOrStdout(), summary)
				if res.StoppedAt != harvest.StopNone {
					fmt.Fprintf(cmd.OutOrStdout(), "Stopped after the %s stage\n", res.StoppedAt)
				}
				return summary, nil
			})
		},
	}
	addFetchFlags(cmd, &opts)
	return cmd
}
