package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"capcorpus/internal/config"
	"capcorpus/internal/corpus"
	"capcorpus/internal/logging"
)

const combinedFileName = "combined.json"

func newCombineCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "combine [dir]",
		Short: "Concatenate labeled files into one corpus file",
		Long: "Read every labeled JSON file in dir (the labeled stage directory by default) in\n" +
			"name order and write one file. Duplicate video ids keep their first record.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			dir := cfg.StageDir(cfg.LabeledStage())
			if len(args) == 1 {
				if dir, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}
			target := strings.TrimSpace(output)
			if target == "" {
				target = filepath.Join(cfg.CombinedDir(), combinedFileName)
			} else if target, err = config.ExpandPath(target); err != nil {
				return err
			}

			records, summary, err := corpus.Combine(dir)
			if err != nil {
				return err
			}
			if err := corpus.WriteRecords(target, records, cfg.Labeling.VideoIDAsIndex); err != nil {
				return err
			}
			logger.Info("corpus combined",
				logging.String("dir", dir),
				logging.String("output", target),
				logging.Int("files", len(summary.Files)),
				logging.Int("rows", summary.Rows),
				logging.Int("duplicates", summary.Duplicates),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Combined %d rows from %d files (%d duplicates dropped) -> %s\n",
				summary.Rows, len(summary.Files), summary.Duplicates, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Combined output file")
	return cmd
}
