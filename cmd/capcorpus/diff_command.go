package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"capcorpus/internal/classify"
	"capcorpus/internal/config"
	"capcorpus/internal/corpus"
	"capcorpus/internal/expand"
	"capcorpus/internal/transcript"
)

func newDiffCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var changedOnly bool

	cmd := &cobra.Command{
		Use:   "diff <autogen-file> <manual-file>",
		Short: "Align two local caption files and print the slot table",
		Long: "Align an auto-generated and a manual transcript (SRT, json3, a JSON line array,\n" +
			"or plain text) and print one row per slot with its agreement and label.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			autogen, err := transcript.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("autogen file: %w", err)
			}
			manual, err := transcript.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("manual file: %w", err)
			}

			local := *cfg
			local.Labeling.PostprocColumnsOnly = false
			local.Labeling.MinSimilarity = 0
			labeler, err := corpus.NewLabeler(&local, logger)
			if err != nil {
				return err
			}
			rec, err := labeler.LabelRow(corpus.RawRecord{
				VideoID: filepath.Base(args[0]),
				Autogen: autogen,
				Manual:  manual,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, rec)
			}

			rows, err := slotRows(&local, rec, changedOnly)
			if err != nil {
				return err
			}
			writeRows(cmd.OutOrStdout(),
				[]string{"Slot", "Agreement", "Common", "Autogen", "Manual", "Repeat", "Correction", "Category"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the labeled record as JSON")
	cmd.Flags().BoolVar(&changedOnly, "changed", false, "Only print slots where the transcripts differ")
	return cmd
}

func slotRows(cfg *config.Config, rec corpus.Record, changedOnly bool) ([][]string, error) {
	mode, err := classify.ParseMode(cfg.Labeling.Mode)
	if err != nil {
		return nil, err
	}
	labels := cfg.Labels.Agreement
	scheme := cfg.Labels.Categories

	rows := make([][]string, 0, rec.Len())
	for i := 0; i < rec.Len(); i++ {
		agreement, err := labels.Agreement(rec.IsAutogenUnique[i])
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		category, err := scheme.Category(mode, rec.Labels[i])
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		if changedOnly && agreement == expand.BothAgree {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			agreement.String(),
			rec.CommonToBoth[i],
			rec.AutogenSeq[i],
			rec.ManualSeq[i],
			strconv.Itoa(rec.ManualAddlRep[i]),
			rec.CorrectionSeq[i],
			category.String(),
		})
	}
	return rows, nil
}
