package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"capcorpus/internal/classify"
	"capcorpus/internal/config"
	"capcorpus/internal/corpus"
	"capcorpus/internal/expand"
	"capcorpus/internal/textutil"
)

type statsView struct {
	File        string         `json:"file"`
	Rows        int            `json:"rows"`
	Slots       int            `json:"slots"`
	Corrections int            `json:"corrections"`
	Categories  map[string]int `json:"categories"`
	Agreement   map[string]int `json:"agreement,omitempty"`
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats [labeled-file]",
		Short: "Summarize the labels of a labeled corpus file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.StagePath(cfg.LabeledStage(), textutil.FileStem(cfg.YouTube.ChannelName))
			if len(args) == 1 {
				if path, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}
			mode, err := classify.ParseMode(cfg.Labeling.Mode)
			if err != nil {
				return err
			}

			records, err := corpus.ReadRecords(path)
			if err != nil {
				return err
			}
			summary, err := corpus.Summarize(records, mode, cfg.Labels.Categories, cfg.Labels.Agreement)
			if err != nil {
				return err
			}

			view := statsView{
				File:        path,
				Rows:        summary.Rows,
				Slots:       summary.Slots,
				Corrections: summary.Corrections,
				Categories:  make(map[string]int, len(summary.Categories)),
			}
			for category, n := range summary.Categories {
				view.Categories[category.String()] = n
			}
			if len(summary.Agreement) > 0 {
				view.Agreement = make(map[string]int, len(summary.Agreement))
				for agreement, n := range summary.Agreement {
					view.Agreement[agreement.String()] = n
				}
			}
			if jsonOutput {
				return writeJSON(cmd, view)
			}
			printStats(cmd, cfg, mode, summary, view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
	return cmd
}

func printStats(cmd *cobra.Command, cfg *config.Config, mode classify.Mode, summary corpus.Summary, view statsView) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File: %s\n", view.File)
	fmt.Fprintf(out, "Rows: %d  Slots: %d  Corrections: %d\n", view.Rows, view.Slots, view.Corrections)

	categories := classify.Categories()
	if mode == classify.ModeSimple {
		categories = []classify.Category{classify.None, classify.SimpleDiff}
	} else {
		categories = categories[:len(categories)-1]
	}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			c.String(),
			strconv.Itoa(cfg.Labels.Categories.Value(c)),
			strconv.Itoa(summary.Categories[c]),
			percent(summary.Categories[c], summary.Slots),
		})
	}
	writeRows(out, []string{"Category", "Label", "Slots", "Share"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight})

	if len(summary.Agreement) == 0 {
		return
	}
	agreements := []expand.Agreement{expand.BothAgree, expand.AutogenInsert, expand.BothDiffer, expand.ManualInsert}
	rows = rows[:0]
	for _, a := range agreements {
		rows = append(rows, []string{
			a.String(),
			strconv.Itoa(cfg.Labels.Agreement.Value(a)),
			strconv.Itoa(summary.Agreement[a]),
			percent(summary.Agreement[a], summary.Slots),
		})
	}
	fmt.Fprintln(out)
	writeRows(out, []string{"Agreement", "Label", "Slots", "Share"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight})
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
