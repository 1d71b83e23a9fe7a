package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/aleister1102/urlchecker/internal/datastore"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/aleister1102/urlchecker/internal/reporter"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

var errHistoryDisabled = errors.New("check history is disabled (storage_config.enable_history)")

func newHistoryCommand(a *app) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history <url>",
		Short: "Show recent check cycles of a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.StorageConfig.EnableHistory {
				return errHistoryDisabled
			}
			store, err := datastore.NewParquetCheckHistoryStore(a.cfg.StorageConfig.HistoryDir, a.cfg.StorageConfig.HistoryMaxRecords, a.logger)
			if err != nil {
				return err
			}

			records, err := store.List(cmd.Context(), datastore.DeriveKey(args[0]), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No history for %s\n", args[0])
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CHECKED AT\tOUTCOME\tSIZE\tLINES\tDETAIL")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%d\t+%d -%d\t%s\n",
					r.CheckedAt.UTC().Format("2006-01-02 15:04:05"), r.Outcome, r.ContentSize, r.LinesAdded, r.LinesDeleted, historyDetail(r))
			}
			return w.Flush()
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of records to show, 0 for all")
	return historyCmd
}

func historyDetail(r models.CheckHistoryRecord) string {
	if r.Error != "" {
		return r.Error
	}
	return r.ReportPath
}

func newReportsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List saved diff reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := reporter.NewDiffReportWriter(a.cfg.DiffReporterConfig, a.logger)
			if writer == nil {
				return errors.New("saving diff reports is disabled (diff_reporter_config.save_reports)")
			}
			paths, err := writer.ListReports()
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
