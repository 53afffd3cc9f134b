package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"rvj/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent export runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No export runs recorded")
				return nil
			}

			headers := []string{"ID", "STARTED", "CLIPS", "STATUS", "ELAPSED", "OUTPUT", "ERROR"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, historyRow(run))
			}
			fmt.Fprintln(out, renderTable(headers, rows, 2, 4))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.AddCommand(newHistoryClearCommand(ctx))

	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded export runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Export history cleared")
			return nil
		},
	}
}

func historyRow(run history.Run) []string {
	return []string{
		shortID(run.ID),
		run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		strconv.Itoa(run.ClipCount),
		run.Status,
		formatElapsed(run),
		run.OutputPath,
		run.ErrorMessage,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatElapsed(run history.Run) string {
	elapsed := run.Elapsed()
	if elapsed <= 0 {
		return "-"
	}
	return elapsed.Round(100 * time.Millisecond).String()
}
