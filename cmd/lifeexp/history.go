package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lifeexp/internal/config"
	"lifeexp/internal/storage"
)

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var limit int
	var dbPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in a SQLite output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				dbPath = cfg.DBPath
			}
			if limit <= 0 {
				limit = cfg.HistoryLimit
			}
			db, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.ListRuns(limit)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"run", "created", "region", "format", "rows", "source"})
			for _, r := range runs {
				t.AppendRow(table.Row{r.ID, r.CreatedAt, r.Region, r.Format, r.Rows, r.Source})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of runs to show (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file written with --output-format sqlite (default from config)")
	return cmd
}
