package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lifeexp/internal/config"
	"lifeexp/internal/pipeline"
)

func newCleanCmd(cfg *config.Config) *cobra.Command {
	var req pipeline.Request

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the raw table and write one region",
		Example: `  lifeexp clean --region PT
  lifeexp clean --format zip --input data/eu_life_expectancy.zip --region FR --output-format xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := pipeline.NewProcessingService(*cfg).Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Format, "format", "f", "", "source format: tsv|zip|html (default from config, tsv)")
	cmd.Flags().StringVarP(&req.Region, "region", "r", "", "region code, e.g. PT, ES, FR (default from config, PT)")
	cmd.Flags().StringVarP(&req.Input, "input", "i", "", "raw source path (default <data dir>/eu_life_expectancy_raw.<format>)")
	cmd.Flags().StringVarP(&req.Output, "output", "o", "", "output path (default <output dir>/<region>_life_expectancy.<ext>)")
	cmd.Flags().StringVar(&req.OutputFormat, "output-format", "", "output format: csv|xlsx|sqlite (default from config, csv)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"tsv", "zip", "html"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("output-format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"csv", "xlsx", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func printResult(w io.Writer, res pipeline.Result) {
	fmt.Fprintf(w, "cleaned %d rows for %s from %s\n", res.Rows, res.Region, res.Input)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"run", "rows", "years", "min", "mean", "max", "output"})
	years := "-"
	if res.Summary.Rows > 0 {
		years = fmt.Sprintf("%d-%d", res.Summary.FirstYear, res.Summary.LastYear)
	}
	t.AppendRow(table.Row{
		res.RunID, res.Rows, years,
		fmt.Sprintf("%.1f", res.Summary.Min),
		fmt.Sprintf("%.2f", res.Summary.Mean),
		fmt.Sprintf("%.1f", res.Summary.Max),
		res.Output,
	})
	t.Render()
}
