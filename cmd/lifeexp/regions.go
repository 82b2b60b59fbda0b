package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lifeexp/internal/catalog"
	"lifeexp/internal/config"
	"lifeexp/internal/pipeline"
)

func newRegionsCmd(cfg *config.Config) *cobra.Command {
	var countriesOnly bool
	var from, format string

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List valid region codes, or the codes found in a raw feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())

			if from != "" || format != "" {
				found, err := pipeline.NewProcessingService(*cfg).DiscoverRegions(format, from)
				if err != nil {
					return err
				}
				t.AppendHeader(table.Row{"code", "known", "aggregate", "rows"})
				for _, r := range found {
					aggregate := r.Known && catalog.Region(r.Code).IsAggregate()
					t.AppendRow(table.Row{r.Code, r.Known, aggregate, r.Rows})
				}
				t.Render()
				return nil
			}

			regions := catalog.Regions()
			if countriesOnly {
				regions = catalog.Countries()
			}
			t.AppendHeader(table.Row{"code", "aggregate"})
			for _, r := range regions {
				t.AppendRow(table.Row{r.String(), r.IsAggregate()})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&countriesOnly, "countries", false, "exclude aggregate regions (EU, EEA, EFTA, euro area, DE_TOT)")
	cmd.Flags().StringVar(&from, "from", "", "list the region codes present in this raw feed")
	cmd.Flags().StringVarP(&format, "format", "f", "", "source format of --from: tsv|zip|html")
	return cmd
}
