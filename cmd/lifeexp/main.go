package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifeexp/internal/config"
	"lifeexp/internal/logging"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "lifeexp",
		Short: "Clean Eurostat life expectancy tables",
		Long: `lifeexp normalizes the Eurostat life expectancy by region table into the
long format unit,sex,age,region,year,value and keeps the rows of one region.

Sources can be the tab-separated wide table, a zip archive holding the JSON
record export, or an HTML export of the wide table.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCleanCmd(&cfg))
	root.AddCommand(newRegionsCmd(&cfg))
	root.AddCommand(newHistoryCmd(&cfg))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
