package main

import (
	"github.com/spf13/cobra"

	"github.com/fairyhunter13/product-scanner-simulator/internal/config"
	"github.com/fairyhunter13/product-scanner-simulator/internal/obs"
	"github.com/fairyhunter13/product-scanner-simulator/internal/scan"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "product-scanner",
		Short: "Simulate a product scan and write the id to product_id.txt",
		Long: `Simulates scanning a product: prints the scanned id, writes it to the
product id file (product_id.txt by default) and prints a confirmation.

Arguments are ignored. The scan always exits 0, even when the file cannot
be written.`,
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			obs.InitLoggerTo(cmd.ErrOrStderr(), config.Load().LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			f := scan.New(cmd.OutOrStdout(), cfg.ProductIDFile)
			f.Source = scan.FixedSource(cfg.ProductID)
			f.Run()
			return nil
		},
	}
	root.AddCommand(newServeCmd(), newLookupCmd(), newWatchCmd())
	return root
}
