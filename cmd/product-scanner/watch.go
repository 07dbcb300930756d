package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/product-scanner-simulator/internal/config"
	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
	"github.com/fairyhunter13/product-scanner-simulator/internal/store"
	"github.com/fairyhunter13/product-scanner-simulator/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print product information whenever the product id file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			st, err := store.Open(cfg.CatalogFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w, err := watch.New(cfg.ProductIDFile, cfg.WatchDebounce, func(id model.ProductID) {
				printProduct(out, id, st)
			})
			if err != nil {
				return err
			}
			defer w.Close()
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
