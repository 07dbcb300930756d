package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/product-scanner-simulator/internal/config"
	"github.com/fairyhunter13/product-scanner-simulator/internal/idfile"
	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
	"github.com/fairyhunter13/product-scanner-simulator/internal/store"
)

const noProductLine = "No product ID found."

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup",
		Short: "Resolve the last scanned id against the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			st, err := store.Open(cfg.CatalogFile)
			if err != nil {
				return err
			}
			return lookup(cmd.OutOrStdout(), cfg.ProductIDFile, st)
		},
	}
}

func lookup(w io.Writer, path string, st *store.Store) error {
	id, ok, err := idfile.Read(path)
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, noProductLine)
		return nil
	}
	printProduct(w, id, st)
	return nil
}

func printProduct(w io.Writer, id model.ProductID, st *store.Store) {
	_, _ = fmt.Fprintf(w, "Scanned Product ID: %s\n", id)
	_, _ = fmt.Fprintf(w, "Product Information: %s\n", st.Info(id))
}
