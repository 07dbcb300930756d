// Package main is the product scanner simulator: by default it scans once,
// writes the identifier file and exits; subcommands serve and inspect it.
package main

import (
	"os"

	"github.com/fairyhunter13/product-scanner-simulator/internal/obs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		obs.Logger.Error("command_failed", "error", err)
		os.Exit(1)
	}
}
