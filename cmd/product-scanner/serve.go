package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/product-scanner-simulator/internal/config"
	httpapi "github.com/fairyhunter13/product-scanner-simulator/internal/http"
	"github.com/fairyhunter13/product-scanner-simulator/internal/obs"
	"github.com/fairyhunter13/product-scanner-simulator/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve scan, lookup and catalog endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load())
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	obs.Logger.Info("service_starting")
	st, err := store.Open(cfg.CatalogFile)
	if err != nil {
		return err
	}
	app, err := httpapi.NewApp(cfg, st)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			obs.Logger.Error("http_server_error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
		obs.Logger.Info("shutdown_signal")
	}

	app.StartShutdown()
	ctxSrv, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
		return err
	}
	obs.Logger.Info("service_stopped")
	return nil
}
