package main

import (
	"context"
	"net/http"
	"os/signal"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gopkg.in/tomb.v2"

	"bstviz/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	cfg := server.DefaultConfig()
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree over HTTP.",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&addr, "addr", "0.0.0.0:8000", "Address to listen on.")
	cmd.Flags().StringSliceVar(&cfg.AllowedOrigins, "origin", cfg.AllowedOrigins, "Origins allowed to make CORS requests.")
	cmd.Flags().IntVar(&cfg.RandomMin, "random-min", cfg.RandomMin, "Smallest value of a random tree.")
	cmd.Flags().IntVar(&cfg.RandomMax, "random-max", cfg.RandomMax, "Largest value of a random tree.")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 0, "Random tree seed. 0 seeds from the clock.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		log, err := opts.logger()
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srv, err := server.New(cfg, log, reg)
		if err != nil {
			return err
		}

		httpSrv := &http.Server{
			Addr:              addr,
			Handler:           srv,
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
		defer stop()

		var t tomb.Tomb
		t.Go(func() error {
			log.Info("listening", "addr", addr)
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "listening on %s", addr)
			}
			return nil
		})
		t.Go(func() error {
			select {
			case <-ctx.Done():
				log.Info("shutting down")
			case <-t.Dying():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})
		return t.Wait()
	}
	return cmd
}
