package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pygacity/sandlersteam/internal/cliconfig"
	"github.com/pygacity/sandlersteam/internal/server"
	"github.com/pygacity/sandlersteam/internal/tableset"
	"github.com/pygacity/sandlersteam/pkg/log"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve state resolution over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := server.NewMetrics(nil)
			if err != nil {
				return err
			}
			reg, err := a.registry(tableset.WithReloadHook(metrics.ReloadHook()))
			if err != nil {
				return err
			}
			a.logger.Info("tables loaded",
				log.String("source", reg.Source()),
				log.Bool("liquid_approximation", a.cfg.LiquidApproximation))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, ctx := errgroup.WithContext(ctx)

			srv := server.New(reg, metrics, a.logger)
			g.Go(func() error {
				return srv.Run(ctx, a.cfg.ListenAddr, a.cfg.ShutdownTimeout)
			})

			if a.cfg.Watch {
				if a.cfg.TablesDir == "" {
					a.logger.Warn("--watch ignored: embedded tables cannot change")
				} else {
					w := tableset.NewWatcher(a.cfg.TablesDir, reg, a.cfg.WatchDebounce, a.logger)
					g.Go(func() error { return w.Run(ctx) })
				}
			}
			return g.Wait()
		},
	}
	cliconfig.BindServeFlags(cmd.Flags(), &a.cfg)
	return cmd
}
