package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pygacity/sandlersteam/internal/cliconfig"
	"github.com/pygacity/sandlersteam/internal/tableset"
	"github.com/pygacity/sandlersteam/pkg/log"
	"github.com/pygacity/sandlersteam/pkg/resolver"
)

const longHelp = `
Look up the thermodynamic state of water and steam from two independent
properties, using the saturated, superheated and subcooled property tables.

Properties: T (C), P (MPa), v (m3/kg), u (kJ/kg), h (kJ/kg), s (kJ/kg-K), x.

Configuration is read from $HOME/.sandlersteam/config.toml, then STEAM_*
environment variables, then flags.
`

var exampleUsage = strings.TrimSpace(`
  steam resolve T=525 P=10
  steam resolve T=100 x=0.5 --output json
  steam sat P=1
  steam serve --listen :8080 --tables-dir ./tables --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries the resolved configuration to the subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  log.Logger
	out     io.Writer
	errOut  io.Writer
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{
		cfg:    cliconfig.DefaultConfig(),
		out:    out,
		errOut: errOut,
	}

	root := &cobra.Command{
		Use:           "steam",
		Short:         "Water and steam property tables",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliconfig.Load(&a.cfg, a.cfgPath, cmd.Flags()); err != nil {
				return err
			}
			logger, err := a.cfg.Logger(a.errOut)
			if err != nil {
				return err
			}
			a.logger = logger
			a.logger.Debug("configuration", log.Any("config", a.cfg))
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.sandlersteam/config.toml)")
	cliconfig.BindFlags(root.PersistentFlags(), &a.cfg)

	root.AddCommand(
		a.resolveCmd(),
		a.satCmd(),
		a.tablesCmd(),
		a.serveCmd(),
	)
	return root, a
}

// registry opens the configured tables.
func (a *app) registry(opts ...tableset.Option) (*tableset.Registry, error) {
	opts = append([]tableset.Option{
		tableset.WithLogger(a.logger),
		tableset.WithResolverOptions(resolver.WithLiquidApproximation(a.cfg.LiquidApproximation)),
	}, opts...)
	return tableset.Open(a.cfg.TablesDir, opts...)
}

func main() {
	root, a := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		logger := a.logger
		if logger == nil {
			// Config failed to load; defaults always build.
			logger, _ = log.New(log.Options{})
		}
		logger.Error("steam", log.Err(err))
		os.Exit(1)
	}
}
