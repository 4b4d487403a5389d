package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pygacity/sandlersteam/internal/cliconfig"
	"github.com/pygacity/sandlersteam/internal/server"
	"github.com/pygacity/sandlersteam/pkg/satd"
	"github.com/pygacity/sandlersteam/pkg/state"
)

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME=VALUE NAME=VALUE",
		Short: "Resolve the state fixed by two properties",
		Example: `  steam resolve T=525 P=10
  steam resolve P=1 h=2000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := state.ParseSpec(args...)
			if err != nil {
				return err
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			rec, err := reg.Resolver().Resolve(spec)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", spec, err)
			}
			return a.print(rec, func(w io.Writer) error {
				_, err := io.WriteString(w, rec.Format(a.cfg.Precision))
				return err
			})
		},
	}
}

func (a *app) satCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sat T=VALUE|P=VALUE",
		Short: "Show saturated liquid and vapor at a temperature or pressure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := state.ParseQuantity(args[0])
			if err != nil {
				return err
			}
			axis, ok := satd.AxisOf(q.Property)
			if !ok {
				return fmt.Errorf("%w: sat takes T or P, got %s", state.ErrAmbiguousSpec, q.Property)
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			pt, err := reg.Resolver().Saturation(axis, q.Value)
			if err != nil {
				return err
			}
			return a.print(pt, func(w io.Writer) error {
				liq, vap := pt.Liquid(), pt.Vapor()
				fmt.Fprintf(w, "T  %.*g C\nP  %.*g MPa\n", a.cfg.Precision, pt.T, a.cfg.Precision, pt.P)
				fmt.Fprintf(w, "%-2s %-14s %-14s\n", "", "liquid", "vapor")
				for _, p := range []state.Property{state.V, state.U, state.H, state.S} {
					fmt.Fprintf(w, "%-2s %-14.*g %-14.*g %s\n", p,
						a.cfg.Precision, liq.Get(p), a.cfg.Precision, vap.Get(p), p.Unit())
				}
				return nil
			})
		},
	}
}

func (a *app) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Summarize the loaded property tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			set := reg.Current()
			sat := set.Tables.Saturation
			return a.print(server.Summarize(set), func(w io.Writer) error {
				fmt.Fprintf(w, "source %s\n", set.Source)
				tmin, tmax := sat.Limits(satd.AxisT)
				pmin, pmax := sat.Limits(satd.AxisP)
				fmt.Fprintf(w, "saturated   T %g..%g C (%d rows), P %g..%g MPa (%d rows)\n",
					tmin, tmax, sat.Len(satd.AxisT), pmin, pmax, sat.Len(satd.AxisP))
				for _, t := range []struct {
					name string
					ps   []float64
				}{
					{"superheated", set.Tables.Superheated.Pressures()},
					{"subcooled", set.Tables.Subcooled.Pressures()},
				} {
					fmt.Fprintf(w, "%-11s %d isobars, P %g..%g MPa\n", t.name, len(t.ps), t.ps[0], t.ps[len(t.ps)-1])
				}
				return nil
			})
		},
	}
}

// print writes v as indented JSON or through text, per the output setting.
func (a *app) print(v any, text func(io.Writer) error) error {
	if a.cfg.Output == cliconfig.OutputJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(a.out)
}
