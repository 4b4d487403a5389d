// Package resolver determines the full equilibrium state of water from any
// two independent intensive properties.
//
// A Resolver classifies the region of the requested state (subcooled liquid,
// superheated vapor or saturated mixture), then interpolates within the
// matching region table or applies the lever rule to saturation values.
//
// # Usage
//
//	r, err := resolver.New(tables, resolver.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	spec, _ := state.ParseSpec("T=525", "P=10")
//	rec, err := r.Resolve(spec)
//
// # Dispatch
//
// Resolution is selected by the property pair of the spec:
//
//   - T or P with x: saturation lookup and quality-weighted mixing.
//   - T with P: compare P against the saturation pressure at T.
//   - T or P with v, u, h or s: compare against the saturated liquid and
//     vapor values at that T or P.
//   - v, u, h or s with x: solve the mixture curve for T, then mix.
//   - two of v, u, h, s: saturated mixture, then superheated, then subcooled.
//
// A Resolver is immutable and safe for concurrent use. Every failure wraps
// one of the errors in package state; no partial record is returned.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package resolver
