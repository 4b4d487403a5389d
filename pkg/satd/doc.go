// Package satd implements the saturation table: liquid/vapor boundary
// properties of water sampled along a temperature axis and along a pressure axis.
//
// Both axes are interpolated piecewise-linearly between bracketing samples.
// There is no extrapolation: a key outside [min, max] of its axis fails with
// state.ErrOutOfRange.
//
// # Usage
//
//	tbl, err := satd.New(byT, byP)
//	if err != nil {
//	    return err
//	}
//	psat, err := tbl.ValueAt(satd.AxisT, 100, satd.PropP)
//	vf, err := tbl.ValueAt(satd.AxisT, 100, satd.PropVL)
//
// A Table is immutable after New and safe for concurrent use.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package satd
