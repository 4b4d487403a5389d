// Package region implements the single-phase property tables (superheated
// vapor and subcooled liquid).
//
// A Table is a set of isobar blocks. Each block holds the samples sharing one
// pressure, sorted by strictly increasing temperature. Blocks may cover
// different temperature ranges, so the table is not a rectangular grid and
// two-input lookups go through Bilinear, which handles four cases:
//
//   - (T, P): interpolate in T inside the bracketing isobars, then across P.
//   - (T, y): walk the isotherm across isobars until y is bracketed.
//   - (P, y): solve y along the bracketing isobars, then interpolate across P.
//   - (y1, y2): invert the (T, P) interpolation. Between adjacent isobars
//     each cell is bilinear in T and P, so both equations reduce to a
//     quadratic in T; single isobars are searched segment by segment.
//
// Failures wrap state.ErrNotBracketed or state.ErrAmbiguousSpec. A (y1, y2)
// pair that matches more than one state is ambiguous.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package region
