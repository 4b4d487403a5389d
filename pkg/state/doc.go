// Package state defines the value types shared by the steam table packages:
// the seven intensive properties, two-property state specifications, tabulated
// samples and resolved state records.
//
// # Specifications
//
// A [Spec] always holds exactly two distinct properties. A zero value is a
// specified value, not an absent one:
//
//	spec, err := state.NewSpec(state.Q(state.T, 150), state.Q(state.X, 0))
//	if err != nil {
//	    return err
//	}
//	switch spec.Pair() {
//	case state.PairTX:
//	    // ...
//	}
//
// Specs can also be parsed from "name=value" arguments:
//
//	spec, err := state.ParseSpec("T=525", "P=10")
//
// # Records
//
// A [Record] carries all seven properties. X is nil for single-phase states;
// two-phase records additionally carry the saturated Liquid and Vapor endpoints.
//
// # Errors
//
// Resolution failures are reported with the sentinel errors in errors.go and
// can be checked with errors.Is. [Kind] maps an error to its short kind name.
//
// # Version
//
// Current version: 2.0.0
// Minimum compatible version: 2.0.0
//
// See version.go for version constants that can be used programmatically.
package state
