// Package sandlersteam looks up thermodynamic states of water and steam
// from the saturated, superheated and subcooled property tables.
//
// Any two independent properties fix a state:
//
//	rec, err := sandlersteam.Resolve(sandlersteam.T(525), sandlersteam.P(10))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rec.H, rec.Region)
//
// Resolve uses the tables embedded in the module. Use NewResolver to
// resolve against tables loaded from elsewhere.
package sandlersteam

import (
	"sync"

	"github.com/pygacity/sandlersteam/internal/steamdata"
	"github.com/pygacity/sandlersteam/pkg/resolver"
	"github.com/pygacity/sandlersteam/pkg/state"
)

// Property identifies one of T, P, v, u, h, s and x.
type Property = state.Property

// Quantity is one property value.
type Quantity = state.Quantity

// Spec is a validated pair of quantities.
type Spec = state.Spec

// Record is a fully resolved state.
type Record = state.Record

// Region is the region a resolved state lies in.
type Region = state.Region

// Resolver resolves specs against one set of tables.
type Resolver = resolver.Resolver

// Tables is the set of property tables a Resolver reads.
type Tables = resolver.Tables

// Regions.
const (
	Subcooled   = state.Subcooled
	Superheated = state.Superheated
	Saturated   = state.Saturated
)

// Errors returned by Resolve. Match them with errors.Is.
var (
	ErrAmbiguousSpec           = state.ErrAmbiguousSpec
	ErrOutOfRange              = state.ErrOutOfRange
	ErrSaturationLimitExceeded = state.ErrSaturationLimitExceeded
	ErrNotBracketed            = state.ErrNotBracketed
	ErrNonMonotonicMixture     = state.ErrNonMonotonicMixture
	ErrTableInvalid            = state.ErrTableInvalid
)

// T is a temperature in C.
func T(v float64) Quantity { return state.Q(state.T, v) }

// P is a pressure in MPa.
func P(v float64) Quantity { return state.Q(state.P, v) }

// V is a specific volume in m3/kg.
func V(v float64) Quantity { return state.Q(state.V, v) }

// U is a specific internal energy in kJ/kg.
func U(v float64) Quantity { return state.Q(state.U, v) }

// H is a specific enthalpy in kJ/kg.
func H(v float64) Quantity { return state.Q(state.H, v) }

// S is a specific entropy in kJ/kg-K.
func S(v float64) Quantity { return state.Q(state.S, v) }

// X is a vapor quality in [0, 1].
func X(v float64) Quantity { return state.Q(state.X, v) }

var defaultResolver = sync.OnceValues(func() (*resolver.Resolver, error) {
	tables, err := steamdata.Default()
	if err != nil {
		return nil, err
	}
	return resolver.New(tables)
})

// Resolve resolves exactly two quantities against the embedded tables.
func Resolve(qs ...Quantity) (*Record, error) {
	spec, err := state.SpecFromQuantities(qs...)
	if err != nil {
		return nil, err
	}
	r, err := defaultResolver()
	if err != nil {
		return nil, err
	}
	return r.Resolve(spec)
}

// DefaultTables returns the embedded tables. They are parsed once and shared.
func DefaultTables() (Tables, error) {
	return steamdata.Default()
}

// NewResolver creates a resolver over tables.
func NewResolver(tables Tables, opts ...resolver.Option) (*Resolver, error) {
	return resolver.New(tables, opts...)
}
