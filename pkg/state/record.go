package state

import (
	"fmt"
	"strings"
)

// Region is the thermodynamic region a resolved state lies in.
type Region int

const (
	RegionUnknown Region = iota
	Subcooled
	Superheated
	Saturated
)

func (r Region) String() string {
	switch r {
	case Subcooled:
		return "subcooled"
	case Superheated:
		return "superheated"
	case Saturated:
		return "saturated"
	}
	return "unknown"
}

// MarshalText encodes the region by name.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a region name produced by MarshalText.
func (r *Region) UnmarshalText(b []byte) error {
	for _, c := range []Region{RegionUnknown, Subcooled, Superheated, Saturated} {
		if c.String() == string(b) {
			*r = c
			return nil
		}
	}
	return fmt.Errorf("unknown region %q", b)
}

// Record is a fully resolved state. X, Liquid and Vapor are set only for
// two-phase states. A Record is created fresh per resolution and owned by the caller.
type Record struct {
	T      float64  `json:"T"`
	P      float64  `json:"P"`
	V      float64  `json:"v"`
	U      float64  `json:"u"`
	H      float64  `json:"h"`
	S      float64  `json:"s"`
	X      *float64 `json:"x,omitempty"`
	Region Region   `json:"region"`

	Liquid *Record `json:"liquid,omitempty"`
	Vapor  *Record `json:"vapor,omitempty"`
}

// NewRecord builds a single-phase record from a sample.
func NewRecord(s Sample, region Region) *Record {
	return &Record{T: s.T, P: s.P, V: s.V, U: s.U, H: s.H, S: s.S, Region: region}
}

// NewMixture builds a two-phase record at quality x from the saturated endpoints.
func NewMixture(liquid, vapor Sample, x float64) *Record {
	rec := NewRecord(Lerp(liquid, vapor, x), Saturated)
	rec.X = &x
	zero, one := 0.0, 1.0
	rec.Liquid = NewRecord(liquid, Saturated)
	rec.Liquid.X = &zero
	rec.Vapor = NewRecord(vapor, Saturated)
	rec.Vapor.X = &one
	return rec
}

// Sample returns the tabulated properties of the record.
func (r *Record) Sample() Sample {
	return Sample{T: r.T, P: r.P, V: r.V, U: r.U, H: r.H, S: r.S}
}

// Value returns the value of p, reporting false for X on single-phase records.
func (r *Record) Value(p Property) (float64, bool) {
	if p == X {
		if r.X == nil {
			return 0, false
		}
		return *r.X, true
	}
	return r.Sample().Value(p)
}

// Set overwrites a tabulated property, or the quality when p is X.
func (r *Record) Set(p Property, v float64) {
	if p == X {
		r.X = &v
		return
	}
	s := r.Sample().With(p, v)
	r.T, r.P, r.V, r.U, r.H, r.S = s.T, s.P, s.V, s.U, s.H, s.S
}

// TwoPhase reports whether the record describes a saturated mixture.
func (r *Record) TwoPhase() bool {
	return r.X != nil && r.Liquid != nil && r.Vapor != nil
}

// Format renders the record one property per line with the given precision.
func (r *Record) Format(precision int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "region %s\n", r.Region)
	for _, p := range Properties() {
		v, _ := r.Value(p)
		fmt.Fprintf(&b, "%-2s %.*g %s\n", p, precision, v, p.Unit())
	}
	if r.X != nil {
		fmt.Fprintf(&b, "%-2s %.*g\n", X, precision, *r.X)
	}
	if r.TwoPhase() {
		for _, end := range []struct {
			name string
			rec  *Record
		}{{"liquid", r.Liquid}, {"vapor", r.Vapor}} {
			fmt.Fprintf(&b, "%s:", end.name)
			for _, p := range []Property{V, U, H, S} {
				v, _ := end.rec.Value(p)
				fmt.Fprintf(&b, " %s=%.*g", p, precision, v)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (r *Record) String() string {
	s := fmt.Sprintf("%s T=%g P=%g v=%g u=%g h=%g s=%g", r.Region, r.T, r.P, r.V, r.U, r.H, r.S)
	if r.X != nil {
		s += fmt.Sprintf(" x=%g", *r.X)
	}
	return s
}
