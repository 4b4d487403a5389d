package satd

import "github.com/pygacity/sandlersteam/pkg/state"

// Point is one saturation sample: the shared T and P plus liquid and vapor
// values of v, u, h and s.
type Point struct {
	T  float64 `json:"T"`
	P  float64 `json:"P"`
	VL float64 `json:"vL"`
	VV float64 `json:"vV"`
	UL float64 `json:"uL"`
	UV float64 `json:"uV"`
	HL float64 `json:"hL"`
	HV float64 `json:"hV"`
	SL float64 `json:"sL"`
	SV float64 `json:"sV"`
}

// Value returns the value of a compound property. Differences are vapor minus liquid.
func (p Point) Value(prop Property) float64 {
	switch prop {
	case PropT:
		return p.T
	case PropP:
		return p.P
	case PropVL:
		return p.VL
	case PropVV:
		return p.VV
	case PropUL:
		return p.UL
	case PropDU:
		return p.UV - p.UL
	case PropUV:
		return p.UV
	case PropHL:
		return p.HL
	case PropDH:
		return p.HV - p.HL
	case PropHV:
		return p.HV
	case PropSL:
		return p.SL
	case PropDS:
		return p.SV - p.SL
	case PropSV:
		return p.SV
	case PropDV:
		return p.VV - p.VL
	}
	return 0
}

// Set stores a column value. Difference columns are derived and ignored.
func (p *Point) Set(prop Property, v float64) {
	switch prop {
	case PropT:
		p.T = v
	case PropP:
		p.P = v
	case PropVL:
		p.VL = v
	case PropVV:
		p.VV = v
	case PropUL:
		p.UL = v
	case PropUV:
		p.UV = v
	case PropHL:
		p.HL = v
	case PropHV:
		p.HV = v
	case PropSL:
		p.SL = v
	case PropSV:
		p.SV = v
	}
}

// Liquid returns the saturated-liquid endpoint as a sample.
func (p Point) Liquid() state.Sample {
	return state.Sample{T: p.T, P: p.P, V: p.VL, U: p.UL, H: p.HL, S: p.SL}
}

// Vapor returns the saturated-vapor endpoint as a sample.
func (p Point) Vapor() state.Sample {
	return state.Sample{T: p.T, P: p.P, V: p.VV, U: p.UV, H: p.HV, S: p.SV}
}

// Phase returns the endpoint for ph.
func (p Point) Phase(ph Phase) state.Sample {
	if ph == Vapor {
		return p.Vapor()
	}
	return p.Liquid()
}

var stored = []Property{PropT, PropP, PropVL, PropVV, PropUL, PropUV, PropHL, PropHV, PropSL, PropSV}

// StoredProperties lists the properties held in a Point; differences are derived.
func StoredProperties() []Property {
	return append([]Property(nil), stored...)
}
