package satd

import (
	"fmt"
	"strings"

	"github.com/pygacity/sandlersteam/pkg/state"
)

// Axis selects the independent variable of a saturation lookup.
type Axis int

const (
	AxisT Axis = iota
	AxisP
)

func (a Axis) String() string {
	if a == AxisP {
		return "P"
	}
	return "T"
}

// Property returns the state property the axis is keyed on.
func (a Axis) Property() state.Property {
	if a == AxisP {
		return state.P
	}
	return state.T
}

// AxisOf maps T and P to their axis.
func AxisOf(p state.Property) (Axis, bool) {
	switch p {
	case state.T:
		return AxisT, true
	case state.P:
		return AxisP, true
	}
	return 0, false
}

// Property is a compound saturation property name, in source column order.
type Property int

const (
	PropT  Property = iota // saturation temperature
	PropP                  // saturation pressure
	PropVL                 // liquid specific volume
	PropVV                 // vapor specific volume
	PropUL                 // liquid internal energy
	PropDU                 // vaporization internal energy
	PropUV                 // vapor internal energy
	PropHL                 // liquid enthalpy
	PropDH                 // vaporization enthalpy
	PropHV                 // vapor enthalpy
	PropSL                 // liquid entropy
	PropDS                 // vaporization entropy
	PropSV                 // vapor entropy
	PropDV                 // vaporization volume, derived
	numProps
)

// numColumns counts the properties stored in source files; PropDV is derived.
const numColumns = PropDV

var propNames = [numProps]string{"T", "P", "VL", "VV", "UL", "DU", "UV", "HL", "DH", "HV", "SL", "DS", "SV", "DV"}

func (p Property) String() string {
	if p < 0 || p >= numProps {
		return fmt.Sprintf("satd.Property(%d)", int(p))
	}
	return propNames[p]
}

// ParseProperty parses a property name such as "VL" or "hv".
func ParseProperty(s string) (Property, error) {
	for i, n := range propNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Property(i), nil
		}
	}
	return 0, fmt.Errorf("satd: unknown property %q", s)
}

// ColumnNames returns the source column names in order.
func ColumnNames() []string {
	out := make([]string, numColumns)
	copy(out, propNames[:numColumns])
	return out
}

// Phase is one side of the saturation boundary.
type Phase int

const (
	Liquid Phase = iota
	Vapor
)

func (ph Phase) String() string {
	if ph == Vapor {
		return "vapor"
	}
	return "liquid"
}

// PhaseProperty returns the compound property holding p for the given phase,
// e.g. (Liquid, v) -> VL. T and P map to the axis columns.
func PhaseProperty(ph Phase, p state.Property) (Property, error) {
	switch p {
	case state.T:
		return PropT, nil
	case state.P:
		return PropP, nil
	case state.V:
		return pick(ph, PropVL, PropVV), nil
	case state.U:
		return pick(ph, PropUL, PropUV), nil
	case state.H:
		return pick(ph, PropHL, PropHV), nil
	case state.S:
		return pick(ph, PropSL, PropSV), nil
	}
	return 0, fmt.Errorf("%w: %s has no saturation column", state.ErrAmbiguousSpec, p)
}

func pick(ph Phase, liquid, vapor Property) Property {
	if ph == Vapor {
		return vapor
	}
	return liquid
}
