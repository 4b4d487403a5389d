package state

import (
	"fmt"
	"strings"
)

// Property identifies one of the intensive properties a state can be specified by.
// The declaration order is the canonical order used to name property pairs.
type Property int

const (
	T Property = iota // temperature, °C
	P                 // pressure, MPa
	V                 // specific volume, m³/kg
	U                 // specific internal energy, kJ/kg
	H                 // specific enthalpy, kJ/kg
	S                 // specific entropy, kJ/(kg·K)
	X                 // vapor quality, mass fraction
)

// NumProperties is the number of defined properties.
const NumProperties = 7

var propertyNames = [NumProperties]string{"T", "P", "v", "u", "h", "s", "x"}

var propertyUnits = [NumProperties]string{"C", "MPa", "m3/kg", "kJ/kg", "kJ/kg", "kJ/kg-K", ""}

// String returns the conventional symbol: T and P upper case, the rest lower case.
func (p Property) String() string {
	if p < 0 || int(p) >= NumProperties {
		return fmt.Sprintf("Property(%d)", int(p))
	}
	return propertyNames[p]
}

// Unit returns the table unit of the property.
func (p Property) Unit() string {
	if p < 0 || int(p) >= NumProperties {
		return ""
	}
	return propertyUnits[p]
}

// Valid reports whether p is one of the defined properties.
func (p Property) Valid() bool {
	return p >= T && p <= X
}

// Tabulated reports whether p is stored in the property tables (everything but X).
func (p Property) Tabulated() bool {
	return p >= T && p <= S
}

// ParseProperty parses a property symbol. Matching is case-insensitive.
func ParseProperty(s string) (Property, error) {
	name := strings.TrimSpace(s)
	for i, n := range propertyNames {
		if strings.EqualFold(n, name) {
			return Property(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown property %q", ErrAmbiguousSpec, s)
}

// Properties returns the tabulated properties in canonical order.
func Properties() []Property {
	return []Property{T, P, V, U, H, S}
}
