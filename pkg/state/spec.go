package state

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a property with a value.
type Quantity struct {
	Property Property
	Value    float64
}

// Q is shorthand for Quantity{Property: p, Value: v}.
func Q(p Property, v float64) Quantity {
	return Quantity{Property: p, Value: v}
}

func (q Quantity) String() string {
	return q.Property.String() + "=" + strconv.FormatFloat(q.Value, 'g', -1, 64)
}

// Spec is a validated two-property state specification. The zero Spec is
// invalid; build one with NewSpec, ParseSpec or SpecFromMap.
type Spec struct {
	first  Quantity
	second Quantity
	pair   Pair
}

// NewSpec builds a Spec from two quantities given in any order.
func NewSpec(a, b Quantity) (Spec, error) {
	if !a.Property.Valid() || !b.Property.Valid() {
		return Spec{}, fmt.Errorf("%w: invalid property in %s, %s", ErrAmbiguousSpec, a, b)
	}
	if a.Property == b.Property {
		return Spec{}, fmt.Errorf("%w: %s given twice", ErrAmbiguousSpec, a.Property)
	}
	if b.Property < a.Property {
		a, b = b, a
	}
	return Spec{first: a, second: b, pair: pairOf(a.Property, b.Property)}, nil
}

// SpecFromMap builds a Spec from a property map holding exactly two entries.
func SpecFromMap(m map[Property]float64) (Spec, error) {
	if len(m) != 2 {
		return Spec{}, fmt.Errorf("%w: %d properties given, need exactly 2", ErrAmbiguousSpec, len(m))
	}
	qs := make([]Quantity, 0, 2)
	for p, v := range m {
		qs = append(qs, Q(p, v))
	}
	return NewSpec(qs[0], qs[1])
}

// SpecFromQuantities builds a Spec from a list that must hold exactly two quantities.
func SpecFromQuantities(qs ...Quantity) (Spec, error) {
	if len(qs) != 2 {
		return Spec{}, fmt.Errorf("%w: %d properties given, need exactly 2", ErrAmbiguousSpec, len(qs))
	}
	return NewSpec(qs[0], qs[1])
}

// ParseSpec parses "name=value" arguments such as "T=525" "P=10".
func ParseSpec(args ...string) (Spec, error) {
	qs := make([]Quantity, 0, len(args))
	for _, arg := range args {
		q, err := ParseQuantity(arg)
		if err != nil {
			return Spec{}, err
		}
		qs = append(qs, q)
	}
	return SpecFromQuantities(qs...)
}

// ParseQuantity parses a single "name=value" argument.
func ParseQuantity(arg string) (Quantity, error) {
	name, val, ok := strings.Cut(arg, "=")
	if !ok {
		return Quantity{}, fmt.Errorf("%w: expected name=value, got %q", ErrAmbiguousSpec, arg)
	}
	p, err := ParseProperty(name)
	if err != nil {
		return Quantity{}, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: parse %s: %v", ErrAmbiguousSpec, p, err)
	}
	return Q(p, v), nil
}

// Validate reports ErrAmbiguousSpec for a zero or hand-assembled Spec.
func (s Spec) Validate() error {
	if s.pair == PairNone {
		return fmt.Errorf("%w: empty specification", ErrAmbiguousSpec)
	}
	return nil
}

// Pair returns the property pair of the spec.
func (s Spec) Pair() Pair { return s.pair }

// First returns the quantity whose property comes first in canonical order.
func (s Spec) First() Quantity { return s.first }

// Second returns the quantity whose property comes second in canonical order.
func (s Spec) Second() Quantity { return s.second }

// Value returns the value given for p and whether p is part of the spec.
func (s Spec) Value(p Property) (float64, bool) {
	switch p {
	case s.first.Property:
		return s.first.Value, true
	case s.second.Property:
		return s.second.Value, true
	}
	return 0, false
}

// Has reports whether p is one of the two specified properties.
func (s Spec) Has(p Property) bool {
	_, ok := s.Value(p)
	return ok
}

// Other returns the quantity that is not p. It is only meaningful when Has(p).
func (s Spec) Other(p Property) Quantity {
	if s.first.Property == p {
		return s.second
	}
	return s.first
}

func (s Spec) String() string {
	if s.pair == PairNone {
		return "<invalid spec>"
	}
	return s.first.String() + " " + s.second.String()
}
