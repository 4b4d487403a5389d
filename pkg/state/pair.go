package state

// Pair enumerates the 21 unordered combinations of two distinct properties.
// Pair names list the properties in canonical order (T, P, v, u, h, s, x).
type Pair int

const (
	PairNone Pair = iota
	PairTP
	PairTV
	PairTU
	PairTH
	PairTS
	PairTX
	PairPV
	PairPU
	PairPH
	PairPS
	PairPX
	PairVU
	PairVH
	PairVS
	PairVX
	PairUH
	PairUS
	PairUX
	PairHS
	PairHX
	PairSX
)

var pairProps = [...][2]Property{
	PairTP: {T, P}, PairTV: {T, V}, PairTU: {T, U}, PairTH: {T, H}, PairTS: {T, S}, PairTX: {T, X},
	PairPV: {P, V}, PairPU: {P, U}, PairPH: {P, H}, PairPS: {P, S}, PairPX: {P, X},
	PairVU: {V, U}, PairVH: {V, H}, PairVS: {V, S}, PairVX: {V, X},
	PairUH: {U, H}, PairUS: {U, S}, PairUX: {U, X},
	PairHS: {H, S}, PairHX: {H, X},
	PairSX: {S, X},
}

var pairIndex [NumProperties][NumProperties]Pair

func init() {
	for pr := PairTP; pr <= PairSX; pr++ {
		a, b := pairProps[pr][0], pairProps[pr][1]
		pairIndex[a][b] = pr
		pairIndex[b][a] = pr
	}
}

func pairOf(a, b Property) Pair {
	if !a.Valid() || !b.Valid() {
		return PairNone
	}
	return pairIndex[a][b]
}

// PairOf returns the pair of two properties in either order, or PairNone.
func PairOf(a, b Property) Pair {
	return pairOf(a, b)
}

// Properties returns the two properties of the pair in canonical order.
func (p Pair) Properties() (Property, Property) {
	if p <= PairNone || p > PairSX {
		return -1, -1
	}
	return pairProps[p][0], pairProps[p][1]
}

// HasQuality reports whether one side of the pair is x.
func (p Pair) HasQuality() bool {
	_, b := p.Properties()
	return b == X
}

// HasAxis reports whether the pair includes T or P.
func (p Pair) HasAxis() bool {
	a, _ := p.Properties()
	return a == T || a == P
}

func (p Pair) String() string {
	if p <= PairNone || p > PairSX {
		return "none"
	}
	a, b := p.Properties()
	return a.String() + b.String()
}

// Pairs returns all 21 pairs in declaration order.
func Pairs() []Pair {
	out := make([]Pair, 0, int(PairSX))
	for p := PairTP; p <= PairSX; p++ {
		out = append(out, p)
	}
	return out
}
