package state

// Sample is one tabulated (T, P, v, u, h, s) point.
type Sample struct {
	T float64 `json:"T"`
	P float64 `json:"P"`
	V float64 `json:"v"`
	U float64 `json:"u"`
	H float64 `json:"h"`
	S float64 `json:"s"`
}

// Value returns the value of a tabulated property. It reports false for X.
func (s Sample) Value(p Property) (float64, bool) {
	switch p {
	case T:
		return s.T, true
	case P:
		return s.P, true
	case V:
		return s.V, true
	case U:
		return s.U, true
	case H:
		return s.H, true
	case S:
		return s.S, true
	}
	return 0, false
}

// Get returns the value of a tabulated property, or 0 for X.
func (s Sample) Get(p Property) float64 {
	v, _ := s.Value(p)
	return v
}

// With returns a copy of s with property p set to v. X is ignored.
func (s Sample) With(p Property, v float64) Sample {
	switch p {
	case T:
		s.T = v
	case P:
		s.P = v
	case V:
		s.V = v
	case U:
		s.U = v
	case H:
		s.H = v
	case S:
		s.S = v
	}
	return s
}

// Lerp interpolates linearly between a (w=0) and b (w=1), property by property.
// Both endpoints are reproduced exactly.
func Lerp(a, b Sample, w float64) Sample {
	return Sample{
		T: lerp(a.T, b.T, w),
		P: lerp(a.P, b.P, w),
		V: lerp(a.V, b.V, w),
		U: lerp(a.U, b.U, w),
		H: lerp(a.H, b.H, w),
		S: lerp(a.S, b.S, w),
	}
}

func lerp(a, b, w float64) float64 {
	if a == b {
		return a
	}
	return (1-w)*a + w*b
}

// Fraction returns where x lies between x0 (0) and x1 (1).
// Callers guarantee x0 != x1.
func Fraction(x, x0, x1 float64) float64 {
	return (x - x0) / (x1 - x0)
}

// Between reports whether x lies in the closed interval spanned by a and b,
// in either order.
func Between(x, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return x >= a && x <= b
}
