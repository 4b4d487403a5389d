package region

import (
	"math"
	"sort"

	"github.com/pygacity/sandlersteam/pkg/state"
)

// cell is the patch between two adjacent isobars and two consecutive
// temperature breakpoints. Inside it every property is bilinear in the local
// coordinates a (along T) and w (along P).
type cell struct {
	// corners at (t0, lo), (t1, lo), (t0, hi), (t1, hi)
	c [4]state.Sample
}

// cellsBetween splits the temperature span shared by lo and hi at every
// temperature either block tabulates.
func cellsBetween(lo, hi *Block) []cell {
	var common []float64
	for _, tt := range lo.temps {
		if _, ok := hi.sampleAt(tt); ok {
			common = append(common, tt)
		}
	}
	if len(common) < 2 {
		return nil
	}
	first, last := common[0], common[len(common)-1]

	var bps []float64
	for _, b := range []*Block{lo, hi} {
		for _, tt := range b.temps {
			if tt >= first && tt <= last {
				bps = append(bps, tt)
			}
		}
	}
	sort.Float64s(bps)

	var cells []cell
	for i := 1; i < len(bps); i++ {
		t0, t1 := bps[i-1], bps[i]
		if t0 == t1 {
			continue
		}
		var c cell
		var ok [4]bool
		c.c[0], ok[0] = lo.At(t0)
		c.c[1], ok[1] = lo.At(t1)
		c.c[2], ok[2] = hi.At(t0)
		c.c[3], ok[3] = hi.At(t1)
		if ok[0] && ok[1] && ok[2] && ok[3] {
			cells = append(cells, c)
		}
	}
	return cells
}

// coeffs returns k such that prop - v = k0 + k1*a + k2*w + k3*a*w.
func (c *cell) coeffs(prop state.Property, v float64) [4]float64 {
	f00, f10 := c.c[0].Get(prop), c.c[1].Get(prop)
	f01, f11 := c.c[2].Get(prop), c.c[3].Get(prop)
	return [4]float64{f00 - v, f10 - f00, f01 - f00, f11 - f10 - f01 + f00}
}

// solve returns the points inside the cell where px = vx and py = vy.
func (c *cell) solve(px state.Property, vx float64, py state.Property, vy float64) []state.Sample {
	ka, kb := c.coeffs(px, vx), c.coeffs(py, vy)
	// Eliminating w leaves a quadratic in a.
	qa := kb[1]*ka[3] - kb[3]*ka[1]
	qb := kb[0]*ka[3] + kb[1]*ka[2] - kb[2]*ka[1] - kb[3]*ka[0]
	qc := kb[0]*ka[2] - kb[2]*ka[0]

	var out []state.Sample
	for _, a := range quadRoots(qa, qb, qc) {
		if !inUnit(a) {
			continue
		}
		w, ok := solveW(ka, a)
		if !ok {
			w, ok = solveW(kb, a)
		}
		if !ok || !inUnit(w) {
			continue
		}
		a, w = clampUnit(a), clampUnit(w)
		out = append(out, state.Lerp(state.Lerp(c.c[0], c.c[1], a), state.Lerp(c.c[2], c.c[3], a), w))
	}
	return out
}

func solveW(k [4]float64, a float64) (float64, bool) {
	den := k[2] + k[3]*a
	if den == 0 {
		return 0, false
	}
	return -(k[0] + k[1]*a) / den, true
}

// quadRoots returns the real roots of qa*a^2 + qb*a + qc.
func quadRoots(qa, qb, qc float64) []float64 {
	if math.Abs(qa) <= 1e-12*(math.Abs(qb)+math.Abs(qc)) {
		if qb == 0 {
			return nil
		}
		return []float64{-qc / qb}
	}
	d := qb*qb - 4*qa*qc
	if d < 0 {
		return nil
	}
	q := -0.5 * (qb + math.Copysign(math.Sqrt(d), qb))
	if q == 0 {
		return []float64{0}
	}
	return []float64{q / qa, qc / q}
}

const unitEps = 1e-9

func inUnit(x float64) bool { return x >= -unitEps && x <= 1+unitEps }

func clampUnit(x float64) float64 { return math.Min(math.Max(x, 0), 1) }
