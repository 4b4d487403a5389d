package resolver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pygacity/sandlersteam/pkg/log"
	"github.com/pygacity/sandlersteam/pkg/satd"
	"github.com/pygacity/sandlersteam/pkg/state"
)

// leverQuality returns the vapor fraction at which th = v between liquid
// value l and vapor value g.
func leverQuality(v, l, g float64) float64 {
	return (v - l) / (g - l)
}

// saturationColumns returns the T grid and the liquid and vapor columns of th.
func (r *Resolver) saturationColumns(th state.Property) (temps, liquid, vapor []float64, err error) {
	lp, err := satd.PhaseProperty(satd.Liquid, th)
	if err != nil {
		return nil, nil, nil, err
	}
	vp, err := satd.PhaseProperty(satd.Vapor, th)
	if err != nil {
		return nil, nil, nil, err
	}
	sat := r.tables.Saturation
	return sat.Column(satd.AxisT, satd.PropT), sat.Column(satd.AxisT, lp), sat.Column(satd.AxisT, vp), nil
}

// inverseLever resolves quality x together with one of v, u, h or s. The
// mixed curve x*vapor + (1-x)*liquid over the saturation temperatures must
// cross v exactly once.
func (r *Resolver) inverseLever(th state.Property, v, x float64) (*state.Record, error) {
	if err := checkQuality(x); err != nil {
		return nil, err
	}
	temps, liquid, vapor, err := r.saturationColumns(th)
	if err != nil {
		return nil, err
	}
	mixed := make([]float64, len(temps))
	floats.ScaleTo(mixed, 1-x, liquid)
	floats.AddScaled(mixed, x, vapor)

	roots := crossings(temps, mixed, v)
	switch len(roots) {
	case 0:
		lo, hi := floats.Min(mixed), floats.Max(mixed)
		return nil, fmt.Errorf("%w: %s=%g at x=%g outside mixture range [%g, %g]",
			state.ErrOutOfRange, th, v, x, lo, hi)
	case 1:
	default:
		r.logger.Debug("ambiguous mixture", log.Stringer("property", th),
			log.Float64("value", v), log.Float64("x", x), log.Any("roots", roots))
		return nil, fmt.Errorf("%w: %s=%g at x=%g matches T=%v",
			state.ErrNonMonotonicMixture, th, v, x, roots)
	}
	rec, err := r.quality(satd.AxisT, roots[0], x)
	if err != nil {
		return nil, err
	}
	rec.Set(th, v)
	return rec, nil
}

// crossings returns every abscissa at which the piecewise-linear curve ys(xs)
// takes the value v.
func crossings(xs, ys []float64, v float64) []float64 {
	var roots []float64
	for i := range ys {
		if ys[i] == v {
			roots = append(roots, xs[i])
			continue
		}
		if i == 0 || ys[i-1] == v {
			continue
		}
		if (ys[i-1] < v) != (ys[i] < v) {
			w := state.Fraction(v, ys[i-1], ys[i])
			roots = append(roots, xs[i-1]+w*(xs[i]-xs[i-1]))
		}
	}
	return roots
}

// mixtureByProperties looks for a saturated mixture matching two of v, u, h, s.
// Along the saturation temperatures the quality implied by a is used to
// predict b; every sign change of the residual brackets a candidate. It
// returns nil when no mixture matches and ErrNonMonotonicMixture when more
// than one does.
func (r *Resolver) mixtureByProperties(a, b state.Quantity) (*state.Record, error) {
	temps, aL, aV, err := r.saturationColumns(a.Property)
	if err != nil {
		return nil, err
	}
	_, bL, bV, err := r.saturationColumns(b.Property)
	if err != nil {
		return nil, err
	}

	var (
		found          []*state.Record
		prevT, prevRes float64
		hasPrev        bool
	)
	add := func(t float64) {
		rec, ok := r.mixtureAt(t, a)
		if !ok {
			return
		}
		rec.Set(b.Property, b.Value)
		for _, f := range found {
			if math.Abs(f.T-rec.T) <= 1e-9*math.Max(1, rec.T) {
				return
			}
		}
		found = append(found, rec)
	}
	for i, t := range temps {
		if aV[i] == aL[i] {
			hasPrev = false
			continue
		}
		x := leverQuality(a.Value, aL[i], aV[i])
		res := bL[i] + x*(bV[i]-bL[i]) - b.Value
		switch {
		case res == 0:
			add(t)
		case hasPrev && prevRes != 0 && (prevRes < 0) != (res < 0):
			add(prevT + state.Fraction(0, prevRes, res)*(t-prevT))
		}
		prevT, prevRes, hasPrev = t, res, true
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	}
	roots := make([]float64, len(found))
	for i, f := range found {
		roots[i] = f.T
	}
	r.logger.Debug("ambiguous mixture", log.Stringer("first", a), log.Stringer("second", b),
		log.Any("roots", roots))
	return nil, fmt.Errorf("%w: %s %s matches the mixture at T=%v",
		state.ErrNonMonotonicMixture, a, b, roots)
}

// mixtureAt builds the mixture at temperature t whose property a matches,
// provided the implied quality is physical.
func (r *Resolver) mixtureAt(t float64, a state.Quantity) (*state.Record, bool) {
	pt, err := r.tables.Saturation.PointAt(satd.AxisT, t)
	if err != nil {
		return nil, false
	}
	l, g := pt.Liquid().Get(a.Property), pt.Vapor().Get(a.Property)
	if l == g {
		return nil, false
	}
	x := leverQuality(a.Value, l, g)
	if x < 0 || x > 1 {
		return nil, false
	}
	rec := state.NewMixture(pt.Liquid(), pt.Vapor(), x)
	rec.Set(a.Property, a.Value)
	return rec, true
}
