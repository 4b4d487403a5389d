package region

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/pygacity/sandlersteam/pkg/state"
)

// Block is one isobar: samples at a single pressure sorted by temperature.
type Block struct {
	p       float64
	samples []state.Sample
	temps   []float64
	// fits[prop] interpolates prop against T; nil for single-sample blocks.
	fits [state.NumProperties]*interp.PiecewiseLinear
}

func newBlock(p float64, samples []state.Sample) (*Block, error) {
	b := &Block{p: p, samples: append([]state.Sample(nil), samples...)}
	sort.Slice(b.samples, func(i, j int) bool { return b.samples[i].T < b.samples[j].T })

	b.temps = make([]float64, len(b.samples))
	for i, s := range b.samples {
		if i > 0 && s.T == b.samples[i-1].T {
			return nil, fmt.Errorf("%w: isobar P=%g has duplicate T=%g", state.ErrTableInvalid, p, s.T)
		}
		b.temps[i] = s.T
	}
	if len(b.samples) < 2 {
		return b, nil
	}
	for _, prop := range state.Properties() {
		ys := make([]float64, len(b.samples))
		for i, s := range b.samples {
			ys[i] = s.Get(prop)
		}
		fit := &interp.PiecewiseLinear{}
		if err := fit.Fit(b.temps, ys); err != nil {
			return nil, fmt.Errorf("%w: isobar P=%g: %v", state.ErrTableInvalid, p, err)
		}
		b.fits[prop] = fit
	}
	return b, nil
}

// P returns the block pressure.
func (b *Block) P() float64 { return b.p }

// Len returns the number of samples.
func (b *Block) Len() int { return len(b.samples) }

// Samples returns a copy of the samples in temperature order.
func (b *Block) Samples() []state.Sample {
	return append([]state.Sample(nil), b.samples...)
}

// Range returns the temperature extent of the block.
func (b *Block) Range() (tmin, tmax float64) {
	return b.temps[0], b.temps[len(b.temps)-1]
}

// Covers reports whether T lies inside the block's temperature extent.
func (b *Block) Covers(t float64) bool {
	lo, hi := b.Range()
	return t >= lo && t <= hi
}

// sampleAt returns the exact sample at T, if tabulated.
func (b *Block) sampleAt(t float64) (state.Sample, bool) {
	i := sort.SearchFloat64s(b.temps, t)
	if i < len(b.temps) && b.temps[i] == t {
		return b.samples[i], true
	}
	return state.Sample{}, false
}

// At interpolates every property at temperature t along the isobar.
func (b *Block) At(t float64) (state.Sample, bool) {
	if s, ok := b.sampleAt(t); ok {
		return s, true
	}
	if !b.Covers(t) || b.fits[state.T] == nil {
		return state.Sample{}, false
	}
	var s state.Sample
	for _, prop := range state.Properties() {
		s = s.With(prop, b.fits[prop].Predict(t))
	}
	s.T, s.P = t, b.p
	return s, true
}

// Solve finds the first point along the isobar, in temperature order, where
// prop equals v.
func (b *Block) Solve(prop state.Property, v float64) (state.Sample, bool) {
	if prop == state.T {
		return b.At(v)
	}
	for i := 0; i < len(b.samples); i++ {
		if b.samples[i].Get(prop) == v {
			return b.samples[i], true
		}
		if i == 0 {
			continue
		}
		if s, ok := bracket(b.samples[i-1], b.samples[i], prop, v); ok {
			return s, true
		}
	}
	return state.Sample{}, false
}

// bracket interpolates between a and b at prop == v when v lies between them.
func bracket(a, b state.Sample, prop state.Property, v float64) (state.Sample, bool) {
	va, vb := a.Get(prop), b.Get(prop)
	if !state.Between(v, va, vb) {
		return state.Sample{}, false
	}
	if va == vb {
		return a, true
	}
	return state.Lerp(a, b, state.Fraction(v, va, vb)).With(prop, v), true
}
