package satd

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/pygacity/sandlersteam/pkg/state"
)

// Table is the saturation table. It holds the same saturation curve sampled
// on a temperature grid and on a pressure grid.
type Table struct {
	axes [2]axisData
}

type axisData struct {
	points []Point
	keys   []float64
	fits   [numProps]*interp.PiecewiseLinear
}

// New builds a table from points sorted by T and points sorted by P.
// Keys must be strictly increasing along each axis and each axis needs at
// least two points.
func New(byT, byP []Point) (*Table, error) {
	t := &Table{}
	for _, ax := range []struct {
		axis   Axis
		points []Point
	}{{AxisT, byT}, {AxisP, byP}} {
		d, err := newAxisData(ax.axis, ax.points)
		if err != nil {
			return nil, err
		}
		t.axes[ax.axis] = d
	}
	return t, nil
}

func newAxisData(axis Axis, points []Point) (axisData, error) {
	if len(points) < 2 {
		return axisData{}, fmt.Errorf("%w: saturation axis %s needs at least 2 points, got %d",
			state.ErrTableInvalid, axis, len(points))
	}
	keyProp := PropT
	if axis == AxisP {
		keyProp = PropP
	}

	d := axisData{
		points: append([]Point(nil), points...),
		keys:   make([]float64, len(points)),
	}
	for i, p := range d.points {
		d.keys[i] = p.Value(keyProp)
	}
	if floats.HasNaN(d.keys) {
		return axisData{}, fmt.Errorf("%w: saturation axis %s has NaN keys", state.ErrTableInvalid, axis)
	}
	for i := 1; i < len(d.keys); i++ {
		if d.keys[i] <= d.keys[i-1] {
			return axisData{}, fmt.Errorf("%w: saturation axis %s not strictly increasing at %g",
				state.ErrTableInvalid, axis, d.keys[i])
		}
	}

	for prop := Property(0); prop < numProps; prop++ {
		ys := make([]float64, len(d.points))
		for i, p := range d.points {
			ys[i] = p.Value(prop)
		}
		fit := &interp.PiecewiseLinear{}
		if err := fit.Fit(d.keys, ys); err != nil {
			return axisData{}, fmt.Errorf("%w: fit %s against %s: %v", state.ErrTableInvalid, prop, axis, err)
		}
		d.fits[prop] = fit
	}
	return d, nil
}

// Limits returns the interpolation domain of the axis.
func (t *Table) Limits(axis Axis) (min, max float64) {
	keys := t.axes[axis].keys
	return keys[0], keys[len(keys)-1]
}

// Contains reports whether key lies within the closed domain of the axis.
func (t *Table) Contains(axis Axis, key float64) bool {
	lo, hi := t.Limits(axis)
	return key >= lo && key <= hi
}

// ValueAt interpolates prop against the axis at key.
func (t *Table) ValueAt(axis Axis, key float64, prop Property) (float64, error) {
	if prop < 0 || prop >= numProps {
		return 0, fmt.Errorf("satd: unknown property %d", int(prop))
	}
	if err := t.check(axis, key); err != nil {
		return 0, err
	}
	return t.axes[axis].fits[prop].Predict(key), nil
}

// PointAt interpolates every stored property at key.
func (t *Table) PointAt(axis Axis, key float64) (Point, error) {
	if err := t.check(axis, key); err != nil {
		return Point{}, err
	}
	d := &t.axes[axis]
	if i, ok := t.index(axis, key); ok {
		return d.points[i], nil
	}
	var p Point
	for _, prop := range stored {
		p.Set(prop, d.fits[prop].Predict(key))
	}
	return p, nil
}

// Points returns a copy of the samples along the axis.
func (t *Table) Points(axis Axis) []Point {
	return append([]Point(nil), t.axes[axis].points...)
}

// Column returns the sampled values of prop along the axis, in key order.
func (t *Table) Column(axis Axis, prop Property) []float64 {
	pts := t.axes[axis].points
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Value(prop)
	}
	return out
}

// Len returns the number of samples along the axis.
func (t *Table) Len(axis Axis) int {
	return len(t.axes[axis].points)
}

// index returns the position of an exact sample with the given key.
func (t *Table) index(axis Axis, key float64) (int, bool) {
	keys := t.axes[axis].keys
	i := sort.SearchFloat64s(keys, key)
	if i < len(keys) && keys[i] == key {
		return i, true
	}
	return -1, false
}

func (t *Table) check(axis Axis, key float64) error {
	if axis != AxisT && axis != AxisP {
		return fmt.Errorf("satd: unknown axis %d", int(axis))
	}
	lo, hi := t.Limits(axis)
	if !(key >= lo && key <= hi) {
		return fmt.Errorf("%w: saturation %s=%g outside [%g, %g]", state.ErrOutOfRange, axis, key, lo, hi)
	}
	return nil
}
