package resolver

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/pygacity/sandlersteam/pkg/log"
	"github.com/pygacity/sandlersteam/pkg/region"
	"github.com/pygacity/sandlersteam/pkg/satd"
	"github.com/pygacity/sandlersteam/pkg/state"
)

// Resolver resolves two-property specifications against a set of tables.
type Resolver struct {
	tables       Tables
	logger       log.Logger
	liquidApprox bool
}

// New creates a Resolver over tables.
func New(tables Tables, opts ...Option) (*Resolver, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	r := &Resolver{
		tables: tables,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Tables returns the tables the resolver reads from.
func (r *Resolver) Tables() Tables { return r.tables }

// Resolve computes the full state fixed by spec.
func (r *Resolver) Resolve(spec state.Spec) (*state.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	rec, err := r.resolve(spec)
	if err != nil {
		r.logger.Debug("resolution failed", log.Stringer("spec", spec), log.Err(err))
		return nil, err
	}
	r.logger.Debug("resolved state", log.Stringer("spec", spec), log.Stringer("region", rec.Region))
	return rec, nil
}

// Classify determines the region of the state fixed by spec. For specs
// containing T or P it does not require region table coverage.
func (r *Resolver) Classify(spec state.Spec) (state.Region, error) {
	if err := spec.Validate(); err != nil {
		return state.RegionUnknown, err
	}
	if spec.Has(state.X) {
		x, _ := spec.Value(state.X)
		other := spec.Other(state.X)
		if axis, ok := satd.AxisOf(other.Property); ok {
			if _, err := r.saturatedPoint(axis, other.Value, x); err != nil {
				return state.RegionUnknown, err
			}
			return state.Saturated, nil
		}
	}
	a, b := spec.First(), spec.Second()
	switch spec.Pair() {
	case state.PairTP:
		return r.classifyTP(a.Value, b.Value)
	case state.PairTV, state.PairTU, state.PairTH, state.PairTS,
		state.PairPV, state.PairPU, state.PairPH, state.PairPS:
		axis, _ := satd.AxisOf(a.Property)
		c, err := r.classifyAxis(axis, a.Value, b.Property, b.Value)
		if err != nil {
			return state.RegionUnknown, err
		}
		return c.region, nil
	}
	rec, err := r.resolve(spec)
	if err != nil {
		return state.RegionUnknown, err
	}
	return rec.Region, nil
}

func (r *Resolver) resolve(spec state.Spec) (*state.Record, error) {
	if spec.Has(state.X) {
		x, _ := spec.Value(state.X)
		other := spec.Other(state.X)
		if axis, ok := satd.AxisOf(other.Property); ok {
			return r.quality(axis, other.Value, x)
		}
		return r.inverseLever(other.Property, other.Value, x)
	}
	a, b := spec.First(), spec.Second()
	switch spec.Pair() {
	case state.PairTP:
		return r.resolveTP(a.Value, b.Value)
	case state.PairTV, state.PairTU, state.PairTH, state.PairTS:
		return r.resolveAxis(satd.AxisT, a.Value, b.Property, b.Value)
	case state.PairPV, state.PairPU, state.PairPH, state.PairPS:
		return r.resolveAxis(satd.AxisP, a.Value, b.Property, b.Value)
	case state.PairVU, state.PairVH, state.PairVS, state.PairUH, state.PairUS, state.PairHS:
		return r.resolveProperties(a, b)
	}
	return nil, fmt.Errorf("%w: unsupported pair %s", state.ErrAmbiguousSpec, spec.Pair())
}

// quality mixes the saturated endpoints at an axis value.
func (r *Resolver) quality(axis satd.Axis, key, x float64) (*state.Record, error) {
	pt, err := r.saturatedPoint(axis, key, x)
	if err != nil {
		return nil, err
	}
	return state.NewMixture(pt.Liquid(), pt.Vapor(), x), nil
}

func (r *Resolver) saturatedPoint(axis satd.Axis, key, x float64) (satd.Point, error) {
	if err := checkQuality(x); err != nil {
		return satd.Point{}, err
	}
	return r.Saturation(axis, key)
}

// Saturation returns the saturated liquid and vapor endpoints at a
// temperature or pressure. Keys beyond the saturation table fail with
// state.ErrSaturationLimitExceeded.
func (r *Resolver) Saturation(axis satd.Axis, key float64) (satd.Point, error) {
	sat := r.tables.Saturation
	if !sat.Contains(axis, key) {
		lo, hi := sat.Limits(axis)
		return satd.Point{}, fmt.Errorf("%w: %s=%g outside saturation range [%g, %g]",
			state.ErrSaturationLimitExceeded, axis, key, lo, hi)
	}
	return sat.PointAt(axis, key)
}

func checkQuality(x float64) error {
	if math.IsNaN(x) || x < 0 || x > 1 {
		return fmt.Errorf("%w: quality x=%g outside [0, 1]", state.ErrOutOfRange, x)
	}
	return nil
}

// classifyTP decides the region of a (T, P) state against the saturation curve.
// P equal to the saturation pressure is treated as vapor.
func (r *Resolver) classifyTP(t, p float64) (state.Region, error) {
	sat := r.tables.Saturation
	tmin, tmax := sat.Limits(satd.AxisT)
	var reg state.Region
	switch {
	case t > tmax:
		reg = state.Superheated
	case t < tmin:
		reg = state.Subcooled
	default:
		psat, err := sat.ValueAt(satd.AxisT, t, satd.PropP)
		if err != nil {
			return state.RegionUnknown, err
		}
		reg = state.Superheated
		if p > psat {
			reg = state.Subcooled
		}
	}
	r.logger.Debug("classified T,P state",
		log.Float64("T", t), log.Float64("P", p), log.Stringer("region", reg))
	return reg, nil
}

func (r *Resolver) resolveTP(t, p float64) (*state.Record, error) {
	reg, err := r.classifyTP(t, p)
	if err != nil {
		return nil, err
	}
	rec, err := r.lookup(r.candidates(reg, satd.AxisP, p), state.T, t, state.P, p)
	if err == nil {
		return rec, nil
	}
	if reg == state.Subcooled && r.liquidApprox && errors.Is(err, state.ErrNotBracketed) {
		if approx, ok := r.compressedLiquid(t, p); ok {
			return approx, nil
		}
	}
	return nil, err
}

// candidates returns the tables to try for a single-phase state. Above the
// critical point either table may hold the state, so both are tried with the
// superheated table first.
func (r *Resolver) candidates(reg state.Region, axis satd.Axis, key float64) []*region.Table {
	if _, hi := r.tables.Saturation.Limits(axis); key > hi {
		return []*region.Table{r.tables.Superheated, r.tables.Subcooled}
	}
	return []*region.Table{r.tables.Region(reg)}
}

// lookup returns the first table result, or the first error when all fail.
func (r *Resolver) lookup(tables []*region.Table, px state.Property, vx float64, py state.Property, vy float64) (*state.Record, error) {
	var firstErr error
	for _, tbl := range tables {
		s, err := tbl.Bilinear(px, vx, py, vy)
		if err == nil {
			return state.NewRecord(s, tbl.Kind().Region()), nil
		}
		if firstErr == nil {
			firstErr = err
		}
		if !errors.Is(err, state.ErrNotBracketed) {
			break
		}
		r.logger.Debug("region table miss", log.Stringer("table", tbl.Kind()), log.Err(err))
	}
	return nil, firstErr
}

func (r *Resolver) compressedLiquid(t, p float64) (*state.Record, bool) {
	if pmin, _ := r.tables.Subcooled.PressureRange(); p >= pmin {
		return nil, false
	}
	pt, err := r.tables.Saturation.PointAt(satd.AxisT, t)
	if err != nil {
		return nil, false
	}
	liq := pt.Liquid()
	rec := state.NewRecord(liq, state.Subcooled)
	rec.P = p
	// MPa·m³/kg is MJ/kg.
	rec.H = liq.H + liq.V*(p-pt.P)*1000
	r.logger.Debug("compressed liquid approximation", log.Float64("T", t), log.Float64("P", p))
	return rec, true
}

// axisClass is the outcome of comparing a property against the saturation
// boundary at a fixed T or P.
type axisClass struct {
	region state.Region
	point  satd.Point
	x      float64
}

func (r *Resolver) classifyAxis(axis satd.Axis, key float64, th state.Property, v float64) (axisClass, error) {
	sat := r.tables.Saturation
	if !sat.Contains(axis, key) {
		lo, _ := sat.Limits(axis)
		reg := state.Superheated
		if key < lo {
			reg = state.Subcooled
		}
		return axisClass{region: reg}, nil
	}
	pt, err := sat.PointAt(axis, key)
	if err != nil {
		return axisClass{}, err
	}
	l, g := pt.Liquid().Get(th), pt.Vapor().Get(th)
	c := axisClass{point: pt}
	switch {
	case v == l:
		c.region, c.x = state.Saturated, 0
	case v == g:
		c.region, c.x = state.Saturated, 1
	case state.Between(v, l, g):
		c.region, c.x = state.Saturated, leverQuality(v, l, g)
	case (v < l) == (l < g):
		c.region = state.Subcooled
	default:
		c.region = state.Superheated
	}
	r.logger.Debug("classified state against saturation",
		log.Stringer("axis", axis), log.Float64("key", key),
		log.Stringer("property", th), log.Float64("value", v),
		log.Float64("liquid", l), log.Float64("vapor", g),
		log.Stringer("region", c.region))
	return c, nil
}

func (r *Resolver) resolveAxis(axis satd.Axis, key float64, th state.Property, v float64) (*state.Record, error) {
	c, err := r.classifyAxis(axis, key, th, v)
	if err != nil {
		return nil, err
	}
	if c.region == state.Saturated {
		rec := state.NewMixture(c.point.Liquid(), c.point.Vapor(), c.x)
		rec.Set(th, v)
		return rec, nil
	}
	return r.lookup(r.candidates(c.region, axis, key), axis.Property(), key, th, v)
}

// resolveProperties handles two of v, u, h, s. The saturated mixture and both
// region tables are searched, and the pair must fix exactly one state across
// them.
func (r *Resolver) resolveProperties(a, b state.Quantity) (*state.Record, error) {
	var found []*state.Record
	mix, err := r.mixtureByProperties(a, b)
	if err != nil {
		return nil, err
	}
	if mix != nil {
		found = append(found, mix)
	}
	for _, tbl := range []*region.Table{r.tables.Superheated, r.tables.Subcooled} {
		s, err := tbl.Bilinear(a.Property, a.Value, b.Property, b.Value)
		if errors.Is(err, state.ErrNotBracketed) {
			r.logger.Debug("region table miss", log.Stringer("table", tbl.Kind()), log.Err(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		rec := state.NewRecord(s, tbl.Kind().Region())
		if !slices.ContainsFunc(found, func(f *state.Record) bool { return sameTP(f, rec) }) {
			found = append(found, rec)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: no region holds %s %s", state.ErrNotBracketed, a, b)
	case 1:
		return found[0], nil
	}
	regions := make([]string, len(found))
	for i, f := range found {
		regions[i] = fmt.Sprintf("%s T=%g P=%g", f.Region, f.T, f.P)
	}
	return nil, fmt.Errorf("%w: %s %s matches %d states (%s)",
		state.ErrAmbiguousSpec, a, b, len(found), strings.Join(regions, "; "))
}

// sameTP reports whether two records sit at the same temperature and pressure
// to table precision.
func sameTP(a, b *state.Record) bool {
	return math.Abs(a.T-b.T) <= 1e-6*math.Max(1, math.Abs(a.T)) &&
		math.Abs(a.P-b.P) <= 1e-6*a.P
}
