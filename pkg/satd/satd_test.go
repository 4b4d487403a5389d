package satd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pygacity/sandlersteam/pkg/state"
)

func fixture(t *testing.T) *Table {
	t.Helper()
	byT := []Point{
		{T: 100, P: 0.10142, VL: 0.001043, VV: 1.6720, UL: 418.91, UV: 2506.0, HL: 419.17, HV: 2675.6, SL: 1.3072, SV: 7.3542},
		{T: 150, P: 0.47616, VL: 0.001091, VV: 0.39248, UL: 631.66, UV: 2559.1, HL: 632.18, HV: 2745.9, SL: 1.8418, SV: 6.8371},
		{T: 200, P: 1.5549, VL: 0.001157, VV: 0.12721, UL: 850.46, UV: 2594.2, HL: 852.26, HV: 2792.0, SL: 2.3305, SV: 6.4302},
	}
	byP := []Point{
		{T: 99.61, P: 0.1, VL: 0.001043, VV: 1.6941, UL: 417.40, UV: 2505.6, HL: 417.51, HV: 2675.0, SL: 1.3028, SV: 7.3589},
		{T: 179.88, P: 1.0, VL: 0.001127, VV: 0.19436, UL: 761.39, UV: 2582.8, HL: 762.51, HV: 2777.1, SL: 2.1381, SV: 6.5850},
	}
	tbl, err := New(byT, byP)
	require.NoError(t, err)
	return tbl
}

func TestNew_Invalid(t *testing.T) {
	good := Point{T: 100, P: 0.1}
	tests := []struct {
		name string
		byT  []Point
		byP  []Point
	}{
		{"too few T points", []Point{good}, []Point{good, {T: 120, P: 0.2}}},
		{"duplicate T", []Point{good, good}, []Point{good, {T: 120, P: 0.2}}},
		{"decreasing P", []Point{good, {T: 120, P: 0.2}}, []Point{{T: 120, P: 0.2}, good}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.byT, tt.byP)
			assert.True(t, errors.Is(err, state.ErrTableInvalid), "err = %v", err)
		})
	}
}

func TestValueAt(t *testing.T) {
	tbl := fixture(t)

	tests := []struct {
		name string
		axis Axis
		key  float64
		prop Property
		want float64
	}{
		{"exact node", AxisT, 150, PropP, 0.47616},
		{"midpoint", AxisT, 125, PropHL, (419.17 + 632.18) / 2},
		{"lower bound", AxisT, 100, PropVV, 1.6720},
		{"upper bound", AxisT, 200, PropSV, 6.4302},
		{"difference", AxisT, 150, PropDH, 2745.9 - 632.18},
		{"difference volume", AxisT, 150, PropDV, 0.39248 - 0.001091},
		{"pressure axis", AxisP, 1.0, PropT, 179.88},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.ValueAt(tt.axis, tt.key, tt.prop)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValueAt_OutOfRange(t *testing.T) {
	tbl := fixture(t)
	for _, key := range []float64{99.99, 200.01, 2000} {
		_, err := tbl.ValueAt(AxisT, key, PropP)
		assert.ErrorIs(t, err, state.ErrOutOfRange, "key %g", key)
	}
	_, err := tbl.PointAt(AxisP, 0.01)
	assert.ErrorIs(t, err, state.ErrOutOfRange)
}

func TestLimitsAndContains(t *testing.T) {
	tbl := fixture(t)
	lo, hi := tbl.Limits(AxisT)
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 200.0, hi)
	assert.True(t, tbl.Contains(AxisP, 0.5))
	assert.False(t, tbl.Contains(AxisP, 1.5))
}

func TestPointAt(t *testing.T) {
	tbl := fixture(t)
	p, err := tbl.PointAt(AxisT, 175)
	require.NoError(t, err)
	assert.InDelta(t, 175.0, p.T, 1e-12)
	assert.InDelta(t, (0.47616+1.5549)/2, p.P, 1e-12)

	liq, vap := p.Liquid(), p.Vapor()
	assert.Equal(t, p.VL, liq.V)
	assert.Equal(t, p.SV, vap.S)
	assert.Equal(t, vap, p.Phase(Vapor))
}

func TestSaturationPressureMonotone(t *testing.T) {
	tbl := fixture(t)
	ps := tbl.Column(AxisT, PropP)
	for i := 1; i < len(ps); i++ {
		assert.GreaterOrEqual(t, ps[i], ps[i-1])
	}
}

func TestIndex(t *testing.T) {
	tbl := fixture(t)
	i, ok := tbl.index(AxisT, 150)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = tbl.index(AxisT, 151)
	assert.False(t, ok)
}

func TestPointAt_TabulatedRow(t *testing.T) {
	tbl := fixture(t)
	pt, err := tbl.PointAt(AxisT, 150)
	require.NoError(t, err)
	assert.Equal(t, tbl.Points(AxisT)[1], pt)
}

func TestParseProperty(t *testing.T) {
	tests := []struct {
		in      string
		want    Property
		wantErr bool
	}{
		{"VL", PropVL, false},
		{"hv", PropHV, false},
		{" DS ", PropDS, false},
		{"DV", PropDV, false},
		{"XX", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProperty(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Len(t, ColumnNames(), 13)
}

func TestPhaseProperty(t *testing.T) {
	tests := []struct {
		phase Phase
		prop  state.Property
		want  Property
	}{
		{Liquid, state.V, PropVL},
		{Vapor, state.V, PropVV},
		{Liquid, state.H, PropHL},
		{Vapor, state.S, PropSV},
		{Vapor, state.T, PropT},
	}
	for _, tt := range tests {
		got, err := PhaseProperty(tt.phase, tt.prop)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.phase, tt.prop)
	}
	_, err := PhaseProperty(Liquid, state.X)
	assert.ErrorIs(t, err, state.ErrAmbiguousSpec)
}
