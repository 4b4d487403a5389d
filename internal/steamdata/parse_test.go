package steamdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pygacity/sandlersteam/pkg/state"
)

const satdSample = `T P VL VV UL DU UV HL DH HV SL DS SV
# comment
100 0.10142 0.001043 1.672 419.06 2086.94 2506 419.17 2256.43 2675.6 1.3072 6.047 7.3542

150 0.47616 0.001091 0.39248 631.66 1927.44 2559.1 632.18 2113.72 2745.9 1.8418 4.9953 6.8371
`

const regionSample = `T V U H S
P = 0.01 MPa (45.81) 30 MPa
Sat. 14.670 2437.2 2583.9 8.1488 - - - -
375 - - - - 0.001792 1737.8 1791.6 3.9313
400 31.063 2969.3 3280.0 9.6094 0.002793 2067.4 2151.1 4.4728
`

func TestParseSaturation(t *testing.T) {
	pts, err := ParseSaturation(strings.NewReader(satdSample))
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, 150.0, pts[1].T)
	assert.Equal(t, 0.47616, pts[1].P)
	assert.Equal(t, 0.39248, pts[1].VV)
	assert.Equal(t, 2745.9, pts[1].HV)
}

func TestParseSaturation_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown column", "T P XX\n1 2 3\n"},
		{"missing column", "T P VL VV\n1 2 3 4\n"},
		{"short row", "T P VL VV UL UV HL HV SL SV\n1 2 3\n"},
		{"not a number", "T P VL VV UL UV HL HV SL SV\n1 2 3 4 5 6 7 8 9 x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSaturation(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, state.ErrTableInvalid)
		})
	}
}

func TestParseRegion(t *testing.T) {
	samples, err := ParseRegion(strings.NewReader(regionSample))
	require.NoError(t, err)
	require.Len(t, samples, 4)

	assert.Equal(t, state.Sample{T: 45.81, P: 0.01, V: 14.670, U: 2437.2, H: 2583.9, S: 8.1488}, samples[0])
	assert.Equal(t, state.Sample{T: 375, P: 30, V: 0.001792, U: 1737.8, H: 1791.6, S: 3.9313}, samples[1])
	assert.Equal(t, 400.0, samples[3].T)
	assert.Equal(t, 30.0, samples[3].P)
}

func TestParseRegion_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad header", "X V U H S\n"},
		{"quality column", "T V X\n"},
		{"row before block", "T V U H S\n100 1 2 3 4\n"},
		{"wrong width", "T V U H S\nP = 1 MPa (179.88)\n200 1 2 3\n"},
		{"mixed missing", "T V U H S\nP = 1 MPa (179.88)\n200 1 - 3 4\n"},
		{"sat without tsat", "T V U H S\nP = 30 MPa\nSat. 1 2 3 4\n"},
		{"bad pressure", "T V U H S\nP = one MPa\n"},
		{"tsat first", "T V U H S\nP = (100) 1 MPa\n"},
		{"no pressures", "T V U H S\nP = MPa\n"},
		{"bad temperature", "T V U H S\nP = 1 MPa\nhot 1 2 3 4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegion(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, state.ErrTableInvalid)
		})
	}
}
