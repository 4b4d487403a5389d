package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pygacity/sandlersteam/internal/server"
	"github.com/pygacity/sandlersteam/pkg/satd"
	"github.com/pygacity/sandlersteam/pkg/state"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out, errOut bytes.Buffer
	root, _ := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResolveText(t *testing.T) {
	out, err := run(t, "resolve", "T=525", "P=10")
	require.NoError(t, err)
	assert.Contains(t, out, "region superheated")
	assert.Contains(t, out, "T  525 C")
}

func TestResolveJSON(t *testing.T) {
	out, err := run(t, "resolve", "T=100", "x=0.5", "--output", "json")
	require.NoError(t, err)

	var rec state.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, state.Saturated, rec.Region)
	require.NotNil(t, rec.X)
	assert.Equal(t, 0.5, *rec.X)
	require.NotNil(t, rec.Liquid)
	assert.InDelta(t, 419.17, rec.Liquid.H, 1e-9)
}

func TestResolveErrors(t *testing.T) {
	_, err := run(t, "resolve", "T=100", "T=200")
	assert.True(t, errors.Is(err, state.ErrAmbiguousSpec), "got %v", err)

	_, err = run(t, "resolve", "T=2000", "x=0.5")
	assert.True(t, errors.Is(err, state.ErrSaturationLimitExceeded), "got %v", err)

	_, err = run(t, "resolve", "T=100")
	assert.Error(t, err)
}

func TestSat(t *testing.T) {
	out, err := run(t, "sat", "T=100", "--output", "json")
	require.NoError(t, err)

	var pt satd.Point
	require.NoError(t, json.Unmarshal([]byte(out), &pt))
	assert.InDelta(t, 0.10142, pt.P, 1e-9)
	assert.InDelta(t, 2675.6, pt.HV, 1e-9)

	out, err = run(t, "sat", "P=0.10142")
	require.NoError(t, err)
	assert.Contains(t, out, "liquid")

	_, err = run(t, "sat", "h=100")
	assert.True(t, errors.Is(err, state.ErrAmbiguousSpec), "got %v", err)

	_, err = run(t, "sat", "T=500")
	assert.True(t, errors.Is(err, state.ErrSaturationLimitExceeded), "got %v", err)
}

func TestTables(t *testing.T) {
	out, err := run(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "source embedded")
	assert.Contains(t, out, "subcooled   5 isobars, P 5..30 MPa")
}

func TestTablesJSON(t *testing.T) {
	out, err := run(t, "tables", "--output", "json")
	require.NoError(t, err)

	var resp server.TablesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "embedded", resp.Source)
	require.Len(t, resp.Subcooled, 5)
	assert.Equal(t, 5.0, resp.Subcooled[0].P)
	assert.Equal(t, 30.0, resp.Subcooled[4].P)
	assert.NotEmpty(t, resp.Superheated)
	assert.Less(t, resp.Saturation.TMin, resp.Saturation.TMax)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = \"json\"\nprecision = 4\n"), 0o644))

	out, err := run(t, "--config", path, "resolve", "T=525", "P=10")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "tables")
	assert.Error(t, err)
}
