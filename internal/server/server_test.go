package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pygacity/sandlersteam/internal/tableset"
	"github.com/pygacity/sandlersteam/pkg/state"
)

func newTestServer(t *testing.T) (*Server, *Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	reg, err := tableset.Open("", tableset.WithReloadHook(m.ReloadHook()))
	require.NoError(t, err)
	return New(reg, m, nil), m
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	return w
}

func TestResolve(t *testing.T) {
	s, m := newTestServer(t)

	w := do(s, http.MethodPost, "/v1/resolve", `{"T": 100, "x": 0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var rec state.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.InDelta(t, 0.10142, rec.P, 1e-9)
	assert.InDelta(t, 419.17, rec.H, 1e-9)
	assert.Equal(t, state.Saturated, rec.Region)
	require.NotNil(t, rec.X)
	assert.Zero(t, *rec.X)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("saturated", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/v1/resolve", "200")))
}

func TestResolve_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"bad json", `{"T": `, http.StatusBadRequest, "AmbiguousSpec"},
		{"one property", `{"T": 100}`, http.StatusBadRequest, "AmbiguousSpec"},
		{"three properties", `{"T": 100, "P": 1, "x": 0}`, http.StatusBadRequest, "AmbiguousSpec"},
		{"unknown property", `{"T": 100, "q": 1}`, http.StatusBadRequest, "AmbiguousSpec"},
		{"quality out of range", `{"T": 100, "x": 1.5}`, http.StatusBadRequest, "OutOfRange"},
		{"above critical", `{"T": 2000, "x": 0.5}`, http.StatusUnprocessableEntity, "SaturationLimitExceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(s, http.MethodPost, "/v1/resolve", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, w.Header().Get("X-Request-ID"), resp.RequestID)
		})
	}
}

func TestRequestIDPropagated(t *testing.T) {
	s, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestSaturation(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodGet, "/v1/saturation?axis=T&value=100", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SaturationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "T", resp.Axis)
	assert.InDelta(t, 0.10142, resp.P, 1e-9)
	assert.InDelta(t, 419.17, resp.Liquid.H, 1e-9)
	assert.Greater(t, resp.Vapor.V, resp.Liquid.V)

	w = do(s, http.MethodGet, "/v1/saturation?axis=T&value=500", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "SaturationLimitExceeded", errResp.Kind)

	w = do(s, http.MethodGet, "/v1/saturation?axis=h&value=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodGet, "/v1/saturation?axis=P", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTables(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodGet, "/v1/tables", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp TablesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, tableset.SourceEmbedded, resp.Source)
	assert.Equal(t, uint64(1), resp.Generation)
	assert.InDelta(t, 373.95, resp.Saturation.TMax, 1e-9)
	assert.Len(t, resp.Subcooled, 5)
	assert.NotEmpty(t, resp.Superheated)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	do(s, http.MethodGet, "/healthz", "")
	w := do(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "steam_http_requests_total"))
	assert.True(t, strings.Contains(body, "steam_table_generation 1"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(state.ErrAmbiguousSpec))
	assert.Equal(t, http.StatusBadRequest, StatusFor(state.ErrOutOfRange))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(state.ErrNotBracketed))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(state.ErrNonMonotonicMixture))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(assert.AnError))
}

func TestRun_Phases(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, PhaseStopped, s.Phase())
	assert.Equal(t, http.StatusServiceUnavailable, do(s, http.MethodGet, "/readyz", "").Code)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0", time.Second) }()

	require.Eventually(t, func() bool { return s.Phase() == PhaseServing }, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/readyz", "").Code)
	assert.ErrorIs(t, s.Run(ctx, "127.0.0.1:0", time.Second), ErrAlreadyRunning)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, PhaseStopped, s.Phase())
}

func TestRun_ListenFailure(t *testing.T) {
	s, _ := newTestServer(t)
	err := s.Run(context.Background(), "127.0.0.1:-1", time.Second)
	assert.Error(t, err)
	assert.Equal(t, PhaseFailed, s.Phase())
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseStopped, PhaseStarting, true},
		{PhaseStopped, PhaseServing, false},
		{PhaseStarting, PhaseServing, true},
		{PhaseServing, PhaseStarting, false},
		{PhaseServing, PhaseDraining, true},
		{PhaseDraining, PhaseStopped, true},
		{PhaseFailed, PhaseStarting, true},
		{PhaseFailed, PhaseServing, false},
	}
	for _, tt := range tests {
		if got := validTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("validTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
