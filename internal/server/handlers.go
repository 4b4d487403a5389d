package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pygacity/sandlersteam/internal/tableset"
	"github.com/pygacity/sandlersteam/pkg/log"
	"github.com/pygacity/sandlersteam/pkg/region"
	"github.com/pygacity/sandlersteam/pkg/satd"
	"github.com/pygacity/sandlersteam/pkg/state"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id"`
}

// SaturationResponse holds both saturated endpoints at an axis value.
type SaturationResponse struct {
	Axis   string       `json:"axis"`
	Value  float64      `json:"value"`
	T      float64      `json:"T"`
	P      float64      `json:"P"`
	Liquid state.Sample `json:"liquid"`
	Vapor  state.Sample `json:"vapor"`
}

// TablesResponse summarizes the active table set.
type TablesResponse struct {
	Source      string        `json:"source"`
	Generation  uint64        `json:"generation"`
	Saturation  AxisLimits    `json:"saturation"`
	Superheated []IsobarRange `json:"superheated"`
	Subcooled   []IsobarRange `json:"subcooled"`
}

// AxisLimits is the saturation table domain along both axes.
type AxisLimits struct {
	TMin float64 `json:"T_min"`
	TMax float64 `json:"T_max"`
	PMin float64 `json:"P_min"`
	PMax float64 `json:"P_max"`
}

// IsobarRange is the temperature extent of one isobar block.
type IsobarRange struct {
	P       float64 `json:"P"`
	TMin    float64 `json:"T_min"`
	TMax    float64 `json:"T_max"`
	Samples int     `json:"samples"`
}

// handleResolve handles POST /v1/resolve. The body names exactly two
// properties, e.g. {"T": 100, "x": 0}.
func (s *Server) handleResolve(c *gin.Context) {
	var body map[string]float64
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, fmt.Errorf("%w: decode body: %v", state.ErrAmbiguousSpec, err))
		return
	}
	props := make(map[state.Property]float64, len(body))
	for name, v := range body {
		p, err := state.ParseProperty(name)
		if err != nil {
			s.fail(c, err)
			return
		}
		if _, dup := props[p]; dup {
			s.fail(c, fmt.Errorf("%w: %s given twice", state.ErrAmbiguousSpec, p))
			return
		}
		props[p] = v
	}
	spec, err := state.SpecFromMap(props)
	if err != nil {
		s.fail(c, err)
		return
	}

	rec, err := s.registry.Resolver().Resolve(spec)
	if err != nil {
		s.countResolution("none", err)
		s.fail(c, err)
		return
	}
	s.countResolution(rec.Region.String(), nil)
	c.JSON(http.StatusOK, rec)
}

// handleSaturation handles GET /v1/saturation?axis=T&value=150.
func (s *Server) handleSaturation(c *gin.Context) {
	prop, err := state.ParseProperty(c.DefaultQuery("axis", "T"))
	if err != nil {
		s.fail(c, err)
		return
	}
	axis, ok := satd.AxisOf(prop)
	if !ok {
		s.fail(c, fmt.Errorf("%w: axis must be T or P, got %s", state.ErrAmbiguousSpec, prop))
		return
	}
	value, err := strconv.ParseFloat(c.Query("value"), 64)
	if err != nil {
		s.fail(c, fmt.Errorf("%w: value: %v", state.ErrAmbiguousSpec, err))
		return
	}

	pt, err := s.registry.Resolver().Saturation(axis, value)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SaturationResponse{
		Axis:   axis.String(),
		Value:  value,
		T:      pt.T,
		P:      pt.P,
		Liquid: pt.Liquid(),
		Vapor:  pt.Vapor(),
	})
}

// handleTables handles GET /v1/tables.
func (s *Server) handleTables(c *gin.Context) {
	c.JSON(http.StatusOK, Summarize(s.registry.Current()))
}

// Summarize describes the domain of every table in set.
func Summarize(set *tableset.Set) TablesResponse {
	sat := set.Tables.Saturation
	resp := TablesResponse{Source: set.Source, Generation: set.Generation}
	resp.Saturation.TMin, resp.Saturation.TMax = sat.Limits(satd.AxisT)
	resp.Saturation.PMin, resp.Saturation.PMax = sat.Limits(satd.AxisP)
	resp.Superheated = isobarRanges(set.Tables.Superheated)
	resp.Subcooled = isobarRanges(set.Tables.Subcooled)
	return resp
}

func isobarRanges(tbl *region.Table) []IsobarRange {
	var out []IsobarRange
	for _, b := range tbl.Blocks() {
		lo, hi := b.Range()
		out = append(out, IsobarRange{P: b.P(), TMin: lo, TMax: hi, Samples: b.Len()})
	}
	return out
}

func (s *Server) handleHealth(c *gin.Context) {
	set := s.registry.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"phase":      s.Phase().String(),
		"source":     set.Source,
		"generation": set.Generation,
		"loaded_at":  set.LoadedAt,
	})
}

// handleReady reports 503 while the server is starting or draining.
func (s *Server) handleReady(c *gin.Context) {
	phase := s.Phase()
	status := http.StatusOK
	if phase != PhaseServing {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"phase": phase.String()})
}

// StatusFor maps a resolution error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, state.ErrAmbiguousSpec), errors.Is(err, state.ErrOutOfRange):
		return http.StatusBadRequest
	case state.Kind(err) != "":
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	id := c.GetString(requestIDKey)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", log.String("request_id", id), log.Err(err))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		Kind:      state.Kind(err),
		RequestID: id,
	})
}

func (s *Server) countResolution(region string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Resolutions.WithLabelValues(region, state.Kind(err)).Inc()
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
