// Package server exposes the resolver over HTTP.
//
// Routes:
//
//	POST /v1/resolve       {"T": 525, "P": 10} -> resolved state
//	GET  /v1/saturation    ?axis=T&value=150   -> saturated liquid and vapor
//	GET  /v1/tables        table coverage summary
//	GET  /healthz          liveness and active table generation
//	GET  /readyz           200 only while serving
//	GET  /metrics          Prometheus metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pygacity/sandlersteam/internal/tableset"
	"github.com/pygacity/sandlersteam/pkg/log"
)

// Server serves resolutions from the active table set of a registry.
type Server struct {
	registry *tableset.Registry
	metrics  *Metrics
	logger   log.Logger
	engine   *gin.Engine
	phases   phases
}

// New builds a server. metrics may be nil to disable instrumentation and
// the /metrics route.
func New(registry *tableset.Registry, metrics *Metrics, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	s := &Server{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
	s.phases.logger = logger
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.observe())

	r.GET("/healthz", s.handleHealth)
	r.GET("/readyz", s.handleReady)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/v1")
	v1.POST("/resolve", s.handleResolve)
	v1.GET("/saturation", s.handleSaturation)
	v1.GET("/tables", s.handleTables)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Phase reports the serving state.
func (s *Server) Phase() Phase {
	return s.phases.current()
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	if err := s.phases.transition(PhaseStarting, "run"); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		_ = s.phases.transition(PhaseFailed, err.Error())
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	_ = s.phases.transition(PhaseServing, "listening")
	s.logger.Info("http server listening", log.Stringer("addr", ln.Addr()))

	select {
	case err := <-errCh:
		_ = s.phases.transition(PhaseFailed, "serve")
		return err
	case <-ctx.Done():
	}

	_ = s.phases.transition(PhaseDraining, "context done")
	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = s.phases.transition(PhaseFailed, "shutdown")
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		_ = s.phases.transition(PhaseFailed, "serve")
		return err
	}
	return s.phases.transition(PhaseStopped, "shutdown complete")
}

const requestIDKey = "request_id"

// requestID propagates X-Request-ID, generating one when absent.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestIDKey, getOrCreateRequestID(c))
		c.Next()
	}
}

func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		if s.metrics != nil {
			s.metrics.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
			s.metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		}
		s.logger.Debug("http request",
			log.String("request_id", c.GetString(requestIDKey)),
			log.String("method", c.Request.Method),
			log.String("route", route),
			log.Int("status", c.Writer.Status()),
			log.Duration("elapsed", elapsed))
	}
}
