package server

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pygacity/sandlersteam/internal/tableset"
)

// Metrics exposes the HTTP surface's Prometheus metrics.
type Metrics struct {
	gatherer prometheus.Gatherer

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Resolutions     *prometheus.CounterVec
	TableReloads    *prometheus.CounterVec
	TableGeneration prometheus.Gauge
}

// NewMetrics registers the server metrics against reg. A nil reg selects the
// default registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{gatherer: gatherer}
	var err error

	if m.Requests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "steam_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})); err != nil {
		return nil, err
	}
	if m.RequestDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "steam_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"route"})); err != nil {
		return nil, err
	}
	if m.Resolutions, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "steam_resolutions_total",
		Help: "State resolutions by resulting region, or by error kind on failure.",
	}, []string{"region", "error"})); err != nil {
		return nil, err
	}
	if m.TableReloads, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "steam_table_reloads_total",
		Help: "Table reload attempts by result.",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	if m.TableGeneration, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "steam_table_generation",
		Help: "Generation number of the active table set.",
	})); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, reusing an identical collector that is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

// Gatherer returns the gatherer the metrics are registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// ReloadHook records registry reloads.
func (m *Metrics) ReloadHook() tableset.ReloadHook {
	return func(set *tableset.Set, err error) {
		if err != nil {
			m.TableReloads.WithLabelValues("error").Inc()
			return
		}
		m.TableReloads.WithLabelValues("ok").Inc()
		m.TableGeneration.Set(float64(set.Generation))
	}
}
