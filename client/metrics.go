package client

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the write counters of a Client.
type Metrics struct {
	lines    prometheus.Counter
	bytes    prometheus.Counter
	failures *prometheus.CounterVec
	latency  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	m.lines, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "influx_client_lines_written_total",
		Help: "Lines of line protocol accepted by the server.",
	}))
	if err != nil {
		return nil, err
	}

	m.bytes, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "influx_client_bytes_written_total",
		Help: "Uncompressed bytes of line protocol accepted by the server.",
	}))
	if err != nil {
		return nil, err
	}

	m.failures, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "influx_client_write_failures_total",
		Help: "Failed write requests by reason.",
	}, []string{"reason"}))
	if err != nil {
		return nil, err
	}

	m.latency, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "influx_client_write_duration_seconds",
		Help:    "Duration of write requests.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}))
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// register adds c to reg, reusing the collector already registered under the
// same descriptor so several clients can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("registering client metrics: %w", err)
}

const (
	reasonBadRequest = "bad_request"
	reasonServer     = "server"
	reasonTransport  = "transport"
)

func (m *Metrics) observe(seconds float64) {
	if m != nil {
		m.latency.Observe(seconds)
	}
}

func (m *Metrics) written(lines, bytes int) {
	if m != nil {
		m.lines.Add(float64(lines))
		m.bytes.Add(float64(bytes))
	}
}

func (m *Metrics) failed(reason string) {
	if m != nil {
		m.failures.WithLabelValues(reason).Inc()
	}
}
