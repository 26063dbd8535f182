package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"omsim/internal/errors"
)

// PrometheusCollector implements Collector backed by a private registry
type PrometheusCollector struct {
	reg *prometheus.Registry

	campaigns  *prometheus.CounterVec
	failures   *prometheus.CounterVec
	degenerate prometheus.Counter
	sweeps     *prometheus.HistogramVec
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus registers the simulation metrics under namespace, "omsim"
// when empty.
func NewPrometheus(namespace string) *PrometheusCollector {
	if namespace == "" {
		namespace = "omsim"
	}
	p := &PrometheusCollector{
		reg: prometheus.NewRegistry(),
		campaigns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "campaign",
			Name:      "built_total",
			Help:      "Campaigns built, by adjacency type.",
		}, []string{"type"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "campaign",
			Name:      "failures_total",
			Help:      "Campaign constructions rejected, by error code.",
		}, []string{"code"}),
		degenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "campaign",
			Name:      "degenerate_total",
			Help:      "Campaigns built with fewer than three adjacency-distinct rooms.",
		}),
		sweeps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "Wall time of simulation sweeps in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8), // 10ms .. ~2.7m
		}, []string{"mode"}),
	}
	p.reg.MustRegister(p.campaigns, p.failures, p.degenerate, p.sweeps)
	return p
}

func (p *PrometheusCollector) RecordCampaign(campaignType string, degenerate bool) {
	p.campaigns.WithLabelValues(campaignType).Inc()
	if degenerate {
		p.degenerate.Inc()
	}
}

func (p *PrometheusCollector) RecordFailure(code string) {
	if code == "" {
		code = errors.CodeInternalError
	}
	p.failures.WithLabelValues(code).Inc()
}

func (p *PrometheusCollector) ObserveSweep(mode string, d time.Duration) {
	p.sweeps.WithLabelValues(mode).Observe(d.Seconds())
}

// Gatherer exposes the registry
func (p *PrometheusCollector) Gatherer() prometheus.Gatherer {
	return p.reg
}

// WriteTextfile dumps the current values in the node exporter textfile format
func (p *PrometheusCollector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.reg); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
