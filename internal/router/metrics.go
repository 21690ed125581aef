package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aven",
			Name:      "dispatch_total",
			Help:      "Module dispatches by module, action and outcome.",
		}, []string{"module", "action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aven",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent handling a module dispatch.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"module", "action"}),
	}
	if reg != nil {
		reg.MustRegister(m.total, m.duration)
	}
	return m
}

func (m *metrics) observe(module, action, outcome string, elapsed time.Duration) {
	m.total.WithLabelValues(module, action, outcome).Inc()
	m.duration.WithLabelValues(module, action).Observe(elapsed.Seconds())
}
