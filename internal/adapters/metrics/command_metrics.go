package metrics

import (
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

// Request outcome labels
const (
	statusSuccess  = "success"
	statusRejected = "rejected"
	statusError    = "error"
)

// CommandMetricsCollector tracks every request dispatched through the mediator
type CommandMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "request_duration_seconds",
				Help:      "Request handling duration by request, kind and outcome",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"request", "kind", "status"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "requests_total",
				Help:      "Requests handled by request, kind and outcome",
			},
			[]string{"request", "kind", "status"},
		),
	}
}

// Register registers all command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordRequest records one handled request. A *game.ValidationFailure counts
// as "rejected" rather than "error".
func (c *CommandMetricsCollector) RecordRequest(name string, duration time.Duration, err error) {
	status := statusSuccess
	var failure *game.ValidationFailure
	switch {
	case errors.As(err, &failure):
		status = statusRejected
	case err != nil:
		status = statusError
	}

	kind := requestKind(name)
	c.requestDuration.WithLabelValues(name, kind, status).Observe(duration.Seconds())
	c.requestsTotal.WithLabelValues(name, kind, status).Inc()
}

func requestKind(name string) string {
	switch {
	case strings.HasSuffix(name, "Command"):
		return "command"
	case strings.HasSuffix(name, "Query"):
		return "query"
	default:
		return "other"
	}
}
