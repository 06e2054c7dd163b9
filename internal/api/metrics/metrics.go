// Package metrics defines the custom Prometheus metrics of the tracker
// dashboard API. HTTP request metrics come from the echoprometheus middleware;
// the series here describe what the dashboard endpoints did.
//
// All metrics are registered with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// TrackerRequestsTotal counts dashboard endpoint outcomes.
// Labels:
//   - endpoint: "list", "export" or "get"
//   - result: "ok", "invalid", "not_found" or "error"
var TrackerRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of tracker dashboard requests, by endpoint and result.",
	},
	[]string{"endpoint", "result"},
)

// ExportRows records how many trackers each successful export contained.
var ExportRows = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_rows",
		Help:      "Number of rows written per successful export.",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 8), // 10 … 163840
	},
)

// ExportDuration measures the time spent fetching and serializing an export.
// Label:
//   - format: "xlsx" or "csv"
var ExportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of export generation from query to finished document.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"format"},
)
