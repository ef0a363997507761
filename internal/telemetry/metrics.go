package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transferbff_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transferbff_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// TransferOperationsTotal counts transfer service calls by operation and outcome.
	TransferOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transferbff_transfer_operations_total",
			Help: "Total number of transfer operations",
		},
		[]string{"operation", "outcome"}, // outcome: ok, invalid, not_found, unavailable, error
	)

	CustomerDirectoryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transferbff_customer_directory_duration_seconds",
			Help:    "Customer existence check latency",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"outcome"}, // found, not_found, unavailable
	)
)
