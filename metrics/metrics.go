package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ProcessedRequests counts the number of HTTP requests served,
	// partitioned by status code and method
	ProcessedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "htmlpages_http_requests_total",
		Help: "Total number of HTTP requests served",
	},
		[]string{"code", "method"},
	)

	// SessionsActive is the number of HTTP requests currently being processed
	SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "htmlpages_http_sessions_active",
		Help: "The number of HTTP requests currently being processed",
	})

	// ServingFileSize is a histogram of sizes of files served from the root
	ServingFileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "htmlpages_serving_file_size_bytes",
		Help:    "Size of files served from the served root in bytes",
		Buckets: prometheus.ExponentialBuckets(512, 4, 10),
	})

	// IndexGenerations counts the number of index pages generated for
	// requests to the root URL
	IndexGenerations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "htmlpages_index_generations_total",
		Help: "The total number of index pages generated since daemon start",
	})
)

// MustRegister registers all the collectors above with the default
// prometheus registerer
func MustRegister() {
	prometheus.MustRegister(
		ProcessedRequests,
		SessionsActive,
		ServingFileSize,
		IndexGenerations,
	)
}
