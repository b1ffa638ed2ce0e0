// Package metrics exposes Prometheus instrumentation for query latency and
// bytes read per entity kind, registered against the default registry so a
// single /metrics handler (see cmd/swmminspect) can serve them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	queryLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swmmout_query_duration_seconds",
		Help:    "Time spent servicing one reader query, by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	bytesRead = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swmmout_bytes_read_total",
		Help: "Total bytes read from result files, by entity kind.",
	}, []string{"kind"})

	openFilesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swmmout_open_files_total",
		Help: "Total number of result files successfully opened.",
	})

	openErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swmmout_open_errors_total",
		Help: "Total number of failed open attempts, by error code.",
	}, []string{"code"})
)

func init() {
	prometheus.MustRegister(queryLatency, bytesRead, openFilesTotal, openErrorsTotal)
}

// ObserveQuery records the duration of one query operation.
func ObserveQuery(operation string, d time.Duration) {
	queryLatency.WithLabelValues(operation).Observe(d.Seconds())
}

// Timer returns a function that, when called, records the elapsed time
// since Timer was invoked under operation.
func Timer(operation string) func() {
	start := time.Now()
	return func() { ObserveQuery(operation, time.Since(start)) }
}

// AddBytesRead accumulates n bytes read on behalf of kind (an
// rpt.ElementKind name: "subcatch", "node", "link", "system").
func AddBytesRead(kind string, n int) {
	if n <= 0 {
		return
	}
	bytesRead.WithLabelValues(kind).Add(float64(n))
}

// RecordOpen tallies a successful file open.
func RecordOpen() {
	openFilesTotal.Inc()
}

// RecordOpenError tallies a failed open attempt under the given error code
// string (see rpt.ErrorCode).
func RecordOpenError(code string) {
	openErrorsTotal.WithLabelValues(code).Inc()
}
