// Package metrics exposes Prometheus instrumentation for the HTTP
// surface and the receipt pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ReceiptsGenerated counts successfully rendered receipt PDFs.
	ReceiptsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipts_generated_total",
		Help: "Total number of receipt PDFs generated.",
	})

	// ReceiptRenderFailures counts receipt renders that failed in the
	// PDF backend.
	ReceiptRenderFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipt_render_failures_total",
		Help: "Total number of receipt PDF rendering failures.",
	})
)

// Init registers the metrics with the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight,
		httpRequestsTotal,
		httpRequestDuration,
		ReceiptsGenerated,
		ReceiptRenderFailures,
	)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument measures request rate, latency, and in-flight count.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		// Deferred so a panicking handler cannot leak the gauge.
		defer func() {
			status := strconv.Itoa(sw.code)
			httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			httpInFlight.Dec()
		}()

		next.ServeHTTP(sw, r)
	})
}

// statusWriter captures the response code for labelling.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
