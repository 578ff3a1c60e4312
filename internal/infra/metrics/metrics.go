// Package metrics exposes Prometheus instruments for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upload results used as the "result" label.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// Metrics holds the application collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	uploads      *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	ingestedRows prometheus.Counter
	httpDuration *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_uploads_total",
			Help: "Total sales file uploads by result.",
		}, []string{"result"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_upload_rejections_total",
			Help: "Rejected sales file uploads by error code.",
		}, []string{"code"}),
		ingestedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_ingested_rows_total",
			Help: "Total sales records stored from accepted uploads.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.uploads,
		m.rejections,
		m.ingestedRows,
		m.httpDuration,
	)

	return m
}

// UploadAccepted records a stored upload of rows records.
func (m *Metrics) UploadAccepted(rows int) {
	m.uploads.WithLabelValues(ResultAccepted).Inc()
	m.ingestedRows.Add(float64(rows))
}

// UploadRejected records a refused upload.
func (m *Metrics) UploadRejected(code string) {
	m.uploads.WithLabelValues(ResultRejected).Inc()
	m.rejections.WithLabelValues(code).Inc()
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
