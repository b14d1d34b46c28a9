// Package metrics exposes Prometheus collectors for the library service and
// the HTTP API.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-mdshelf/internal/domain"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

const namespace = "mdshelf"

const unmatchedRouteLabel = "unmatched"

// Result labels.
const (
	ResultOK            = "ok"
	ResultNotFound      = "not_found"
	ResultNotADirectory = "not_a_directory"
	ResultNotAFile      = "not_a_file"
	ResultForbidden     = "forbidden"
	ResultCanceled      = "canceled"
	ResultError         = "error"
)

// Recorder owns every collector registered by mdshelf.
type Recorder struct {
	scanTotal       *prometheus.CounterVec
	scanDuration    prometheus.Histogram
	scanNodes       *prometheus.GaugeVec
	readTotal       *prometheus.CounterVec
	renderTotal     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ interfaces.LibraryMetrics = (*Recorder)(nil)

// New registers the collectors with reg. A nil reg uses the default
// Prometheus registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		scanTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scan_total",
				Help:      "Total number of directory scans",
			},
			[]string{"result"},
		),
		scanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scan_duration_seconds",
				Help:      "Directory scan duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		scanNodes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "scan_last_nodes",
				Help:      "Folders and files found by the most recent successful scan",
			},
			[]string{"type"},
		),
		readTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "read_total",
				Help:      "Total number of markdown file reads",
			},
			[]string{"result"},
		),
		renderTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "render_total",
				Help:      "Total number of markdown renders",
			},
			[]string{"result"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (r *Recorder) ObserveScan(result string, duration time.Duration, folders, files int) {
	r.scanTotal.WithLabelValues(result).Inc()
	r.scanDuration.Observe(duration.Seconds())
	if result == ResultOK {
		r.scanNodes.WithLabelValues("folder").Set(float64(folders))
		r.scanNodes.WithLabelValues("file").Set(float64(files))
	}
}

func (r *Recorder) IncrementRead(result string) {
	r.readTotal.WithLabelValues(result).Inc()
}

func (r *Recorder) IncrementRender(result string) {
	r.renderTotal.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records a served request under its route pattern.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = unmatchedRouteLabel
	}
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Middleware records request metrics for next. Requests are labelled with
// the ServeMux pattern that matched them rather than the raw URL path.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, req)
		r.RecordHTTPRequest(req.Method, req.Pattern, rw.statusCode, time.Since(start))
	})
}

// Handler returns the exposition handler for g. A nil g serves the default
// gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ResultLabel maps an operation error onto a result label.
func ResultLabel(err error) string {
	if err == nil {
		return ResultOK
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ResultCanceled
	}
	switch domain.KindOf(err) {
	case domain.ErrNotFound:
		return ResultNotFound
	case domain.ErrNotADirectory:
		return ResultNotADirectory
	case domain.ErrNotAFile:
		return ResultNotAFile
	case domain.ErrForbidden:
		return ResultForbidden
	default:
		return ResultError
	}
}

// NoOp returns a recorder that drops every observation.
func NoOp() interfaces.LibraryMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveScan(string, time.Duration, int, int) {}

func (noopMetrics) IncrementRead(string) {}

func (noopMetrics) IncrementRender(string) {}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
