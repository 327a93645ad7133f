package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sjsjaniw/workout-backend/internal/pkg/router"
)

// HTTPMetrics holds the request counters and latency histogram.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	mounts   map[string]struct{}
}

// otherPath labels every request outside the registered mounts.
const otherPath = "other"

// NewHTTPMetrics registers the HTTP collectors on reg under the given namespace.
// Only the listed mounts ("/users", "/metrics") become path label values.
func NewHTTPMetrics(reg prometheus.Registerer, namespace string, mounts ...string) *HTTPMetrics {
	m := &HTTPMetrics{
		mounts: make(map[string]struct{}, len(mounts)),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	for _, mount := range mounts {
		m.mounts["/"+strings.Trim(mount, "/")] = struct{}{}
	}

	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *HTTPMetrics) Middleware() router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &httpStatusWriter{inner: w}

			next.ServeHTTP(sw, r)
			if sw.Status == 0 {
				sw.Status = http.StatusOK
			}

			path := m.normalizePath(r.URL.Path)
			m.requests.WithLabelValues(r.Method, path, strconv.Itoa(sw.Status)).Inc()
			m.duration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath maps a request path to its mount so ids and unknown
// paths never become label values.
func (m *HTTPMetrics) normalizePath(path string) string {
	trimmed := strings.Trim(path, "/")
	first, _, _ := strings.Cut(trimmed, "/")

	mount := "/" + first
	if _, ok := m.mounts[mount]; !ok {
		return otherPath
	}
	return mount
}
