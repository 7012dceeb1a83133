// internal/metrics/metrics.go
package metrics

import (
    "net/http"
    "strconv"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the business counters.
const (
    OutcomeSuccess        = "success"
    OutcomeDuplicateEmail = "duplicate_email"
    OutcomeNotFound       = "not_found"
    OutcomeDBError        = "db_error"
)

// Metrics owns a private registry so each instance (and each test) is
// isolated. All collectors are safe for concurrent use.
type Metrics struct {
    AppName  string
    Registry *prometheus.Registry

    RequestCount      *prometheus.CounterVec
    RequestDuration   *prometheus.HistogramVec
    RequestsInFlight  *prometheus.GaugeVec
    CustomerCreations *prometheus.CounterVec
    CustomerDeletions *prometheus.CounterVec
}

func New(appName string) *Metrics {
    m := &Metrics{
        AppName:  appName,
        Registry: prometheus.NewRegistry(),

        RequestCount: prometheus.NewCounterVec(
            prometheus.CounterOpts{
                Name: "http_requests_total",
                Help: "Total HTTP requests processed by the application",
            },
            []string{"app_name", "method", "endpoint", "status_code"},
        ),
        RequestDuration: prometheus.NewHistogramVec(
            prometheus.HistogramOpts{
                Name:    "http_request_duration_seconds",
                Help:    "HTTP request duration in seconds",
                Buckets: prometheus.DefBuckets,
            },
            []string{"app_name", "method", "endpoint", "status_code"},
        ),
        RequestsInFlight: prometheus.NewGaugeVec(
            prometheus.GaugeOpts{
                Name: "http_requests_in_progress",
                Help: "Number of HTTP requests in progress",
            },
            []string{"app_name", "method", "endpoint"},
        ),
        CustomerCreations: prometheus.NewCounterVec(
            prometheus.CounterOpts{
                Name: "customer_creation_total",
                Help: "Total number of customer creation attempts by outcome",
            },
            []string{"app_name", "status"},
        ),
        CustomerDeletions: prometheus.NewCounterVec(
            prometheus.CounterOpts{
                Name: "customer_deletion_total",
                Help: "Total number of customer deletion attempts by outcome",
            },
            []string{"app_name", "status"},
        ),
    }

    m.Registry.MustRegister(
        m.RequestCount,
        m.RequestDuration,
        m.RequestsInFlight,
        m.CustomerCreations,
        m.CustomerDeletions,
    )
    return m
}

// ObserveCreation records the outcome of one create attempt.
func (m *Metrics) ObserveCreation(outcome string) {
    m.CustomerCreations.WithLabelValues(m.AppName, outcome).Inc()
}

// ObserveDeletion records the outcome of one delete attempt.
func (m *Metrics) ObserveDeletion(outcome string) {
    m.CustomerDeletions.WithLabelValues(m.AppName, outcome).Inc()
}

// Middleware wraps every request with in-flight, count and duration
// bookkeeping. The scrape endpoint bypasses its own measurement so the act
// of scraping never shows up in the scraped numbers.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path == "/metrics" {
            next.ServeHTTP(w, r)
            return
        }

        endpoint := r.URL.Path
        m.RequestsInFlight.WithLabelValues(m.AppName, r.Method, endpoint).Inc()

        ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
        start := time.Now()
        next.ServeHTTP(ww, r)
        elapsed := time.Since(start).Seconds()

        // Prefer the route pattern over the raw path so /customers/17 and
        // /customers/42 land in the same series.
        if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
            endpoint = rctx.RoutePattern()
        }

        status := strconv.Itoa(ww.Status())
        m.RequestsInFlight.WithLabelValues(m.AppName, r.Method, r.URL.Path).Dec()
        m.RequestCount.WithLabelValues(m.AppName, r.Method, endpoint, status).Inc()
        m.RequestDuration.WithLabelValues(m.AppName, r.Method, endpoint, status).Observe(elapsed)
    })
}

// Handler serves the text exposition of this instance's registry.
func (m *Metrics) Handler() http.Handler {
    return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
