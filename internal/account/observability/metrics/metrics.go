package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors, curried with the service label.
type Metrics struct {
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	OutcomesTotal              *prometheus.CounterVec
	TokensIssuedTotal          *prometheus.CounterVec
	LinksExpiredTotal          prometheus.Counter

	gatherer prometheus.Gatherer
}

// New builds the collectors and registers them on reg.
func New(serviceName string, reg *prometheus.Registry) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	outcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_outcomes_total",
			Help: "Register, verify and login outcomes by result message.",
		},
		[]string{"service", "action", "result"},
	)
	tokens := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_tokens_issued_total",
			Help: "Total number of access tokens signed.",
		},
		[]string{"service", "result"},
	)
	linksExpired := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_links_expired_total",
			Help: "Verification links cleared by housekeeping.",
		},
		[]string{"service"},
	)

	reg.MustRegister(httpRequests, httpDuration, outcomes, tokens, linksExpired)

	return &Metrics{
		HTTPRequestsTotal:          httpRequests.MustCurryWith(labels),
		HTTPRequestDurationSeconds: httpDuration.MustCurryWith(labels).(*prometheus.HistogramVec),
		OutcomesTotal:              outcomes.MustCurryWith(labels),
		TokensIssuedTotal:          tokens.MustCurryWith(labels),
		LinksExpiredTotal:          linksExpired.With(labels),
		gatherer:                   reg,
	}
}

// Outcome records one business result. An empty message counts as "ok".
// Nil receivers are ignored so services work without metrics wired.
func (m *Metrics) Outcome(action string, success bool, message string) {
	if m == nil {
		return
	}
	result := message
	if success {
		result = "ok"
	}
	m.OutcomesTotal.WithLabelValues(action, result).Inc()
}

// TokenIssued records a signing attempt.
func (m *Metrics) TokenIssued(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.TokensIssuedTotal.WithLabelValues(result).Inc()
}

// LinksExpired adds n cleared links.
func (m *Metrics) LinksExpired(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.LinksExpiredTotal.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
