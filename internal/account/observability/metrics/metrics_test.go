package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/accounts/internal/account/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	m := metrics.New("accounts", prometheus.NewRegistry())

	m.Outcome("register", true, "")
	m.Outcome("register", false, "login exist")
	m.Outcome("register", false, "login exist")

	require.InDelta(t, 1, testutil.ToFloat64(m.OutcomesTotal.WithLabelValues("register", "ok")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(m.OutcomesTotal.WithLabelValues("register", "login exist")), 0)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.Outcome("login", true, "")
		m.TokenIssued(errors.New("x"))
		m.LinksExpired(3)
	})
}

func TestMiddlewareUsesPattern(t *testing.T) {
	m := metrics.New("accounts", prometheus.NewRegistry())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /verify/{link}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := m.Middleware(mux)

	for _, link := range []string{"a", "b", "c"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/verify/"+link, nil))
	}

	require.InDelta(t, 3, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /verify/{link}", "200")), 0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := metrics.New("accounts", prometheus.NewRegistry())
	m.TokenIssued(nil)
	m.LinksExpired(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `accounts_tokens_issued_total{result="ok",service="accounts"} 1`)
	require.Contains(t, rec.Body.String(), `accounts_links_expired_total{service="accounts"} 2`)
}
